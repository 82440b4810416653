// File: sftails/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sftails/config"
	"sftails/cron"
	"sftails/database"
	bookingRepoPkg "sftails/database/repository/booking"
	clientRepoPkg "sftails/database/repository/client"
	petRepoPkg "sftails/database/repository/pet"
	staffRepoPkg "sftails/database/repository/staff"
	"sftails/handlers"
	"sftails/middleware"
	"sftails/routes"
	"sftails/services/client"
	"sftails/services/identity"
	"sftails/services/notification"
	"sftails/services/payment"
	"sftails/services/pet"
	"sftails/services/reservation"
	"sftails/services/staff"
	"sftails/services/storage"
	"sftails/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	petRepo := petRepoPkg.NewMongoPetRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	identityService := identity.NewIdentityService()
	gateway := payment.NewStripeGateway(logger)
	dispatcher := notification.NewAsynqDispatcher(logger)

	reservationService := &reservation.DefaultReservationService{
		BookingRepo: bookingRepo,
		ClientRepo:  clientRepo,
		PetRepo:     petRepo,
		Gateway:     gateway,
		Notifier:    dispatcher,
		AuthStore:   reservation.NewRedisAuthorizationStore(utils.GetCacheClient()),
		Logger:      logger,
	}

	clientService := &client.DefaultClientService{
		Repo:     clientRepo,
		Pets:     petRepo,
		Bookings: bookingRepo,
		Identity: identityService,
		Logger:   logger,
	}
	staffService := &staff.DefaultStaffService{
		Repo:     staffRepo,
		Identity: identityService,
		Logger:   logger,
	}
	petService := &pet.DefaultPetService{
		Repo:   petRepo,
		Logger: logger,
	}

	// Background email worker draining the notification queue.
	emailSender := notification.NewEmailSender(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.EmailFrom,
	)
	cron.InitBookingEventWorker(emailSender)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Identity:     identityService,
		Client:       handlers.NewClientHandler(clientService),
		Staff:        handlers.NewStaffHandler(staffService),
		Pet:          handlers.NewPetHandler(petService, storageService),
		Booking:      handlers.NewBookingHandler(reservationService, logger),
		StaffBooking: handlers.NewStaffBookingHandler(reservationService, logger),
	}

	routes.RegisterHealthRoute(router)
	routes.RegisterAuthRoutes(router, handlerBundle)
	routes.RegisterClientRoutes(router, handlerBundle)
	routes.RegisterStaffRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	_ = dispatcher.Close()
	logger.Sugar().Info("main: server stopped gracefully")
}
