package routes

import (
	"net/http"
	"time"

	"sftails/handlers"
	"sftails/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/register", hb.Client.RegisterClientHandler)
		api.POST("/login", hb.Client.AuthenticateClientHandler)
		api.POST("/staffregister", hb.Staff.RegisterStaffHandler)
		api.POST("/stafflogin", hb.Staff.AuthenticateStaffHandler)
	}
}

// RegisterClientRoutes registers the authenticated client surface: profile,
// pets, and the booking/payment workflow.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(hb.Identity), middleware.RequireClient())
	{
		api.GET("/clients/me", hb.Client.GetClientProfileHandler)
		api.PUT("/clients/me", hb.Client.UpdateClientProfileHandler)
		api.DELETE("/clients/me", hb.Client.DeleteClientHandler)

		api.POST("/pets", hb.Pet.CreatePetHandler)
		api.GET("/pets", hb.Pet.ListPetsHandler)
		api.PUT("/pets/:id", hb.Pet.UpdatePetHandler)
		api.DELETE("/pets/:id", hb.Pet.DeletePetHandler)
		api.POST("/pets/:id/photo", hb.Pet.UploadPetPhotoHandler)

		api.POST("/bookings", hb.Booking.CreateBookingHandler)
		api.GET("/bookings", hb.Booking.ListMyBookingsHandler)
		api.POST("/bookings/:id/payment-intent", hb.Booking.RequestPaymentHandler)
		api.POST("/bookings/:id/payments", hb.Booking.RecordPaymentHandler)
	}
}

// RegisterStaffRoutes registers the staff-only booking surface. The role gate
// sits in front of every status-changing endpoint.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	api.Use(middleware.AuthMiddleware(hb.Identity), middleware.RequireStaff())
	{
		api.GET("/bookings", hb.StaffBooking.ListBookingsHandler)
		api.PUT("/bookings/:id/accept", hb.StaffBooking.AcceptBookingHandler)
		api.PUT("/bookings/:id/reject", hb.StaffBooking.RejectBookingHandler)
		api.GET("/bookings/:id/payments", hb.StaffBooking.ListPaymentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SF Tails"})
	})
}

// CORSMiddleware returns the CORS policy for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"https://ari.qapital-impressions.com", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
