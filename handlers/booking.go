package handlers

import (
	"errors"
	"net/http"

	"sftails/middleware"
	"sftails/models"
	"sftails/services/payment"
	"sftails/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the client-side reservation endpoints.
type BookingHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc reservation.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Service.CreateBooking(c.Request.Context(), principal.SubjectID, input)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListMyBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	bookings, err := h.Service.ListBookingsForClient(c.Request.Context(), principal.SubjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// RequestPaymentHandler handles POST /api/bookings/:id/payment-intent. It
// returns the gateway client secret the browser uses to complete the charge.
func (h *BookingHandler) RequestPaymentHandler(c *gin.Context) {
	bookingID := c.Param("id")

	var input models.PaymentRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	auth, err := h.Service.RequestPayment(c.Request.Context(), bookingID, input.Amount)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": auth.ClientSecret, "intentId": auth.IntentID})
}

// RecordPaymentHandler handles POST /api/bookings/:id/payments, the ledger
// write after the gateway confirmed the charge client-side.
func (h *BookingHandler) RecordPaymentHandler(c *gin.Context) {
	bookingID := c.Param("id")

	var input models.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.RecordPayment(c.Request.Context(), bookingID, input.Amount, input.Method)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// respondReservationError maps coordinator errors onto HTTP statuses.
func respondReservationError(c *gin.Context, err error) {
	var (
		validationErr *reservation.ValidationError
		notFoundErr   *reservation.BookingNotFoundError
		authErr       *reservation.AuthorizationError
		mismatchErr   *reservation.AmountMismatchError
		gatewayErr    *payment.GatewayError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &mismatchErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
