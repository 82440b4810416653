package handlers

import (
	"net/http"

	"sftails/middleware"
	"sftails/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaffBookingHandler exposes the staff-side reservation endpoints.
type StaffBookingHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

// NewStaffBookingHandler creates a StaffBookingHandler.
func NewStaffBookingHandler(svc reservation.ReservationService, logger *zap.Logger) *StaffBookingHandler {
	return &StaffBookingHandler{Service: svc, Logger: logger}
}

// ListBookingsHandler handles GET /api/staff/bookings?status=pending.
func (h *StaffBookingHandler) ListBookingsHandler(c *gin.Context) {
	status := c.Query("status")

	bookings, err := h.Service.ListBookings(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AcceptBookingHandler handles PUT /api/staff/bookings/:id/accept. Accepting
// a booking that already left pending returns the row as found with 200;
// only an unknown id is an error.
func (h *StaffBookingHandler) AcceptBookingHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	bookingID := c.Param("id")

	booking, err := h.Service.AcceptBooking(c.Request.Context(), bookingID, principal)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RejectBookingHandler handles PUT /api/staff/bookings/:id/reject.
func (h *StaffBookingHandler) RejectBookingHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	bookingID := c.Param("id")

	booking, err := h.Service.RejectBooking(c.Request.Context(), bookingID, principal)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListPaymentsHandler handles GET /api/staff/bookings/:id/payments.
func (h *StaffBookingHandler) ListPaymentsHandler(c *gin.Context) {
	bookingID := c.Param("id")

	payments, err := h.Service.ListPayments(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}
