package models

// Notification events emitted by the reservation coordinator.
const (
	EventBookingSubmitted = "submitted"
	EventBookingConfirmed = "confirmed"
)

// BookingSnapshot is the read-only view of a booking carried inside a
// notification payload.
type BookingSnapshot struct {
	BookingID   string `json:"bookingId"`
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// BookingEventPayload is what gets queued for the email worker.
type BookingEventPayload struct {
	Event          string          `json:"event"` // "submitted" or "confirmed"
	RecipientEmail string          `json:"recipientEmail"`
	RecipientName  string          `json:"recipientName"`
	Booking        BookingSnapshot `json:"booking"`
}
