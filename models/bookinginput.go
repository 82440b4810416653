package models

// BookingInput is the client-supplied payload for creating a booking.
type BookingInput struct {
	ServiceType         string `json:"serviceType" binding:"required"`
	Date                string `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time                string `json:"time" binding:"required"` // "HH:MM"
	PetID               string `json:"petId,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// PaymentRequestInput asks the gateway for an authorization on a booking.
type PaymentRequestInput struct {
	Amount int64 `json:"amount" binding:"required"` // minor currency units
}

// RecordPaymentInput reports a gateway-confirmed settlement back to us.
type RecordPaymentInput struct {
	Amount int64  `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
}
