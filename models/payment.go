package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment records one settlement attempt against one booking. A row is only
// written after the gateway has confirmed the charge; it is never updated or
// deleted afterwards. Nothing deduplicates rows per booking.
type Payment struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	Method    string    `bson:"method" json:"method"` // e.g. "stripe"
	Amount    int64     `bson:"amount" json:"amount"` // minor currency units
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PaymentAuthorization is what the gateway hands back for a booking: the
// client secret the browser needs to complete the charge, plus the gateway's
// own reference. The coordinator caches the amount so the later settlement
// can be reconciled against it.
type PaymentAuthorization struct {
	BookingID    string `json:"bookingId"`
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
