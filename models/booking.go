package models

import "time"

// Booking statuses. A booking only ever moves forward: pending may become
// confirmed or cancelled, and neither terminal state ever reverts.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Service types offered. Closed set; anything else is rejected at creation.
const (
	ServiceGrooming   = "grooming"
	ServiceDogWalking = "dog walking"
	ServiceBoarding   = "boarding"
	ServicePetCare    = "pet care"
)

// ValidServiceTypes is the closed set of bookable services.
var ValidServiceTypes = map[string]bool{
	ServiceGrooming:   true,
	ServiceDogWalking: true,
	ServiceBoarding:   true,
	ServicePetCare:    true,
}

// Booking is a client's reservation request for a service at a date/time.
// Status transitions are applied only by the reservation coordinator.
type Booking struct {
	ID                  string    `bson:"id" json:"id"`
	ClientID            string    `bson:"client_id" json:"client_id"`
	PetID               string    `bson:"pet_id,omitempty" json:"pet_id,omitempty"`
	ServiceType         string    `bson:"service_type" json:"service_type"`
	Date                string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time                string    `bson:"time" json:"time"` // "HH:MM"
	SpecialInstructions string    `bson:"special_instructions,omitempty" json:"special_instructions,omitempty"`
	Status              string    `bson:"status" json:"status"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}
