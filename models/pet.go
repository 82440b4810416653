package models

import "time"

// Pet is owned by exactly one client. All mutations are owner-checked in the
// pet service.
type Pet struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Name      string    `bson:"name" json:"name"`
	Breed     string    `bson:"breed,omitempty" json:"breed,omitempty"`
	Size      string    `bson:"size,omitempty" json:"size,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"` // care/health notes
	PhotoID   string    `bson:"photo_id,omitempty" json:"photo_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
