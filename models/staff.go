package models

import "time"

// Staff roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	// RoleClient is carried in tokens issued to clients; it is never stored
	// on a staff record.
	RoleClient = "client"
)

// Staff represents a staff member who can confirm or reject bookings.
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // "admin" or "staff"
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
