package models

import "time"

// Client represents a pet owner. PasswordHash is empty for guests who
// checked out without creating an account.
type Client struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsGuest reports whether the client ever set a password.
func (c *Client) IsGuest() bool {
	return c.PasswordHash == ""
}
