package clientRepo

import "sftails/models"

// ClientRepository defines methods for client data access.
type ClientRepository interface {
	// GetByID retrieves a client by its unique ID, or (nil, nil) when absent.
	GetByID(id string) (*models.Client, error)
	// GetByEmail retrieves a client by email, or (nil, nil) when absent.
	GetByEmail(email string) (*models.Client, error)
	// Create inserts a new client record.
	Create(client *models.Client) error
	// Update modifies an existing client record.
	Update(client *models.Client) error
	// Delete removes a client record by its ID.
	Delete(id string) error
}
