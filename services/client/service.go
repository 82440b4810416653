package client

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "sftails/database/repository/booking"
	clientRepo "sftails/database/repository/client"
	petRepo "sftails/database/repository/pet"
	"sftails/models"
	"sftails/services/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenDuration matches the 1h session the frontend expects.
const tokenDuration = time.Hour

// ErrEmailTaken signals a registration against an email that already exists.
var ErrEmailTaken = errors.New("a client with that email already exists")

// ErrInvalidCredentials signals a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResponse bundles the client record with a freshly issued token.
type AuthResponse struct {
	Client models.Client `json:"user"`
	Token  string        `json:"token"`
}

// ClientService manages client accounts.
type ClientService interface {
	// Register creates a client. An empty password creates a guest account
	// that cannot log back in.
	Register(name, email, phone, password string) (*AuthResponse, error)
	// Authenticate verifies credentials and returns a fresh token.
	Authenticate(email, password string) (*AuthResponse, error)
	// GetByID retrieves a client, or (nil, nil) when absent.
	GetByID(id string) (*models.Client, error)
	// UpdateContact changes the mutable contact fields. Identity (email) is
	// immutable after registration.
	UpdateContact(id, name, phone string) (*models.Client, error)
	// Delete removes the client and cascades to their pets, bookings, and
	// payments.
	Delete(id string) error
}

// DefaultClientService is the production implementation.
type DefaultClientService struct {
	Repo     clientRepo.ClientRepository
	Pets     petRepo.PetRepository
	Bookings bookingRepo.BookingRepository
	Identity identity.IdentityService
	Logger   *zap.Logger
}

// Register creates a new client account and issues a session token.
func (s *DefaultClientService) Register(name, email, phone, password string) (*AuthResponse, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing client: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	client := &models.Client{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		client.PasswordHash = string(hash)
	}

	if err := s.Repo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	token, err := s.Identity.IssueToken(client.ID, models.RoleClient, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.Logger.Info("client registered", zap.String("client", client.ID))
	return &AuthResponse{Client: *client, Token: token}, nil
}

// Authenticate verifies a client's credentials. Guest accounts have no
// password and can never authenticate.
func (s *DefaultClientService) Authenticate(email, password string) (*AuthResponse, error) {
	client, err := s.Repo.GetByEmail(email)
	if err != nil {
		s.Logger.Error("Authenticate: failed to fetch client", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if client == nil || client.IsGuest() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Identity.IssueToken(client.ID, models.RoleClient, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{Client: *client, Token: token}, nil
}

// GetByID retrieves a client by id.
func (s *DefaultClientService) GetByID(id string) (*models.Client, error) {
	return s.Repo.GetByID(id)
}

// UpdateContact changes name and phone; the email stays fixed.
func (s *DefaultClientService) UpdateContact(id, name, phone string) (*models.Client, error) {
	client, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("client with id %s not found", id)
	}

	if name != "" {
		client.Name = name
	}
	client.Phone = phone

	if err := s.Repo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes the client and everything hanging off it.
func (s *DefaultClientService) Delete(id string) error {
	if err := s.Bookings.DeleteBookingsByClient(id); err != nil {
		return fmt.Errorf("failed to cascade bookings: %w", err)
	}
	if err := s.Pets.DeleteByClient(id); err != nil {
		return fmt.Errorf("failed to cascade pets: %w", err)
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Logger.Info("client deleted", zap.String("client", id))
	return nil
}
