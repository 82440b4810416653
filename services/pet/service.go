package pet

import (
	"errors"
	"fmt"

	petRepo "sftails/database/repository/pet"
	"sftails/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotOwner signals a mutation attempted by someone other than the pet's
// owner.
var ErrNotOwner = errors.New("pet not found or not owned by caller")

// PetInput is the client-supplied pet payload.
type PetInput struct {
	Name  string `json:"name" binding:"required"`
	Breed string `json:"breed,omitempty"`
	Size  string `json:"size,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PetService manages pet profiles. Every mutation is checked against the
// owning client.
type PetService interface {
	Create(clientID string, input PetInput) (*models.Pet, error)
	ListForClient(clientID string) ([]models.Pet, error)
	Update(clientID, petID string, input PetInput) (*models.Pet, error)
	Delete(clientID, petID string) error
	SetPhoto(clientID, petID, photoID string) (*models.Pet, error)
}

// DefaultPetService is the production implementation.
type DefaultPetService struct {
	Repo   petRepo.PetRepository
	Logger *zap.Logger
}

// Create adds a pet to the client's profile.
func (s *DefaultPetService) Create(clientID string, input PetInput) (*models.Pet, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("pet name is required")
	}

	pet := &models.Pet{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Name:     input.Name,
		Breed:    input.Breed,
		Size:     input.Size,
		Notes:    input.Notes,
	}
	if err := s.Repo.Create(pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.Logger.Info("pet created", zap.String("pet", pet.ID), zap.String("client", clientID))
	return pet, nil
}

// ListForClient returns the client's pets.
func (s *DefaultPetService) ListForClient(clientID string) ([]models.Pet, error) {
	return s.Repo.GetByClient(clientID)
}

// Update edits a pet the caller owns.
func (s *DefaultPetService) Update(clientID, petID string, input PetInput) (*models.Pet, error) {
	pet, err := s.owned(clientID, petID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		pet.Name = input.Name
	}
	pet.Breed = input.Breed
	pet.Size = input.Size
	pet.Notes = input.Notes

	if err := s.Repo.Update(pet); err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	return pet, nil
}

// Delete removes a pet the caller owns.
func (s *DefaultPetService) Delete(clientID, petID string) error {
	if _, err := s.owned(clientID, petID); err != nil {
		return err
	}
	return s.Repo.Delete(petID)
}

// SetPhoto attaches an uploaded photo id to a pet the caller owns.
func (s *DefaultPetService) SetPhoto(clientID, petID, photoID string) (*models.Pet, error) {
	pet, err := s.owned(clientID, petID)
	if err != nil {
		return nil, err
	}

	pet.PhotoID = photoID
	if err := s.Repo.Update(pet); err != nil {
		return nil, fmt.Errorf("failed to attach pet photo: %w", err)
	}
	return pet, nil
}

// owned fetches a pet and enforces the ownership check.
func (s *DefaultPetService) owned(clientID, petID string) (*models.Pet, error) {
	pet, err := s.Repo.GetByID(petID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pet: %w", err)
	}
	if pet == nil || pet.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return pet, nil
}
