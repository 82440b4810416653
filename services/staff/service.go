package staff

import (
	"errors"
	"fmt"
	"time"

	staffRepo "sftails/database/repository/staff"
	"sftails/models"
	"sftails/services/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = time.Hour

// ErrEmailTaken signals a registration against an email that already exists.
var ErrEmailTaken = errors.New("a staff user with that email already exists")

// ErrInvalidCredentials signals a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResponse bundles the staff record with a freshly issued token.
type AuthResponse struct {
	Staff models.Staff `json:"user"`
	Token string       `json:"token"`
}

// StaffService manages staff accounts.
type StaffService interface {
	Register(name, email, phone, password, role string) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.Staff, error)
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Repo     staffRepo.StaffRepository
	Identity identity.IdentityService
	Logger   *zap.Logger
}

// Register creates a staff account. An empty role defaults to "staff"; the
// issued token carries the stored role claim.
func (s *DefaultStaffService) Register(name, email, phone, password, role string) (*AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email, and password are required")
	}
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleAdmin {
		return nil, fmt.Errorf("invalid staff role %q", role)
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing staff: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Staff{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.Repo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	token, err := s.Identity.IssueToken(member.ID, member.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.Logger.Info("staff registered", zap.String("staff", member.ID), zap.String("role", member.Role))
	return &AuthResponse{Staff: *member, Token: token}, nil
}

// Authenticate verifies a staff member's credentials.
func (s *DefaultStaffService) Authenticate(email, password string) (*AuthResponse, error) {
	member, err := s.Repo.GetByEmail(email)
	if err != nil {
		s.Logger.Error("Authenticate: failed to fetch staff", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if member == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Identity.IssueToken(member.ID, member.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{Staff: *member, Token: token}, nil
}

// GetByID retrieves a staff member by id.
func (s *DefaultStaffService) GetByID(id string) (*models.Staff, error) {
	return s.Repo.GetByID(id)
}
