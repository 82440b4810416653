package identity

import (
	"time"

	"sftails/config"

	"github.com/golang-jwt/jwt"
)

// Principal is the verified identity of a caller: who they are and what role
// their credential carries. The role is extracted exactly once here and
// passed explicitly into every operation that needs it; nothing downstream
// re-parses the token.
type Principal struct {
	SubjectID string
	Role      string
}

// IdentityService issues and resolves signed session tokens.
type IdentityService interface {
	// IssueToken creates a signed JWT carrying the subject and role claims.
	IssueToken(subjectID, role string, duration time.Duration) (string, error)
	// ResolveToken validates a bearer token and returns its Principal.
	// Fails with ErrUnauthenticated when the token is empty and
	// ErrInvalidToken when it is malformed, badly signed, or expired.
	ResolveToken(tokenString string) (Principal, error)
}

// DefaultIdentityService implements IdentityService with HMAC-SHA256 JWTs.
type DefaultIdentityService struct {
	secret []byte
}

// NewIdentityService creates an IdentityService using the configured secret.
func NewIdentityService() *DefaultIdentityService {
	return &DefaultIdentityService{secret: []byte(config.AppConfig.JWTSecret)}
}

// NewIdentityServiceWithSecret creates an IdentityService with an explicit
// secret. Used by tests.
func NewIdentityServiceWithSecret(secret string) *DefaultIdentityService {
	return &DefaultIdentityService{secret: []byte(secret)}
}

// IssueToken creates a signed JWT with subject, role, iat and exp claims.
func (s *DefaultIdentityService) IssueToken(subjectID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveToken parses and validates a token string and extracts its Principal.
func (s *DefaultIdentityService) ResolveToken(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Principal{}, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{SubjectID: sub, Role: role}, nil
}
