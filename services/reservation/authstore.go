package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sftails/models"

	"github.com/go-redis/redis/v8"
)

const authRecordPrefix = "paymentauth:"

// authRecordTTL bounds how long an authorization stays reconcilable. The
// gateway's client-side confirmation flow completes well within this window.
const authRecordTTL = 30 * time.Minute

// AuthorizationStore keeps the authorization issued for a booking so the
// later settlement can be reconciled against it.
type AuthorizationStore interface {
	// Save stores the authorization record for a booking.
	Save(ctx context.Context, auth models.PaymentAuthorization) error
	// Get retrieves the record for a booking, or (nil, nil) when none is
	// live (never requested, or expired).
	Get(ctx context.Context, bookingID string) (*models.PaymentAuthorization, error)
}

// RedisAuthorizationStore implements AuthorizationStore on Redis with a TTL.
type RedisAuthorizationStore struct {
	client *redis.Client
}

// NewRedisAuthorizationStore creates an AuthorizationStore on the given
// Redis client.
func NewRedisAuthorizationStore(client *redis.Client) *RedisAuthorizationStore {
	return &RedisAuthorizationStore{client: client}
}

// Save stores the authorization record under the booking id.
func (s *RedisAuthorizationStore) Save(ctx context.Context, auth models.PaymentAuthorization) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal authorization record: %w", err)
	}
	if err := s.client.Set(ctx, authRecordPrefix+auth.BookingID, data, authRecordTTL).Err(); err != nil {
		return fmt.Errorf("failed to save authorization record: %w", err)
	}
	return nil
}

// Get retrieves the authorization record for a booking.
func (s *RedisAuthorizationStore) Get(ctx context.Context, bookingID string) (*models.PaymentAuthorization, error) {
	data, err := s.client.Get(ctx, authRecordPrefix+bookingID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch authorization record: %w", err)
	}
	var auth models.PaymentAuthorization
	if err := json.Unmarshal([]byte(data), &auth); err != nil {
		return nil, fmt.Errorf("failed to unmarshal authorization record: %w", err)
	}
	return &auth, nil
}
