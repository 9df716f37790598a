package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// ErrOTPNotFound signals that no pending code exists for the phone number.
var ErrOTPNotFound = errors.New("otp code not found")

const otpKeyPrefix = "otp:"

// OTPRepository stores pending one-time codes. Codes are single-use and
// expire server-side; Redis TTL backs the embedded expiry so a stale
// code disappears even if never presented.
type OTPRepository interface {
	Save(ctx context.Context, code *domain.OTPCode) error
	Get(ctx context.Context, phone string) (*domain.OTPCode, error)
	Delete(ctx context.Context, phone string) error
}

type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository returns a Redis-backed implementation.
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func (r *otpRepository) Save(ctx context.Context, code *domain.OTPCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return err
	}
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return errors.New("otp code already expired")
	}
	return r.client.Set(ctx, otpKeyPrefix+code.Phone, payload, ttl).Err()
}

func (r *otpRepository) Get(ctx context.Context, phone string) (*domain.OTPCode, error) {
	raw, err := r.client.Get(ctx, otpKeyPrefix+phone).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	var code domain.OTPCode
	if err := json.Unmarshal(raw, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *otpRepository) Delete(ctx context.Context, phone string) error {
	return r.client.Del(ctx, otpKeyPrefix+phone).Err()
}
