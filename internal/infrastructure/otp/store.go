package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Record holds the state of a password-reset code for one email address.
type Record struct {
	Code       string    `json:"code"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expires_at"`
	Attempts   int       `json:"attempts"`
	Verified   bool      `json:"verified"`
	VerifiedAt time.Time `json:"verified_at,omitempty"`
}

// Store persists password-reset codes keyed by email.
// A record passes through three states: issued, verified, consumed
// (deleted). Verified records stay alive for the reset window so the
// password change can be authorized.
type Store interface {
	// Put stores a record, replacing any previous one for the same email.
	Put(ctx context.Context, email string, rec Record) error

	// Get returns the record for an email, reporting whether one exists.
	Get(ctx context.Context, email string) (Record, bool, error)

	// Update overwrites the record for an email.
	Update(ctx context.Context, email string, rec Record) error

	// Delete removes the record for an email.
	Delete(ctx context.Context, email string) error

	// Sweep removes records that are past their useful life: unverified
	// records whose code expired, and verified records whose reset
	// window has closed. Returns the number of records removed.
	Sweep(ctx context.Context, now time.Time, resetWindow time.Duration) (int, error)
}

// GenerateCode returns a random six-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
