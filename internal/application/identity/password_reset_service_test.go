package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/shared"
	"github.com/ssrlogistics/backend/internal/infrastructure/config"
	"github.com/ssrlogistics/backend/internal/infrastructure/otp"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *MockUserRepository, *MockOTPMailer, *otp.MemoryStore) {
	t.Helper()
	repo := new(MockUserRepository)
	mailer := new(MockOTPMailer)
	store := otp.NewMemoryStore()
	cfg := config.OTPConfig{
		TTL:           10 * time.Minute,
		ResetWindow:   30 * time.Minute,
		MaxAttempts:   3,
		SweepInterval: 5 * time.Minute,
	}
	svc := NewPasswordResetService(repo, store, mailer, cfg, zap.NewNop())
	return svc, repo, mailer, store
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestPasswordResetService_SendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("issues and mails a six digit code", func(t *testing.T) {
		svc, repo, mailer, store := newResetFixture(t)
		user := newActiveUser(t, "irrelevant-pass")

		repo.On("FindByEmail", ctx, "ops@example.com").Return(user, nil)
		mailer.On("SendOTP", ctx, "ops@example.com", mock.MatchedBy(func(code string) bool {
			return len(code) == 6
		}), 10*time.Minute).Return(nil)

		require.NoError(t, svc.SendOTP(ctx, "ops@example.com"))

		rec, ok, err := store.Get(ctx, "ops@example.com")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 3, rec.Attempts)
		assert.False(t, rec.Verified)
		assert.Equal(t, int64(42), rec.UserID)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		svc, repo, _, _ := newResetFixture(t)
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		err := svc.SendOTP(ctx, "nobody@example.com")

		assert.Equal(t, "EMAIL_NOT_REGISTERED", domainCode(t, err))
	})

	t.Run("mail failure rolls back the record", func(t *testing.T) {
		svc, repo, mailer, store := newResetFixture(t)
		user := newActiveUser(t, "irrelevant-pass")

		repo.On("FindByEmail", ctx, "ops@example.com").Return(user, nil)
		mailer.On("SendOTP", ctx, "ops@example.com", mock.Anything, mock.Anything).
			Return(assert.AnError)

		err := svc.SendOTP(ctx, "ops@example.com")

		assert.Equal(t, "OTP_SEND_FAILED", domainCode(t, err))
		_, ok, _ := store.Get(ctx, "ops@example.com")
		assert.False(t, ok)
	})
}

func TestPasswordResetService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store *otp.MemoryStore, rec otp.Record) {
		t.Helper()
		require.NoError(t, store.Put(ctx, rec.Email, rec))
	}

	t.Run("correct code marks record verified", func(t *testing.T) {
		svc, _, _, store := newResetFixture(t)
		seed(t, store, otp.Record{
			Code: "123456", Email: "ops@example.com", UserID: 42,
			ExpiresAt: time.Now().Add(time.Minute), Attempts: 3,
		})

		require.NoError(t, svc.VerifyOTP(ctx, "ops@example.com", "123456"))

		rec, ok, _ := store.Get(ctx, "ops@example.com")
		require.True(t, ok)
		assert.True(t, rec.Verified)
		assert.WithinDuration(t, time.Now(), rec.VerifiedAt, time.Second)
	})

	t.Run("rejects malformed code before touching the store", func(t *testing.T) {
		svc, _, _, _ := newResetFixture(t)

		err := svc.VerifyOTP(ctx, "ops@example.com", "12a456")

		assert.Equal(t, "INVALID_OTP_FORMAT", domainCode(t, err))
	})

	t.Run("missing record", func(t *testing.T) {
		svc, _, _, _ := newResetFixture(t)

		err := svc.VerifyOTP(ctx, "ops@example.com", "123456")

		assert.Equal(t, "OTP_NOT_FOUND", domainCode(t, err))
	})

	t.Run("expired code is consumed", func(t *testing.T) {
		svc, _, _, store := newResetFixture(t)
		seed(t, store, otp.Record{
			Code: "123456", Email: "ops@example.com",
			ExpiresAt: time.Now().Add(-time.Minute), Attempts: 3,
		})

		err := svc.VerifyOTP(ctx, "ops@example.com", "123456")

		assert.Equal(t, "OTP_EXPIRED", domainCode(t, err))
		_, ok, _ := store.Get(ctx, "ops@example.com")
		assert.False(t, ok)
	})

	t.Run("wrong codes burn attempts then cancel the code", func(t *testing.T) {
		svc, _, _, store := newResetFixture(t)
		seed(t, store, otp.Record{
			Code: "123456", Email: "ops@example.com",
			ExpiresAt: time.Now().Add(time.Minute), Attempts: 3,
		})

		err := svc.VerifyOTP(ctx, "ops@example.com", "000000")
		assert.Equal(t, "INVALID_OTP", domainCode(t, err))

		err = svc.VerifyOTP(ctx, "ops@example.com", "000000")
		assert.Equal(t, "INVALID_OTP", domainCode(t, err))

		err = svc.VerifyOTP(ctx, "ops@example.com", "000000")
		assert.Equal(t, "OTP_MAX_ATTEMPTS", domainCode(t, err))

		// The correct code no longer works.
		err = svc.VerifyOTP(ctx, "ops@example.com", "123456")
		assert.Equal(t, "OTP_NOT_FOUND", domainCode(t, err))
	})
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and consumes the record", func(t *testing.T) {
		svc, repo, mailer, store := newResetFixture(t)
		require.NoError(t, store.Put(ctx, "ops@example.com", otp.Record{
			Code: "123456", Email: "ops@example.com", UserID: 42,
			ExpiresAt: time.Now().Add(time.Minute), Attempts: 3,
			Verified: true, VerifiedAt: time.Now(),
		}))

		repo.On("UpdatePasswordByEmail", ctx, "ops@example.com", mock.MatchedBy(func(hash string) bool {
			return hash != "" && hash != "fresh-new-password"
		})).Return(nil)
		mailer.On("SendPasswordChanged", ctx, "ops@example.com").Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, "ops@example.com", "fresh-new-password"))

		_, ok, _ := store.Get(ctx, "ops@example.com")
		assert.False(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("requires a verified code", func(t *testing.T) {
		svc, _, _, store := newResetFixture(t)
		require.NoError(t, store.Put(ctx, "ops@example.com", otp.Record{
			Code: "123456", Email: "ops@example.com",
			ExpiresAt: time.Now().Add(time.Minute), Attempts: 3,
		}))

		err := svc.ResetPassword(ctx, "ops@example.com", "fresh-new-password")

		assert.Equal(t, "RESET_NOT_VERIFIED", domainCode(t, err))
	})

	t.Run("closed reset window cancels the flow", func(t *testing.T) {
		svc, _, _, store := newResetFixture(t)
		require.NoError(t, store.Put(ctx, "ops@example.com", otp.Record{
			Code: "123456", Email: "ops@example.com",
			ExpiresAt: time.Now().Add(-time.Hour), Attempts: 3,
			Verified: true, VerifiedAt: time.Now().Add(-31 * time.Minute),
		}))

		err := svc.ResetPassword(ctx, "ops@example.com", "fresh-new-password")

		assert.Equal(t, "RESET_WINDOW_EXPIRED", domainCode(t, err))
		_, ok, _ := store.Get(ctx, "ops@example.com")
		assert.False(t, ok)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc, _, _, _ := newResetFixture(t)

		err := svc.ResetPassword(ctx, "ops@example.com", "short")

		assert.Error(t, err)
	})
}
