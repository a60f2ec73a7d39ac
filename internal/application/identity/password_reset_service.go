package identity

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
	"github.com/ssrlogistics/backend/internal/infrastructure/config"
	"github.com/ssrlogistics/backend/internal/infrastructure/otp"
)

var otpFormat = regexp.MustCompile(`^\d{6}$`)

// fallbackContactEmail is returned by ResolveEmail when the username is
// unknown, so the endpoint never reveals whether an account exists.
const fallbackContactEmail = "admin@ssrlogistics.in"

// OTPMailer sends password-reset mail. Implemented by mail.SMTPMailer.
type OTPMailer interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
	SendPasswordChanged(ctx context.Context, to string) error
}

// PasswordResetService drives the three-step reset flow: a code is
// mailed to the account's address, verified, and then exchanged for a
// password change within a bounded window.
type PasswordResetService struct {
	userRepo identity.UserRepository
	store    otp.Store
	mailer   OTPMailer
	cfg      config.OTPConfig
	logger   *zap.Logger
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(
	userRepo identity.UserRepository,
	store otp.Store,
	mailer OTPMailer,
	cfg config.OTPConfig,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo: userRepo,
		store:    store,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

// ResolveEmail maps a username to the address reset codes are sent to.
// Unknown usernames get the support contact so the response shape is the
// same either way.
func (s *PasswordResetService) ResolveEmail(ctx context.Context, userName string) (string, error) {
	if userName == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "Username is required")
	}
	user, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return fallbackContactEmail, nil
	}
	return user.Email, nil
}

// SendOTP issues a fresh code for the account and mails it. A new code
// replaces any outstanding one.
func (s *PasswordResetService) SendOTP(ctx context.Context, email string) error {
	if err := identity.ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("EMAIL_NOT_REGISTERED", "No account exists for this email")
		}
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	rec := otp.Record{
		Code:      code,
		UserID:    user.UserID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.cfg.TTL),
		Attempts:  s.cfg.MaxAttempts,
	}
	if err := s.store.Put(ctx, user.Email, rec); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(ctx, user.Email, code, s.cfg.TTL); err != nil {
		// The record is useless if the mail never left; drop it so the
		// user can retry immediately.
		if delErr := s.store.Delete(ctx, user.Email); delErr != nil {
			s.logger.Error("failed to roll back otp record", zap.Error(delErr))
		}
		return shared.NewDomainError("OTP_SEND_FAILED", "Failed to send the reset code")
	}

	s.logger.Info("otp issued", zap.Int64("user_id", user.UserID))
	return nil
}

// VerifyOTP checks a submitted code. A wrong code consumes an attempt;
// exhausting all attempts cancels the code.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	if err := identity.ValidateEmail(email); err != nil {
		return err
	}
	if !otpFormat.MatchString(code) {
		return shared.NewDomainError("INVALID_OTP_FORMAT", "OTP must be a 6-digit code")
	}

	rec, ok, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("OTP_NOT_FOUND", "OTP not found or expired")
	}

	if time.Now().After(rec.ExpiresAt) {
		if err := s.store.Delete(ctx, email); err != nil {
			return err
		}
		return shared.NewDomainError("OTP_EXPIRED", "OTP has expired")
	}

	if rec.Code != code {
		rec.Attempts--
		if rec.Attempts <= 0 {
			if err := s.store.Delete(ctx, email); err != nil {
				return err
			}
			return shared.NewDomainError("OTP_MAX_ATTEMPTS", "Too many incorrect attempts; request a new code")
		}
		if err := s.store.Update(ctx, email, rec); err != nil {
			return err
		}
		return shared.NewDomainError("INVALID_OTP",
			fmt.Sprintf("Incorrect OTP; %d attempts remaining", rec.Attempts))
	}

	rec.Verified = true
	rec.VerifiedAt = time.Now()
	if err := s.store.Update(ctx, email, rec); err != nil {
		return err
	}

	s.logger.Info("otp verified", zap.Int64("user_id", rec.UserID))
	return nil
}

// ResetPassword changes the password for an account whose code was
// verified inside the reset window. The record is consumed either way
// once the window question is settled.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if err := identity.ValidateEmail(email); err != nil {
		return err
	}
	if err := identity.ValidatePassword(newPassword); err != nil {
		return err
	}

	rec, ok, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok || !rec.Verified {
		return shared.NewDomainError("RESET_NOT_VERIFIED", "Verify the OTP before resetting the password")
	}

	if time.Now().After(rec.VerifiedAt.Add(s.cfg.ResetWindow)) {
		if err := s.store.Delete(ctx, email); err != nil {
			return err
		}
		return shared.NewDomainError("RESET_WINDOW_EXPIRED", "The reset window has closed; start over")
	}

	hash, err := identity.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, email); err != nil {
		s.logger.Error("failed to consume otp record", zap.Error(err))
	}

	// Confirmation mail is best effort; the reset already happened.
	if err := s.mailer.SendPasswordChanged(ctx, email); err != nil {
		s.logger.Warn("failed to send password-changed mail", zap.Error(err))
	}

	s.logger.Info("password reset", zap.Int64("user_id", rec.UserID))
	return nil
}

// SweepExpired removes stale reset records. Wired as a periodic task.
func (s *PasswordResetService) SweepExpired(ctx context.Context) error {
	removed, err := s.store.Sweep(ctx, time.Now(), s.cfg.ResetWindow)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Debug("swept stale otp records", zap.Int("removed", removed))
	}
	return nil
}
