package quotation

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
	"github.com/ssrlogistics/backend/internal/infrastructure/mail"
)

// SendInput is a quotation request from the rates screen
type SendInput struct {
	Email         string `json:"email" binding:"required,email"`
	POL           string `json:"pol" binding:"required"`
	POD           string `json:"pod" binding:"required"`
	ContainerSize string `json:"container_size" binding:"required"`
	Rate          string `json:"rate" binding:"required"`
}

// Mailer sends quotation mail. Implemented by mail.SMTPMailer.
type Mailer interface {
	SendQuotation(ctx context.Context, q mail.Quotation) error
}

// Service mails rate quotations to customers
type Service struct {
	mailer Mailer
	logger *zap.Logger
}

// NewService creates a new quotation Service
func NewService(mailer Mailer, logger *zap.Logger) *Service {
	return &Service{mailer: mailer, logger: logger}
}

// Send validates and dispatches a quotation email
func (s *Service) Send(ctx context.Context, input SendInput) error {
	if err := identity.ValidateEmail(input.Email); err != nil {
		return err
	}

	err := s.mailer.SendQuotation(ctx, mail.Quotation{
		To:            input.Email,
		POL:           input.POL,
		POD:           input.POD,
		ContainerSize: input.ContainerSize,
		Rate:          input.Rate,
	})
	if err != nil {
		s.logger.Error("failed to send quotation", zap.Error(err))
		return shared.NewDomainError("QUOTATION_SEND_FAILED", "Failed to send the quotation email")
	}

	s.logger.Info("quotation sent",
		zap.String("pol", input.POL),
		zap.String("pod", input.POD),
	)
	return nil
}
