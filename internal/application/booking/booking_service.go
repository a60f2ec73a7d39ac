package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/booking"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// Service handles booking operations
type Service struct {
	repo   booking.Repository
	logger *zap.Logger
}

// NewService creates a new booking Service
func NewService(repo booking.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// InitResponse carries the expected next job number for intake forms
type InitResponse struct {
	NextJobNo int64 `json:"next_job_no"`
}

// CreateResponse carries the job number issued by an insert
type CreateResponse struct {
	JobNo int64 `json:"job_no"`
}

// Init reports the job number the next booking is expected to receive.
// Display value only; the insert assigns the real one.
func (s *Service) Init(ctx context.Context) (*InitResponse, error) {
	next, err := s.repo.NextJobNo(ctx)
	if err != nil {
		return nil, err
	}
	return &InitResponse{NextJobNo: next}, nil
}

// Create filters the submitted payload through the booking allow-list
// and inserts what survives.
func (s *Service) Create(ctx context.Context, submitted map[string]any) (*CreateResponse, error) {
	fields := booking.AllowedFields.Filter(submitted)
	if len(fields) == 0 {
		return nil, shared.ErrNoValidFields
	}

	jobNo, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created", zap.Int64("job_no", jobNo))
	return &CreateResponse{JobNo: jobNo}, nil
}

// Get returns a booking by job number
func (s *Service) Get(ctx context.Context, jobNo int64) (*booking.Booking, error) {
	return s.repo.FindByJobNo(ctx, jobNo)
}

// List returns all bookings
func (s *Service) List(ctx context.Context) ([]booking.Booking, error) {
	return s.repo.FindAll(ctx)
}

// Update filters the submitted payload through the allow-list and
// applies what survives to the booking.
func (s *Service) Update(ctx context.Context, jobNo int64, submitted map[string]any) error {
	fields := booking.AllowedFields.Filter(submitted)
	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}

	if err := s.repo.UpdateFields(ctx, jobNo, fields); err != nil {
		return err
	}

	s.logger.Info("booking updated", zap.Int64("job_no", jobNo))
	return nil
}

// UpdateStatus moves a booking to a new status
func (s *Service) UpdateStatus(ctx context.Context, jobNo int64, status string) error {
	if status == "" {
		return shared.NewDomainError("INVALID_STATUS", "Status is required")
	}

	if err := s.repo.UpdateFields(ctx, jobNo, map[string]any{"status": status}); err != nil {
		return err
	}

	s.logger.Info("booking status changed",
		zap.Int64("job_no", jobNo),
		zap.String("status", status),
	)
	return nil
}
