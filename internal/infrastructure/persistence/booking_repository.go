package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ssrlogistics/backend/internal/domain/booking"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// GormBookingRepository implements booking.Repository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Insert creates a booking from already-filtered fields and returns the
// assigned job number. The insert and the id read share one transaction
// so LAST_INSERT_ID comes from the same connection.
func (r *GormBookingRepository) Insert(ctx context.Context, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, shared.ErrNoValidFields
	}

	var jobNo int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking.Booking{}).Create(fields).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT LAST_INSERT_ID()").Scan(&jobNo).Error
	})
	if err != nil {
		return 0, err
	}
	return jobNo, nil
}

// FindByJobNo finds a booking by job number
func (r *GormBookingRepository) FindByJobNo(ctx context.Context, jobNo int64) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.WithContext(ctx).First(&b, "job_no = ?", jobNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAll returns all bookings, newest job first
func (r *GormBookingRepository) FindAll(ctx context.Context) ([]booking.Booking, error) {
	var bookings []booking.Booking
	if err := r.db.WithContext(ctx).Order("job_no DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateFields applies a partial update to a booking
func (r *GormBookingRepository) UpdateFields(ctx context.Context, jobNo int64, fields map[string]any) error {
	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}
	result := r.db.WithContext(ctx).
		Model(&booking.Booking{}).
		Where("job_no = ?", jobNo).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&booking.Booking{}).
			Where("job_no = ?", jobNo).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// NextJobNo reports the job number the next insert is expected to take.
// It reconciles the table's AUTO_INCREMENT counter with the highest
// stored job_no, since the counter can lag after restores or manual
// inserts. The value is informational, not a reservation.
func (r *GormBookingRepository) NextJobNo(ctx context.Context) (int64, error) {
	var autoIncrement int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT IFNULL(AUTO_INCREMENT, 1) FROM information_schema.TABLES
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'Booking'`,
	).Scan(&autoIncrement).Error
	if err != nil {
		return 0, err
	}

	var maxJobNo int64
	if err := r.db.WithContext(ctx).Raw(
		"SELECT IFNULL(MAX(job_no), 0) FROM Booking",
	).Scan(&maxJobNo).Error; err != nil {
		return 0, err
	}

	next := autoIncrement
	if maxJobNo+1 > next {
		next = maxJobNo + 1
	}
	if next < 1 {
		next = 1
	}
	return next, nil
}

var _ booking.Repository = (*GormBookingRepository)(nil)
