package booking

import "context"

// Repository defines persistence operations for bookings.
type Repository interface {
	// Insert persists a whitelist-filtered record and returns the issued
	// job number.
	Insert(ctx context.Context, fields map[string]any) (int64, error)
	FindByJobNo(ctx context.Context, jobNo int64) (*Booking, error)
	FindAll(ctx context.Context) ([]Booking, error)
	UpdateFields(ctx context.Context, jobNo int64, fields map[string]any) error
	// NextJobNo reconciles the table AUTO_INCREMENT value against
	// MAX(job_no)+1 and returns the larger. It is a read, not a
	// reservation: two concurrent callers can observe the same number and
	// the second insert fails on the primary key.
	NextJobNo(ctx context.Context) (int64, error)
}
