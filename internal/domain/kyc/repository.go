package kyc

import "context"

// Repository defines persistence operations for KYC customer records.
type Repository interface {
	// Insert persists a whitelist-filtered record and returns the issued
	// customer id.
	Insert(ctx context.Context, fields map[string]any) (int64, error)
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindAll(ctx context.Context) ([]Customer, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}
