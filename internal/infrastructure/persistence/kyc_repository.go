package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ssrlogistics/backend/internal/domain/kyc"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// GormKYCRepository implements kyc.Repository using GORM
type GormKYCRepository struct {
	db *gorm.DB
}

// NewGormKYCRepository creates a new GormKYCRepository
func NewGormKYCRepository(db *gorm.DB) *GormKYCRepository {
	return &GormKYCRepository{db: db}
}

// Insert creates a customer record from already-filtered fields and
// returns the assigned customer id.
func (r *GormKYCRepository) Insert(ctx context.Context, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, shared.ErrNoValidFields
	}

	var customerID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&kyc.Customer{}).Create(fields).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT LAST_INSERT_ID()").Scan(&customerID).Error
	})
	if err != nil {
		return 0, err
	}
	return customerID, nil
}

// FindByID finds a customer by primary key
func (r *GormKYCRepository) FindByID(ctx context.Context, id int64) (*kyc.Customer, error) {
	var c kyc.Customer
	if err := r.db.WithContext(ctx).First(&c, "customer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll returns all customers, newest first
func (r *GormKYCRepository) FindAll(ctx context.Context) ([]kyc.Customer, error) {
	var customers []kyc.Customer
	if err := r.db.WithContext(ctx).Order("customer_id DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdateFields applies a partial update to a customer
func (r *GormKYCRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}
	result := r.db.WithContext(ctx).
		Model(&kyc.Customer{}).
		Where("customer_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&kyc.Customer{}).
			Where("customer_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// Delete removes a customer
func (r *GormKYCRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&kyc.Customer{}, "customer_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ kyc.Repository = (*GormKYCRepository)(nil)
