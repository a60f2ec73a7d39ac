package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ssrlogistics/backend/internal/domain/invoice"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// GormInvoiceRepository implements invoice.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Upsert inserts the invoice or, when one with the same invoice number
// exists, replaces it. Regenerating an invoice is an idempotent save.
func (r *GormInvoiceRepository) Upsert(ctx context.Context, inv *invoice.Invoice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "invoice_no"}},
			UpdateAll: true,
		}).
		Create(inv).Error
}

// FindByInvoiceNo finds an invoice by its number
func (r *GormInvoiceRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "invoice_no = ?", invoiceNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByJobNo returns all invoices raised against a job
func (r *GormInvoiceRepository) FindByJobNo(ctx context.Context, jobNo int64) ([]invoice.Invoice, error) {
	var invoices []invoice.Invoice
	if err := r.db.WithContext(ctx).
		Where("job_no = ?", jobNo).
		Order("invoice_no ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindAll returns all invoices
func (r *GormInvoiceRepository) FindAll(ctx context.Context) ([]invoice.Invoice, error) {
	var invoices []invoice.Invoice
	if err := r.db.WithContext(ctx).Order("invoice_no ASC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

var _ invoice.Repository = (*GormInvoiceRepository)(nil)
