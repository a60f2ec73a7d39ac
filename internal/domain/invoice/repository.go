package invoice

import "context"

// Repository defines persistence operations for invoices.
type Repository interface {
	// Upsert saves the invoice keyed by invoice number; an existing row
	// with the same number is overwritten in place.
	Upsert(ctx context.Context, inv *Invoice) error
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*Invoice, error)
	FindByJobNo(ctx context.Context, jobNo int64) ([]Invoice, error)
	FindAll(ctx context.Context) ([]Invoice, error)
}
