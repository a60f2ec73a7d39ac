package invoice

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/invoice"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// SaveInput is a submitted invoice. Line amounts and totals are
// recomputed server-side; client-calculated figures are ignored.
type SaveInput struct {
	InvoiceNo       string             `json:"invoice_no" binding:"required"`
	JobNo           int64              `json:"job_no" binding:"required"`
	InvoiceDate     string             `json:"invoice_date"`
	CustomerDetails json.RawMessage    `json:"customer_details"`
	Items           []invoice.LineItem `json:"items" binding:"required"`
}

// SaveResult carries the recomputed invoice back to the caller
type SaveResult struct {
	InvoiceNo string             `json:"invoice_no"`
	JobNo     int64              `json:"job_no"`
	Items     []invoice.LineItem `json:"items"`
	Totals    invoice.Totals     `json:"totals"`
}

// Service handles invoice generation and retrieval
type Service struct {
	repo   invoice.Repository
	logger *zap.Logger
}

// NewService creates a new invoice Service
func NewService(repo invoice.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save recomputes and stores an invoice. Saving an existing invoice
// number overwrites the previous version.
func (s *Service) Save(ctx context.Context, input SaveInput) (*SaveResult, error) {
	if input.InvoiceNo == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NO", "Invoice number is required")
	}
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_INVOICE", "An invoice needs at least one line item")
	}

	items, totals := invoice.Compute(input.Items)

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	totalsJSON, err := json.Marshal(totals)
	if err != nil {
		return nil, err
	}

	customerDetails := input.CustomerDetails
	if len(customerDetails) == 0 {
		customerDetails = json.RawMessage("{}")
	}

	inv := &invoice.Invoice{
		InvoiceNo:       input.InvoiceNo,
		JobNo:           input.JobNo,
		InvoiceDate:     input.InvoiceDate,
		CustomerDetails: customerDetails,
		Items:           itemsJSON,
		Totals:          totalsJSON,
	}
	if err := s.repo.Upsert(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("invoice saved",
		zap.String("invoice_no", input.InvoiceNo),
		zap.Int64("job_no", input.JobNo),
		zap.Float64("grand_total", totals.GrandTotal),
	)

	return &SaveResult{
		InvoiceNo: input.InvoiceNo,
		JobNo:     input.JobNo,
		Items:     items,
		Totals:    totals,
	}, nil
}

// Get returns an invoice by its number
func (s *Service) Get(ctx context.Context, invoiceNo string) (*invoice.Invoice, error) {
	return s.repo.FindByInvoiceNo(ctx, invoiceNo)
}

// ListByJob returns all invoices raised against a job
func (s *Service) ListByJob(ctx context.Context, jobNo int64) ([]invoice.Invoice, error) {
	return s.repo.FindByJobNo(ctx, jobNo)
}

// List returns all invoices
func (s *Service) List(ctx context.Context) ([]invoice.Invoice, error) {
	return s.repo.FindAll(ctx)
}

// Charges returns the charge catalogue for invoice preparation screens
func (s *Service) Charges() []invoice.Charge {
	return invoice.Charges
}
