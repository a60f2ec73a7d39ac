package kyc

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ssrlogistics/backend/internal/domain/kyc"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

const downloadURLTTL = 15 * time.Minute

// DocumentUpload is one uploaded KYC document.
type DocumentUpload struct {
	Field       string // one of kyc.DocumentFields
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentLink is a presigned view of a stored document.
type DocumentLink struct {
	Field     string    `json:"field"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomerService handles KYC customer onboarding
type CustomerService struct {
	repo    kyc.Repository
	storage ObjectStorageService
	logger  *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo kyc.Repository, storage ObjectStorageService, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, storage: storage, logger: logger}
}

// Create inserts a customer and uploads its documents. The row is
// written first so the uploads have an id to key under; document paths
// are attached in a follow-up update once every upload lands.
func (s *CustomerService) Create(ctx context.Context, submitted map[string]any, documents []DocumentUpload) (int64, error) {
	fields := kyc.AllowedFields.Filter(submitted)
	if len(fields) == 0 {
		return 0, shared.ErrNoValidFields
	}

	for _, doc := range documents {
		if !kyc.IsDocumentField(doc.Field) {
			return 0, shared.NewDomainError("INVALID_DOCUMENT_FIELD",
				fmt.Sprintf("Unknown document field %q", doc.Field))
		}
	}

	customerID, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return 0, err
	}

	if len(documents) == 0 {
		s.logger.Info("kyc customer created", zap.Int64("customer_id", customerID))
		return customerID, nil
	}

	docPaths, err := s.uploadDocuments(ctx, customerID, documents)
	if err != nil {
		return 0, err
	}

	if err := s.repo.UpdateFields(ctx, customerID, docPaths); err != nil {
		return 0, err
	}

	s.logger.Info("kyc customer created",
		zap.Int64("customer_id", customerID),
		zap.Int("documents", len(documents)),
	)
	return customerID, nil
}

// uploadDocuments pushes all documents concurrently and returns the
// column updates mapping document fields to storage keys.
func (s *CustomerService) uploadDocuments(ctx context.Context, customerID int64, documents []DocumentUpload) (map[string]any, error) {
	keys := make([]string, len(documents))

	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range documents {
		key := documentKey(customerID, doc.Field, doc.Filename)
		keys[i] = key
		data, contentType := doc.Data, doc.ContentType
		g.Go(func() error {
			return s.storage.Upload(gctx, key, data, contentType)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, shared.NewDomainError("DOCUMENT_UPLOAD_FAILED", "Failed to store a KYC document")
	}

	docPaths := make(map[string]any, len(documents))
	for i, doc := range documents {
		docPaths[doc.Field] = keys[i]
	}
	return docPaths, nil
}

// Get returns a customer by id
func (s *CustomerService) Get(ctx context.Context, id int64) (*kyc.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all customers
func (s *CustomerService) List(ctx context.Context) ([]kyc.Customer, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a partial update, uploading any replacement documents
// first so their new keys ride along in the same write.
func (s *CustomerService) Update(ctx context.Context, id int64, submitted map[string]any, documents []DocumentUpload) error {
	fields := kyc.AllowedDocumentFields.Filter(submitted)

	for _, doc := range documents {
		if !kyc.IsDocumentField(doc.Field) {
			return shared.NewDomainError("INVALID_DOCUMENT_FIELD",
				fmt.Sprintf("Unknown document field %q", doc.Field))
		}
	}
	if len(documents) > 0 {
		docPaths, err := s.uploadDocuments(ctx, id, documents)
		if err != nil {
			return err
		}
		for field, key := range docPaths {
			fields[field] = key
		}
	}

	if len(fields) == 0 {
		return shared.ErrNoValidFields
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info("kyc customer updated", zap.Int64("customer_id", id))
	return nil
}

// Delete removes the customer row and clears its documents from storage.
// Storage cleanup is best effort; an orphaned object is preferable to a
// half-deleted customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, key := range customer.DocumentKeys() {
		if key == "" {
			continue
		}
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("failed to delete kyc document",
				zap.Int64("customer_id", id),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("kyc customer deleted", zap.Int64("customer_id", id))
	return nil
}

// Documents returns presigned download links for a customer's stored
// documents.
func (s *CustomerService) Documents(ctx context.Context, id int64) ([]DocumentLink, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	links := make([]DocumentLink, 0, len(kyc.DocumentFields))
	for field, key := range customer.DocumentsByField() {
		if key == "" {
			continue
		}
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, downloadURLTTL)
		if err != nil {
			return nil, err
		}
		links = append(links, DocumentLink{
			Field:     field,
			Key:       key,
			URL:       url,
			ExpiresAt: expiresAt,
		})
	}
	return links, nil
}

// documentKey builds the storage key for a customer document. The
// original filename contributes only its extension.
func documentKey(customerID int64, field, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("kyc/%d/%s%s", customerID, field, ext)
}
