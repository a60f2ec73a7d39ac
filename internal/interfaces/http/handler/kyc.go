package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	kycapp "github.com/ssrlogistics/backend/internal/application/kyc"
	"github.com/ssrlogistics/backend/internal/domain/kyc"
)

// maxDocumentSize caps a single uploaded KYC document at 10 MiB
const maxDocumentSize = 10 << 20

// KYCHandler handles customer KYC endpoints. Create and update accept
// multipart forms so document scans ride along with the field data.
type KYCHandler struct {
	BaseHandler
	customerService *kycapp.CustomerService
	authMW          gin.HandlerFunc
}

// NewKYCHandler creates a new KYCHandler
func NewKYCHandler(customerService *kycapp.CustomerService, authMW gin.HandlerFunc) *KYCHandler {
	return &KYCHandler{
		customerService: customerService,
		authMW:          authMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *KYCHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/kyc", h.authMW)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/documents/:id", h.Documents)
	group.POST("/add", h.Create)
	group.PUT("/update/:id", h.Update)
	group.DELETE("/delete/:id", h.Delete)
}

// List returns all customers, newest first
func (h *KYCHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Get returns a single customer
func (h *KYCHandler) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Documents returns presigned download links for a customer's stored
// document scans
func (h *KYCHandler) Documents(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	links, err := h.customerService.Documents(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, links)
}

// Create inserts a customer from a multipart form, uploading any
// attached document scans
func (h *KYCHandler) Create(c *gin.Context) {
	fields, documents, ok := h.parseMultipart(c)
	if !ok {
		return
	}

	customerID, err := h.customerService.Create(c.Request.Context(), fields, documents)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"customer_id": customerID})
}

// Update applies a whitelisted partial update, replacing any document
// scans attached to the form
func (h *KYCHandler) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	fields, documents, ok := h.parseMultipart(c)
	if !ok {
		return
	}

	if err := h.customerService.Update(c.Request.Context(), id, fields, documents); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Customer updated")
}

// Delete removes a customer and its stored documents
func (h *KYCHandler) Delete(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Customer deleted")
}

func (h *KYCHandler) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.BadRequest(c, "Invalid customer id")
		return 0, false
	}
	return id, true
}

// parseMultipart splits a form into scalar fields and document uploads
func (h *KYCHandler) parseMultipart(c *gin.Context) (map[string]any, []kycapp.DocumentUpload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Expected a multipart form")
		return nil, nil, false
	}

	fields := make(map[string]any, len(form.Value))
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	var documents []kycapp.DocumentUpload
	for _, field := range kyc.DocumentFields {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}

		upload, err := readDocument(field, files[0])
		if err != nil {
			h.BadRequest(c, "Could not read uploaded file for "+field)
			return nil, nil, false
		}
		if len(upload.Data) > maxDocumentSize {
			h.BadRequest(c, "Uploaded file for "+field+" exceeds the 10MB limit")
			return nil, nil, false
		}
		documents = append(documents, upload)
	}

	return fields, documents, true
}

func readDocument(field string, header *multipart.FileHeader) (kycapp.DocumentUpload, error) {
	file, err := header.Open()
	if err != nil {
		return kycapp.DocumentUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		return kycapp.DocumentUpload{}, err
	}

	return kycapp.DocumentUpload{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
