package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	invoiceapp "github.com/ssrlogistics/backend/internal/application/invoice"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.Service
	authMW         gin.HandlerFunc
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.Service, authMW gin.HandlerFunc) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		authMW:         authMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoice := rg.Group("/invoice", h.authMW)
	invoice.GET("/charges", h.Charges)
	invoice.GET("/all", h.List)
	invoice.GET("/job/:jobNo", h.ListByJob)
	invoice.GET("/no/:invoiceNo", h.Get)
	invoice.POST("/save", h.Save)
}

// Charges returns the static charge classification table the invoice
// editor offers
func (h *InvoiceHandler) Charges(c *gin.Context) {
	h.Success(c, h.invoiceService.Charges())
}

// List returns every saved invoice
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ListByJob returns the invoices raised against one booking
func (h *InvoiceHandler) ListByJob(c *gin.Context) {
	jobNo, err := strconv.ParseInt(c.Param("jobNo"), 10, 64)
	if err != nil || jobNo < 1 {
		h.BadRequest(c, "Invalid job number")
		return
	}

	invoices, err := h.invoiceService.ListByJob(c.Request.Context(), jobNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Get returns a single invoice by invoice number
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoiceService.Get(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Save upserts an invoice. Tax and totals are recomputed server-side;
// whatever the client claims is discarded.
func (h *InvoiceHandler) Save(c *gin.Context) {
	var input invoiceapp.SaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.invoiceService.Save(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
