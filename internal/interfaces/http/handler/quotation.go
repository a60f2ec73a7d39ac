package handler

import (
	"github.com/gin-gonic/gin"

	quotationapp "github.com/ssrlogistics/backend/internal/application/quotation"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
)

// QuotationHandler handles the quotation-mail endpoint
type QuotationHandler struct {
	BaseHandler
	quotationService *quotationapp.Service
	authMW           gin.HandlerFunc
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *quotationapp.Service, authMW gin.HandlerFunc) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		authMW:           authMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mail := rg.Group("/mail", h.authMW)
	mail.POST("/send-quotation", h.Send)
}

// Send mails a rendered quotation to the requested address
func (h *QuotationHandler) Send(c *gin.Context) {
	var input quotationapp.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	if err := h.quotationService.Send(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Quotation sent")
}
