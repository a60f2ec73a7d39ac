package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	bookingapp "github.com/ssrlogistics/backend/internal/application/booking"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
)

// BookingHandler handles shipment booking endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.Service
	authMW         gin.HandlerFunc
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *bookingapp.Service, authMW gin.HandlerFunc) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		authMW:         authMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	booking := rg.Group("/booking", h.authMW)
	booking.GET("/init", h.Init)
	booking.POST("/insert", h.Insert)
	booking.GET("/get", h.List)
	booking.GET("/get/:jobNo", h.Get)
	booking.PUT("/update/:jobNo", h.Update)
	booking.PATCH("/status/:jobNo", h.UpdateStatus)
}

// Init returns the job number the next insert is expected to take
func (h *BookingHandler) Init(c *gin.Context) {
	resp, err := h.bookingService.Init(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Insert creates a booking from the whitelisted fields of the payload
func (h *BookingHandler) Insert(c *gin.Context) {
	var submitted map[string]any
	if err := c.ShouldBindJSON(&submitted); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	resp, err := h.bookingService.Create(c.Request.Context(), submitted)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns all bookings, latest first
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bookings)
}

// Get returns a single booking by job number
func (h *BookingHandler) Get(c *gin.Context) {
	jobNo, ok := h.jobNoParam(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Get(c.Request.Context(), jobNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Update applies a whitelisted partial update to a booking
func (h *BookingHandler) Update(c *gin.Context) {
	jobNo, ok := h.jobNoParam(c)
	if !ok {
		return
	}

	var submitted map[string]any
	if err := c.ShouldBindJSON(&submitted); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	if err := h.bookingService.Update(c.Request.Context(), jobNo, submitted); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Booking updated")
}

// UpdateStatusRequest carries the new booking status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a booking to a new status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	jobNo, ok := h.jobNoParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Status is required")
		return
	}

	if err := h.bookingService.UpdateStatus(c.Request.Context(), jobNo, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Status updated")
}

func (h *BookingHandler) jobNoParam(c *gin.Context) (int64, bool) {
	jobNo, err := strconv.ParseInt(c.Param("jobNo"), 10, 64)
	if err != nil || jobNo < 1 {
		h.BadRequest(c, "Invalid job number")
		return 0, false
	}
	return jobNo, true
}
