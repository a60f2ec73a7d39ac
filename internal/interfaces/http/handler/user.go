package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	identityapp "github.com/ssrlogistics/backend/internal/application/identity"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
)

// UserHandler handles the admin user-management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	authMW      gin.HandlerFunc
	adminMW     gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService, authMW, adminMW gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		userService: userService,
		authMW:      authMW,
		adminMW:     adminMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", h.authMW, h.adminMW)
	admin.GET("/users", h.List)
	admin.PUT("/user/:id", h.Update)
	admin.DELETE("/user/:id", h.Delete)
}

// List returns every account together with the assignable role set
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	roles, err := h.userService.Roles(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"users": users,
		"roles": roles,
	})
}

// Update applies a whitelisted partial update to an account
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	var submitted map[string]any
	if err := c.ShouldBindJSON(&submitted); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	if err := h.userService.Update(c.Request.Context(), id, submitted); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "User updated")
}

// Delete removes an account
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "User deleted")
}
