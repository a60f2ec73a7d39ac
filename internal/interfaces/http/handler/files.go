package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	kycapp "github.com/ssrlogistics/backend/internal/application/kyc"
)

// downloadURLTTL bounds how long an ad-hoc presigned URL stays valid.
const downloadURLTTL = 15 * time.Minute

// FilesHandler exposes raw object-storage operations for back-office
// cleanup. All routes are admin-gated.
type FilesHandler struct {
	BaseHandler
	storage kycapp.ObjectStorageService
	authMW  gin.HandlerFunc
	adminMW gin.HandlerFunc
}

// NewFilesHandler creates a new FilesHandler
func NewFilesHandler(storage kycapp.ObjectStorageService, authMW, adminMW gin.HandlerFunc) *FilesHandler {
	return &FilesHandler{
		storage: storage,
		authMW:  authMW,
		adminMW: adminMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *FilesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files", h.authMW, h.adminMW)
	files.GET("/url", h.DownloadURL)
	files.GET("/list", h.List)
	files.DELETE("/delete", h.Delete)
}

// DownloadURL returns a presigned GET URL for a stored key
func (h *FilesHandler) DownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key query parameter is required")
		return
	}

	exists, err := h.storage.ObjectExists(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !exists {
		h.NotFound(c, "Object not found")
		return
	}

	url, expiresAt, err := h.storage.GenerateDownloadURL(c.Request.Context(), key, downloadURLTTL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"key":        key,
		"url":        url,
		"expires_at": expiresAt,
	})
}

// List returns the objects stored under a prefix
func (h *FilesHandler) List(c *gin.Context) {
	objects, err := h.storage.ListObjects(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, objects)
}

// Delete removes a stored object. Deleting a missing key succeeds.
func (h *FilesHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key query parameter is required")
		return
	}

	if err := h.storage.DeleteObject(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Object deleted")
}
