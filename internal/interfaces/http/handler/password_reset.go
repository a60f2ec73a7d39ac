package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	identityapp "github.com/ssrlogistics/backend/internal/application/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// PasswordResetHandler drives the forgot-password flow: resolve the
// account's email, mail a code, verify it, change the password.
type PasswordResetHandler struct {
	BaseHandler
	resetService  *identityapp.PasswordResetService
	sendLimiter   gin.HandlerFunc
	verifyLimiter gin.HandlerFunc
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(
	resetService *identityapp.PasswordResetService,
	sendLimiter gin.HandlerFunc,
	verifyLimiter gin.HandlerFunc,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetService:  resetService,
		sendLimiter:   sendLimiter,
		verifyLimiter: verifyLimiter,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *PasswordResetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/get-email", h.GetEmail)
	auth.POST("/send-otp", h.sendLimiter, h.SendOTP)
	auth.POST("/verify-otp", h.verifyLimiter, h.VerifyOTP)
	auth.POST("/reset-password", h.ResetPassword)
}

// GetEmailRequest asks for the address tied to a username
type GetEmailRequest struct {
	UserName string `json:"user_name" binding:"required"`
}

// GetEmail resolves a username to an email address. Unknown usernames
// get the support contact, so the response never reveals whether an
// account exists.
func (h *PasswordResetHandler) GetEmail(c *gin.Context) {
	var req GetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Username is required")
		return
	}

	email, err := h.resetService.ResolveEmail(c.Request.Context(), req.UserName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"email": email})
}

// SendOTPRequest carries the address the code is mailed to
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTP mails a fresh verification code. Unregistered addresses get
// the same answer as registered ones.
func (h *PasswordResetHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A valid email is required")
		return
	}

	if err := h.resetService.SendOTP(c.Request.Context(), req.Email); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "EMAIL_NOT_REGISTERED" {
			h.Message(c, "If this email exists, you will receive a verification code.")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Verification code sent to your email")
}

// VerifyOTPRequest carries a code attempt
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP checks a code attempt and opens the reset window
func (h *PasswordResetHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email and verification code are required")
		return
	}

	if err := h.resetService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Code verified. You may now reset your password.")
}

// ResetPasswordRequest carries the new credentials
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetPassword changes the password inside the verified window
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email, new password and confirmation are required")
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		h.HandleError(c, shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match"))
		return
	}

	if err := h.resetService.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Password has been reset. Please log in with your new password.")
}
