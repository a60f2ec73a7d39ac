package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/ssrlogistics/backend/internal/application/identity"
	"github.com/ssrlogistics/backend/internal/infrastructure/config"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles login, registration and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	userService *identityapp.UserService
	cookieCfg   config.CookieConfig
	authMW      gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService *identityapp.AuthService,
	userService *identityapp.UserService,
	cookieCfg config.CookieConfig,
	authMW gin.HandlerFunc,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cookieCfg:   cookieCfg,
		authMW:      authMW,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.authMW, h.Me)
}

// Login authenticates credentials and issues the session token, both
// in the body and as the httpOnly cookie browser clients rely on.
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setTokenCookie(c, result.Token, time.Until(result.ExpiresAt))
	h.Success(c, result)
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Logout clears the token cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -time.Second)
	h.Message(c, "Logged out")
}

// Me returns the account behind the presented token
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == 0 {
		h.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	path := h.cookieCfg.Path
	if path == "" {
		path = "/"
	}
	c.SetCookie(
		middleware.TokenCookieKey,
		token,
		int(maxAge.Seconds()),
		path,
		h.cookieCfg.Domain,
		h.cookieCfg.Secure,
		true,
	)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
