package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssrlogistics/backend/internal/infrastructure/auth"
	"github.com/ssrlogistics/backend/internal/infrastructure/config"
)

func newTestRouter(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(jwtService)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"email":   GetJWTEmail(c),
			"role":    GetJWTRole(c),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func newJWTService(t *testing.T, expiration time.Duration) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Expiration: expiration,
		Issuer:     "ssr-backend",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) string {
	t.Helper()
	token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
		UserID: 7,
		Email:  "ops@ssrlogistics.in",
		Role:   role,
	})
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newJWTService(t, time.Hour)

	t.Run("missing credentials returns 401", func(t *testing.T) {
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("garbage token returns 403", func(t *testing.T) {
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token returns 403 with TOKEN_EXPIRED", func(t *testing.T) {
		expiredSvc := newJWTService(t, -time.Hour)
		token := issueToken(t, expiredSvc, "admin")

		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("valid bearer token passes and sets claims", func(t *testing.T) {
		token := issueToken(t, svc, "accounts")

		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"accounts"`)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("token cookie works when header is absent", func(t *testing.T) {
		token := issueToken(t, svc, "admin")

		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieKey, Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bearer header wins over cookie", func(t *testing.T) {
		good := issueToken(t, svc, "admin")

		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"broken")
		req.AddCookie(&http.Cookie{Name: TokenCookieKey, Value: good})
		r.ServeHTTP(w, req)

		// the invalid header must not be silently replaced by the cookie
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	svc := newJWTService(t, time.Hour)

	t.Run("matching role passes", func(t *testing.T) {
		token := issueToken(t, svc, "admin")

		r := newTestRouter(svc, RequireRole("admin"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other role gets 403", func(t *testing.T) {
		token := issueToken(t, svc, "new_user")

		r := newTestRouter(svc, RequireRole("admin"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
