package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pms/backend/internal/infrastructure/auth"
	"github.com/pms/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-that-is-long-enough-123",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "pms-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "caretaker1",
		Role:     role,
	})
	require.NoError(t, err)
	return pair, userID
}

func newJWTTestRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/v1/properties", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"username": GetJWTUsername(c),
			"role":     GetJWTRole(c),
		})
	})
	router.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.String(http.StatusOK, "open")
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()

	t.Run("valid token passes and populates context", func(t *testing.T) {
		pair, userID := issueToken(t, svc, "staff")
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "caretaker1")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("refresh token cannot access the API", func(t *testing.T) {
		pair, _ := issueToken(t, svc, "staff")
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN_TYPE")
	})

	t.Run("expired token is rejected with its own code", func(t *testing.T) {
		shortSvc := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-that-is-long-enough-123",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "pms-test",
		})
		pair, _ := issueToken(t, shortSvc, "staff")
		router := newJWTTestRouter(DefaultJWTConfig(shortSvc))

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("skip paths stay open", func(t *testing.T) {
		router := newJWTTestRouter(DefaultJWTConfig(svc))

		req := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddlewareBlacklist(t *testing.T) {
	svc := newTestJWTService()

	t.Run("revoked jti is rejected", func(t *testing.T) {
		pair, _ := issueToken(t, svc, "staff")
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newJWTTestRouter(cfg)

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("force logout invalidates earlier tokens", func(t *testing.T) {
		pair, userID := issueToken(t, svc, "staff")

		blacklist := auth.NewInMemoryTokenBlacklist()
		// Invalidation recorded after issuance covers this token
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), userID.String(), time.Hour))

		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newJWTTestRouter(cfg)

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(JWTRoleKey, role)
		})
		router.Use(RequireRole("admin"))
		router.GET("/users", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("allowed role passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("admin").ServeHTTP(w, httptest.NewRequest("GET", "/users", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("caretaker").ServeHTTP(w, httptest.NewRequest("GET", "/users", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequireRole("admin"))
		router.GET("/users", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/users", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
