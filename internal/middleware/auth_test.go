package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	token, err := svc.GenerateToken("user-42")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	other, err := NewJWTService("other-secret", 1).GenerateToken("user-42")
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.Error(t, err, "wrong secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "user-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err, "expired")

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.GenerateToken("")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	token, err := svc.GenerateToken("user-42")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		id, ok := GetUserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + token, http.StatusOK, "user-42"},
		{"lowercase scheme", "bearer " + token, http.StatusOK, "user-42"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assigned := w.Header().Get(RequestIDHeader)
	assert.Len(t, assigned, 36)
	assert.Equal(t, assigned, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestAuthMiddleware_Role(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	adminToken, err := svc.GenerateTokenWithRole("ops-1", RoleAdmin)
	require.NoError(t, err)
	userToken, err := svc.GenerateToken("user-42")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(adminToken)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	router := gin.New()
	router.GET("/whoami", AuthMiddleware(svc), func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "user")
	})

	for token, want := range map[string]string{adminToken: "admin", userToken: "user"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Body.String())
	}
}
