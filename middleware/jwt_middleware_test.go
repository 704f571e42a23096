package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func jwtTestHandler(c echo.Context) error {
	return c.String(http.StatusOK, c.Get("userID").(string))
}

func doJWTRequest(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTMiddleware()(jwtTestHandler)(c)
	assert.NoError(t, err)
	return rec
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token passes and stores claims", func(t *testing.T) {
		token, err := GenerateToken("user-1", "admin@streamdesk.io", "admin")
		assert.NoError(t, err)

		rec := doJWTRequest(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := doJWTRequest(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		rec := doJWTRequest(t, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rec := doJWTRequest(t, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("blacklisted token rejected", func(t *testing.T) {
		token, err := GenerateToken("user-2", "manager@streamdesk.io", "manager")
		assert.NoError(t, err)

		BlacklistToken(token, time.Now().Add(time.Hour))

		rec := doJWTRequest(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	run := func(role string, allowed ...string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("role", role)

		handler := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("admin", "admin").Code)
	assert.Equal(t, http.StatusOK, run("manager", "admin", "manager").Code)
	assert.Equal(t, http.StatusForbidden, run("viewer", "admin", "manager").Code)
}
