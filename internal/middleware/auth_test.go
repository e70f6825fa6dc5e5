package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)
	userID := uuid.New()

	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := auth.Middleware(func(c echo.Context) error {
		got, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareAcceptsCookie(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)
	userID := uuid.New()

	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := auth.Middleware(func(c echo.Context) error {
		got, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := auth.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	issuer := NewAuth("secret-a", time.Hour)
	verifier := NewAuth("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := verifier.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err = handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	auth := NewAuth("test-secret", -time.Minute)

	token, err := auth.GenerateToken(uuid.New())
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := auth.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err = handler(c)
	require.Error(t, err)
}
