package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorkit/coloring-book-api/internal/api/middleware"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/security"
)

func newManagers(t *testing.T) (*security.JWTManager, *middleware.AuthMiddleware) {
	t.Helper()
	jwtManager := security.NewJWTManager("test-secret-at-least-32-characters!!", 15*time.Minute, 7*24*time.Hour)
	return jwtManager, middleware.NewAuthMiddleware(jwtManager)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	_, authMiddleware := newManagers(t)

	handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-gallery", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.ErrCodeUnauthenticated, errorCode(t, rec))
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	_, authMiddleware := newManagers(t)

	handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-gallery", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.ErrCodeUnauthenticated, errorCode(t, rec))
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	_, authMiddleware := newManagers(t)

	handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-gallery", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.ErrCodeInvalidToken, errorCode(t, rec))
}

func TestAuthenticate_ValidTokenSetsIdentity(t *testing.T) {
	jwtManager, authMiddleware := newManagers(t)

	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)

	var sawID uuid.UUID
	var sawEmail string
	handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawID, _ = middleware.GetUserID(r.Context())
		sawEmail, _ = middleware.GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-gallery", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, sawID)
	assert.Equal(t, "user@example.com", sawEmail)
}
