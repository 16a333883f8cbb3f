package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorkit/coloring-book-api/internal/api/response"
	"github.com/colorkit/coloring-book-api/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	return body.Error.Code, body.Error.Fields
}

func TestDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.ValidationError("bad input", nil), http.StatusBadRequest, domain.ErrCodeValidation},
		{"content policy", domain.ContentPolicyError("blocked"), http.StatusBadRequest, domain.ErrCodeContentPolicy},
		{"rate limited", domain.RateLimitedError(time.Minute), http.StatusTooManyRequests, domain.ErrCodeRateLimited},
		{"upstream", domain.UpstreamError("provider down", nil), http.StatusBadGateway, domain.ErrCodeUpstream},
		{"unauthenticated", domain.NewError(domain.ErrCodeUnauthenticated, "no token", nil), http.StatusUnauthorized, domain.ErrCodeUnauthenticated},
		{"invalid token", domain.NewError(domain.ErrCodeInvalidToken, "bad token", nil), http.StatusUnauthorized, domain.ErrCodeInvalidToken},
		{"not found", domain.NotFoundError("image not found"), http.StatusNotFound, domain.ErrCodeNotFound},
		{"storage", domain.StorageError(errors.New("disk gone")), http.StatusInternalServerError, domain.ErrCodeStorage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.DomainError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			code, _ := decodeError(t, rec)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestDomainError_RetryAfterHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	response.DomainError(rec, domain.RateLimitedError(42*time.Second))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestDomainError_SubSecondRetryAfterRoundsUp(t *testing.T) {
	rec := httptest.NewRecorder()
	response.DomainError(rec, domain.RateLimitedError(200*time.Millisecond))

	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestDomainError_UnclassifiedErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	response.DomainError(rec, errors.New("something odd"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestValidationFailed_CarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationFailed(rec, "request validation failed", map[string]string{
		"prompt": "field is required",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	code, fields := decodeError(t, rec)
	assert.Equal(t, domain.ErrCodeValidation, code)
	assert.Equal(t, "field is required", fields["prompt"])
}
