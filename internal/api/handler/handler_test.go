package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorkit/coloring-book-api/internal/api/handler"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/service"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["uptime"])
	assert.Contains(t, body, "memory")
}

func TestRefinePrompt_RejectsMissingPrompt(t *testing.T) {
	// validation fails before any service call, so a zero handler is enough
	h := handler.NewGenerationHandler(nil)

	payload := `{"prompt":"","customizations":{"complexity":"medium","ageGroup":"kids","lineThickness":"thick","border":"with"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/refine-prompt", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.RefinePrompt(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.False(t, body.Success)
	assert.Equal(t, domain.ErrCodeValidation, body.Error.Code)
	assert.Contains(t, body.Error.Fields, "Prompt")
}

func TestRefinePrompt_RejectsOverlongPrompt(t *testing.T) {
	h := handler.NewGenerationHandler(nil)

	long := strings.Repeat("a", 501)
	payload := `{"prompt":"` + long + `","customizations":{"complexity":"medium","ageGroup":"kids","lineThickness":"thick","border":"with"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/refine-prompt", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.RefinePrompt(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.ErrCodeValidation, body.Error.Code)
	assert.Equal(t, "must be at most 500 characters", body.Error.Fields["Prompt"])
}

func TestRefinePrompt_RejectsUnknownComplexity(t *testing.T) {
	h := handler.NewGenerationHandler(nil)

	payload := `{"prompt":"a butterfly","customizations":{"complexity":"extreme","ageGroup":"kids","lineThickness":"thick","border":"with"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/refine-prompt", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.RefinePrompt(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_RejectsMalformedJSON(t *testing.T) {
	h := handler.NewGenerationHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePDF_RejectsBadFileName(t *testing.T) {
	h := handler.NewPDFHandler(service.NewPDFService(0))

	payload := `{"imageUrl":"https://cdn.example.com/img.png","fileName":"../../etc/passwd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.GeneratePDF(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.ErrCodeValidation, body.Error.Code)
	assert.Contains(t, body.Error.Fields, "fileName")
}

func TestGeneratePDF_RejectsRelativeURL(t *testing.T) {
	h := handler.NewPDFHandler(service.NewPDFService(0))

	payload := `{"imageUrl":"not-a-url"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.GeneratePDF(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveImage_RequiresAuthContext(t *testing.T) {
	h := handler.NewGalleryHandler(nil)

	payload := `{"imageUrl":"https://cdn.example.com/img.png","prompt":"a butterfly"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/save-image", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.SaveImage(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteBulk_RejectsMissingIDs(t *testing.T) {
	h := handler.NewGalleryHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/delete-bulk", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.DeleteBulk(rec, req)

	// still unauthorized first: identity is checked before the body
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
