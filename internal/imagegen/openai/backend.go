package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/imagegen"
)

// Backend implements imagegen.Backend against the OpenAI images API
type Backend struct {
	apiKey        string
	primaryModel  string
	fallbackModel string
	client        *http.Client
	baseURL       string
}

// NewBackend creates a new OpenAI image backend
func NewBackend(apiKey, primaryModel, fallbackModel string, timeout time.Duration) imagegen.Backend {
	if primaryModel == "" {
		primaryModel = "dall-e-3"
	}
	if fallbackModel == "" {
		fallbackModel = "dall-e-2"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Backend{
		apiKey:        apiKey,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		client:        &http.Client{Timeout: timeout},
		baseURL:       "https://api.openai.com/v1",
	}
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "openai"
}

// PrimaryModel returns the preferred model tier
func (b *Backend) PrimaryModel() string {
	return b.primaryModel
}

// FallbackModel returns the secondary model tier
func (b *Backend) FallbackModel() string {
	return b.fallbackModel
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality,omitempty"`
	Style          string `json:"style,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Generate produces one image with the given model tier
func (b *Backend) Generate(ctx context.Context, req imagegen.Request, model string) (*imagegen.Result, error) {
	if model == "" {
		model = b.primaryModel
	}

	imgReq := imageRequest{
		Model:          model,
		Prompt:         req.Prompt,
		N:              1,
		Size:           req.Size,
		ResponseFormat: "url",
	}
	// quality/style parameters exist only on the dall-e-3 tier
	if model == "dall-e-3" {
		imgReq.Quality = req.Quality
		imgReq.Style = req.Style
	}

	body, err := json.Marshal(imgReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, domain.UpstreamError("image generation request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode, resp.Header, resp.Body)
	}

	var imgResp imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&imgResp); err != nil {
		return nil, domain.UpstreamError("failed to decode image response", err)
	}

	if len(imgResp.Data) == 0 || imgResp.Data[0].URL == "" {
		return nil, domain.UpstreamError("no image in openai response", nil)
	}

	return &imagegen.Result{
		ImageURL:      imgResp.Data[0].URL,
		RevisedPrompt: imgResp.Data[0].RevisedPrompt,
		Model:         model,
	}, nil
}

func classifyHTTPError(status int, header http.Header, body io.Reader) error {
	var apiErr apiError
	_ = json.NewDecoder(body).Decode(&apiErr)

	switch {
	case status == http.StatusTooManyRequests:
		return domain.RateLimitedError(parseRetryAfter(header))
	case isPolicyRejection(status, apiErr):
		return domain.ContentPolicyError("image prompt was rejected by the provider's safety system")
	default:
		return domain.UpstreamError(
			fmt.Sprintf("openai images returned status %d", status),
			fmt.Errorf("%s (%s)", apiErr.Error.Message, apiErr.Error.Code),
		)
	}
}

func isPolicyRejection(status int, e apiError) bool {
	if status != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(e.Error.Message)
	return e.Error.Code == "content_policy_violation" ||
		strings.Contains(msg, "safety system") ||
		strings.Contains(msg, "content policy")
}

func parseRetryAfter(header http.Header) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Minute
}
