package llm

import "context"

// Request contains a single chat-completion exchange
type Request struct {
	System      string
	Instruction string
	Temperature float64
	MaxTokens   int
}

// Response contains the completion result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for chat-completion providers. Upstream
// failures must come back as domain errors: RATE_LIMITED when the provider
// throttles, CONTENT_POLICY_VIOLATION on a policy rejection and
// UPSTREAM_UNAVAILABLE for everything else.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete runs one chat completion and returns the raw text
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}
