package imagegen

import "context"

// Request contains image generation parameters after prompt refinement
type Request struct {
	Prompt  string
	Size    string
	Quality string
	Style   string
}

// Result contains a generated image reference plus the provider's own
// rewrite of the prompt, when it reports one
type Result struct {
	ImageURL      string
	RevisedPrompt string
	Model         string
}

// Backend defines the interface for image-generation providers. A backend
// exposes two model tiers; the generation service calls the primary tier and
// falls back to the secondary exactly once on non-policy failures. Errors
// follow the domain taxonomy the same way llm.Provider errors do.
type Backend interface {
	// Name returns the backend identifier
	Name() string

	// PrimaryModel returns the preferred model tier
	PrimaryModel() string

	// FallbackModel returns the secondary model tier
	FallbackModel() string

	// Generate produces one image with the given model tier
	Generate(ctx context.Context, req Request, model string) (*Result, error)
}
