package domain

// Category is a coloring page taxonomy bucket
type Category string

const (
	CategoryAnimals  Category = "animals"
	CategoryFantasy  Category = "fantasy"
	CategoryNature   Category = "nature"
	CategoryVehicles Category = "vehicles"
	CategoryMandalas Category = "mandalas"
	CategoryOther    Category = "other"
)

// Customizations control the style of the generated page
type Customizations struct {
	Complexity    string `json:"complexity" validate:"required,oneof=simple medium complex"`
	AgeGroup      string `json:"ageGroup" validate:"required,oneof=kids adults"`
	LineThickness string `json:"lineThickness" validate:"required,oneof=thin medium thick"`
	Border        string `json:"border" validate:"required,oneof=with without"`
	Theme         string `json:"theme" validate:"omitempty,max=100"`
}

// GenerationRequest is the user input for both refine-only and full
// generation requests
type GenerationRequest struct {
	Prompt         string         `json:"prompt" validate:"required,min=1,max=500"`
	Customizations Customizations `json:"customizations" validate:"required"`
}

// RefinedPrompt is the classifier/refiner output. Immutable once produced;
// it is never persisted on its own, only embedded in a GalleryImage.
type RefinedPrompt struct {
	OriginalPrompt string   `json:"originalPrompt"`
	RefinedPrompt  string   `json:"refinedPrompt"`
	Category       Category `json:"category"`
	Keywords       []string `json:"keywords"`
}

// GenerationResult is the outcome of the full pipeline
type GenerationResult struct {
	ImageURL       string        `json:"imageUrl"`
	OriginalPrompt string        `json:"originalPrompt"`
	RefinedPrompt  string        `json:"refinedPrompt"`
	RevisedPrompt  string        `json:"revisedPrompt,omitempty"`
	Metadata       ImageMetadata `json:"metadata"`
}

// ImageMetadata describes how an image was produced
type ImageMetadata struct {
	Model      string   `json:"model"`
	Size       string   `json:"size"`
	Quality    string   `json:"quality"`
	Style      string   `json:"style"`
	Category   Category `json:"category"`
	Complexity string   `json:"complexity"`
	AgeGroup   string   `json:"ageGroup"`
	Timestamp  int64    `json:"timestamp"`
}
