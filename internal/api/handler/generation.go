package handler

import (
	"net/http"

	"github.com/colorkit/coloring-book-api/internal/api/response"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/service"
)

// GenerationHandler handles prompt refinement and image generation
type GenerationHandler struct {
	generationService *service.GenerationService
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generationService *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// RefinePrompt rewrites a raw prompt without generating an image
func (h *GenerationHandler) RefinePrompt(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	refined, err := h.generationService.Refine(r.Context(), req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success":        true,
		"originalPrompt": refined.OriginalPrompt,
		"refinedPrompt":  refined.RefinedPrompt,
		"metadata": map[string]any{
			"category":   refined.Category,
			"complexity": req.Customizations.Complexity,
			"ageGroup":   req.Customizations.AgeGroup,
			"keywords":   refined.Keywords,
		},
	})
}

// Generate runs the full refine-then-generate pipeline
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.generationService.Generate(r.Context(), req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success":        true,
		"imageUrl":       result.ImageURL,
		"originalPrompt": result.OriginalPrompt,
		"refinedPrompt":  result.RefinedPrompt,
		"revisedPrompt":  result.RevisedPrompt,
		"metadata":       result.Metadata,
	})
}
