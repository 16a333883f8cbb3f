package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/colorkit/coloring-book-api/internal/api/middleware"
	"github.com/colorkit/coloring-book-api/internal/api/response"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/service"
)

// GalleryHandler handles the authenticated per-user gallery
type GalleryHandler struct {
	galleryService *service.GalleryService
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// SaveImage persists a generated image to the caller's gallery
func (h *GalleryHandler) SaveImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, domain.ErrCodeUnauthenticated, "unauthorized")
		return
	}

	var input domain.SaveImageInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	id, err := h.galleryService.Save(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success": true,
		"imageId": id,
	})
}

// GetGallery lists one page of the caller's gallery
func (h *GalleryHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, domain.ErrCodeUnauthenticated, "unauthorized")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.ValidationFailed(w, "invalid page parameter", map[string]string{
				"page": "must be a positive integer",
			})
			return
		}
		page = parsed
	}

	images, total, err := h.galleryService.List(r.Context(), userID, page)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success": true,
		"images":  images,
		"total":   total,
	})
}

// DeleteImage removes a single owned image
func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, domain.ErrCodeUnauthenticated, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.ValidationFailed(w, "missing image id", map[string]string{
			"id": "field is required",
		})
		return
	}

	if err := h.galleryService.DeleteOne(r.Context(), userID, id); err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success": true,
		"message": "image deleted",
	})
}

type deleteBulkRequest struct {
	ImageIDs []string `json:"imageIds" validate:"required,max=100,dive,required"`
}

// DeleteBulk removes a set of owned images, skipping absent or foreign ids
func (h *GalleryHandler) DeleteBulk(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, domain.ErrCodeUnauthenticated, "unauthorized")
		return
	}

	var req deleteBulkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deleted, err := h.galleryService.DeleteBulk(r.Context(), userID, req.ImageIDs)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"success":      true,
		"deletedCount": deleted,
	})
}
