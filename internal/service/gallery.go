package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// GalleryService handles per-user gallery operations on top of the
// configured store. All operations are scoped by the authenticated owner.
type GalleryService struct {
	store    domain.GalleryStore
	pageSize int
}

// NewGalleryService creates a new gallery service
func NewGalleryService(store domain.GalleryStore, pageSize int) *GalleryService {
	if pageSize <= 0 {
		pageSize = 24
	}
	return &GalleryService{store: store, pageSize: pageSize}
}

// Save persists a generated image for the owner and returns the new id
func (s *GalleryService) Save(ctx context.Context, ownerID uuid.UUID, input domain.SaveImageInput) (string, error) {
	meta := input.Metadata
	if meta.Timestamp == 0 {
		meta.Timestamp = time.Now().Unix()
	}

	image := &domain.GalleryImage{
		OwnerUserID:   ownerID,
		ImageURL:      input.ImageURL,
		Prompt:        input.Prompt,
		RefinedPrompt: input.RefinedPrompt,
		Metadata:      meta,
		CreatedAt:     time.Now(),
	}

	return s.store.Save(ctx, image)
}

// List returns one page of the owner's gallery plus the total record count
func (s *GalleryService) List(ctx context.Context, ownerID uuid.UUID, page int) ([]domain.GalleryImage, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	images, total, err := s.store.List(ctx, ownerID, s.pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	if images == nil {
		images = []domain.GalleryImage{}
	}
	return images, total, nil
}

// DeleteOne removes a single owned image; absent or foreign ids fail with
// NOT_FOUND
func (s *GalleryService) DeleteOne(ctx context.Context, ownerID uuid.UUID, id string) error {
	return s.store.DeleteOne(ctx, ownerID, id)
}

// DeleteBulk removes owned images from the id set and reports how many were
// actually deleted; ids that are absent or foreign are skipped
func (s *GalleryService) DeleteBulk(ctx context.Context, ownerID uuid.UUID, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.store.DeleteBulk(ctx, ownerID, ids)
}
