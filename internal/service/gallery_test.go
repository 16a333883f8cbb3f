package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

func TestGalleryService_SaveStampsOwnerAndTimestamp(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 24)
	owner := uuid.New()

	store.On("Save", mock.Anything, mock.MatchedBy(func(img *domain.GalleryImage) bool {
		return img.OwnerUserID == owner &&
			img.ImageURL == "https://cdn.example.com/img.png" &&
			img.Metadata.Timestamp > 0 &&
			!img.CreatedAt.IsZero()
	})).Return("img-1", nil)

	id, err := svc.Save(context.Background(), owner, domain.SaveImageInput{
		ImageURL:      "https://cdn.example.com/img.png",
		Prompt:        "a butterfly",
		RefinedPrompt: "a cheerful butterfly",
		Metadata:      domain.ImageMetadata{Model: "tier-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "img-1", id)

	store.AssertExpectations(t)
}

func TestGalleryService_ListPaginates(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 10)
	owner := uuid.New()

	store.On("List", mock.Anything, owner, 10, 20).
		Return([]domain.GalleryImage{{ID: "img-21"}}, int64(21), nil)

	images, total, err := svc.List(context.Background(), owner, 3)
	require.NoError(t, err)
	assert.Len(t, images, 1)
	assert.Equal(t, int64(21), total)

	store.AssertExpectations(t)
}

func TestGalleryService_ListNormalizesPageAndNilSlice(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 10)
	owner := uuid.New()

	// page 0 falls back to the first page
	store.On("List", mock.Anything, owner, 10, 0).
		Return(nil, int64(0), nil)

	images, total, err := svc.List(context.Background(), owner, 0)
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
	assert.Equal(t, int64(0), total)
}

func TestGalleryService_DeleteOneNotFound(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 24)
	owner := uuid.New()

	store.On("DeleteOne", mock.Anything, owner, "missing").
		Return(domain.NotFoundError("image not found"))

	err := svc.DeleteOne(context.Background(), owner, "missing")
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeNotFound, de.Code)
}

func TestGalleryService_DeleteBulkReportsPartialSuccess(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 24)
	owner := uuid.New()

	ids := []string{"a", "b", "c"}
	store.On("DeleteBulk", mock.Anything, owner, ids).Return(int64(2), nil)

	deleted, err := svc.DeleteBulk(context.Background(), owner, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestGalleryService_DeleteBulkEmptySetSkipsStore(t *testing.T) {
	store := new(MockGalleryStore)
	svc := NewGalleryService(store, 24)

	deleted, err := svc.DeleteBulk(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	store.AssertNotCalled(t, "DeleteBulk", mock.Anything, mock.Anything, mock.Anything)
}
