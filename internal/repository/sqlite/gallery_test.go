package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func testImage(owner uuid.UUID, prompt string, at time.Time) *domain.GalleryImage {
	return &domain.GalleryImage{
		OwnerUserID:   owner,
		ImageURL:      "https://cdn.example.com/" + uuid.New().String() + ".png",
		Prompt:        prompt,
		RefinedPrompt: "refined " + prompt,
		Metadata: domain.ImageMetadata{
			Model:      "dall-e-3",
			Size:       "1024x1024",
			Quality:    "standard",
			Style:      "natural",
			Category:   domain.CategoryAnimals,
			Complexity: "medium",
			AgeGroup:   "kids",
			Timestamp:  at.Unix(),
		},
		CreatedAt: at,
	}
}

func TestStore_SaveThenList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	img := testImage(owner, "a butterfly", time.Now())
	id, err := store.Save(ctx, img)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	images, total, err := store.List(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, images, 1)
	assert.Equal(t, img.ImageURL, images[0].ImageURL)
	assert.Equal(t, "a butterfly", images[0].Prompt)
	assert.Equal(t, "dall-e-3", images[0].Metadata.Model)
}

func TestStore_ListIsOwnerScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	now := time.Now()
	_, err := store.Save(ctx, testImage(alice, "a fox", now.Add(-time.Hour)))
	require.NoError(t, err)
	_, err = store.Save(ctx, testImage(alice, "an owl", now))
	require.NoError(t, err)
	_, err = store.Save(ctx, testImage(bob, "a dragon", now))
	require.NoError(t, err)

	images, total, err := store.List(ctx, alice, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, images, 2)
	// newest first
	assert.Equal(t, "an owl", images[0].Prompt)
	assert.Equal(t, "a fox", images[1].Prompt)
}

func TestStore_DeleteOne(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	id, err := store.Save(ctx, testImage(owner, "a train", time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.DeleteOne(ctx, owner, id))

	_, total, err := store.List(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestStore_DeleteOneNotOwned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	id, err := store.Save(ctx, testImage(owner, "a castle", time.Now()))
	require.NoError(t, err)

	err = store.DeleteOne(ctx, uuid.New(), id)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeNotFound, de.Code)
}

func TestStore_DeleteOneMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteOne(context.Background(), uuid.New(), uuid.New().String())
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeNotFound, de.Code)
}

func TestStore_DeleteBulkPartialSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	a, err := store.Save(ctx, testImage(alice, "one", time.Now()))
	require.NoError(t, err)
	b, err := store.Save(ctx, testImage(bob, "two", time.Now()))
	require.NoError(t, err)
	c, err := store.Save(ctx, testImage(alice, "three", time.Now()))
	require.NoError(t, err)

	// b belongs to bob: skipped, not fatal
	deleted, err := store.DeleteBulk(ctx, alice, []string{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// bob's image untouched
	_, total, err := store.List(ctx, bob, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
