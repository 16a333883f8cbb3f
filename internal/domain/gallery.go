package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GalleryImage is a persisted generation record. Owned exclusively by
// OwnerUserID; every store operation is scoped by that id.
type GalleryImage struct {
	ID            string        `json:"id" bson:"_id"`
	OwnerUserID   uuid.UUID     `json:"-" bson:"owner_user_id"`
	ImageURL      string        `json:"imageUrl" bson:"image_url"`
	Prompt        string        `json:"prompt" bson:"prompt"`
	RefinedPrompt string        `json:"refinedPrompt" bson:"refined_prompt"`
	Metadata      ImageMetadata `json:"metadata" bson:"metadata"`
	CreatedAt     time.Time     `json:"createdAt" bson:"created_at"`
}

// SaveImageInput is the authenticated save request body
type SaveImageInput struct {
	ImageURL      string        `json:"imageUrl" validate:"required,url,max=2048"`
	Prompt        string        `json:"prompt" validate:"required,min=1,max=500"`
	RefinedPrompt string        `json:"refinedPrompt" validate:"omitempty,max=4000"`
	Metadata      ImageMetadata `json:"metadata"`
}

// GalleryStore persists generated-image records keyed by owner identity.
// DeleteBulk applies partial-success semantics: ids that are absent or owned
// by someone else are skipped, never fatal.
type GalleryStore interface {
	Save(ctx context.Context, image *GalleryImage) (string, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]GalleryImage, int64, error)
	DeleteOne(ctx context.Context, ownerID uuid.UUID, id string) error
	DeleteBulk(ctx context.Context, ownerID uuid.UUID, ids []string) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
