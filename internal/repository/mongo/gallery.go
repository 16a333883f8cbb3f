package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colorkit/coloring-book-api/internal/config"
	"github.com/colorkit/coloring-book-api/internal/domain"
)

// Store implements domain.GalleryStore on a MongoDB collection
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// galleryDoc is the persisted document shape. The owner id is stored as a
// string so documents stay readable in shells and portable across drivers.
type galleryDoc struct {
	ID            string               `bson:"_id"`
	OwnerUserID   string               `bson:"owner_user_id"`
	ImageURL      string               `bson:"image_url"`
	Prompt        string               `bson:"prompt"`
	RefinedPrompt string               `bson:"refined_prompt"`
	Metadata      domain.ImageMetadata `bson:"metadata"`
	CreatedAt     time.Time            `bson:"created_at"`
}

// NewStore connects to MongoDB and prepares the gallery collection
func NewStore(ctx context.Context, cfg config.GalleryConfig) (*Store, error) {
	clientOpts := options.Client().ApplyURI(cfg.MongoURI).SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	// Owner-scoped listing is the hot path
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to ensure gallery index")
	}

	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Save(ctx context.Context, image *domain.GalleryImage) (string, error) {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	doc := galleryDoc{
		ID:            image.ID,
		OwnerUserID:   image.OwnerUserID.String(),
		ImageURL:      image.ImageURL,
		Prompt:        image.Prompt,
		RefinedPrompt: image.RefinedPrompt,
		Metadata:      image.Metadata,
		CreatedAt:     image.CreatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", domain.StorageError(err)
	}

	return image.ID, nil
}

func (s *Store) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.GalleryImage, int64, error) {
	filter := bson.M{"owner_user_id": ownerID.String()}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}
	defer cursor.Close(ctx)

	var images []domain.GalleryImage
	for cursor.Next(ctx) {
		var doc galleryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, domain.StorageError(err)
		}
		images = append(images, docToImage(doc, ownerID))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, domain.StorageError(err)
	}

	return images, total, nil
}

func (s *Store) DeleteOne(ctx context.Context, ownerID uuid.UUID, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_user_id": ownerID.String()})
	if err != nil {
		return domain.StorageError(err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError("image not found")
	}
	return nil
}

func (s *Store) DeleteBulk(ctx context.Context, ownerID uuid.UUID, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		err := s.DeleteOne(ctx, ownerID, id)
		if err != nil {
			var de *domain.Error
			if errors.As(err, &de) && de.Code == domain.ErrCodeNotFound {
				continue // absent or foreign ids are skipped, not fatal
			}
			log.Error().Err(err).Str("image_id", id).Msg("bulk delete: item failed")
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func docToImage(doc galleryDoc, ownerID uuid.UUID) domain.GalleryImage {
	return domain.GalleryImage{
		ID:            doc.ID,
		OwnerUserID:   ownerID,
		ImageURL:      doc.ImageURL,
		Prompt:        doc.Prompt,
		RefinedPrompt: doc.RefinedPrompt,
		Metadata:      doc.Metadata,
		CreatedAt:     doc.CreatedAt,
	}
}
