package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// Store implements domain.GalleryStore on a local SQLite file. Used for
// development and single-node deployments where MongoDB is not available.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS gallery_images (
	id             TEXT PRIMARY KEY,
	owner_user_id  TEXT NOT NULL,
	image_url      TEXT NOT NULL,
	prompt         TEXT NOT NULL,
	refined_prompt TEXT NOT NULL DEFAULT '',
	metadata       TEXT NOT NULL DEFAULT '{}',
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gallery_owner_created
	ON gallery_images (owner_user_id, created_at DESC);
`

// NewStore opens (and if needed initializes) the gallery database file
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database file path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, image *domain.GalleryImage) (string, error) {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	meta, err := json.Marshal(image.Metadata)
	if err != nil {
		return "", domain.StorageError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO gallery_images (id, owner_user_id, image_url, prompt, refined_prompt, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		image.ID,
		image.OwnerUserID.String(),
		image.ImageURL,
		image.Prompt,
		image.RefinedPrompt,
		string(meta),
		image.CreatedAt,
	)
	if err != nil {
		return "", domain.StorageError(err)
	}

	return image.ID, nil
}

func (s *Store) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.GalleryImage, int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gallery_images WHERE owner_user_id = ?`,
		ownerID.String(),
	).Scan(&total)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_url, prompt, refined_prompt, metadata, created_at
		FROM gallery_images
		WHERE owner_user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		ownerID.String(), limit, offset,
	)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var (
			img  domain.GalleryImage
			meta string
		)
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.Prompt, &img.RefinedPrompt, &meta, &img.CreatedAt); err != nil {
			return nil, 0, domain.StorageError(err)
		}
		if err := json.Unmarshal([]byte(meta), &img.Metadata); err != nil {
			return nil, 0, domain.StorageError(err)
		}
		img.OwnerUserID = ownerID
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.StorageError(err)
	}

	return images, total, nil
}

func (s *Store) DeleteOne(ctx context.Context, ownerID uuid.UUID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM gallery_images WHERE id = ? AND owner_user_id = ?`,
		id, ownerID.String(),
	)
	if err != nil {
		return domain.StorageError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StorageError(err)
	}
	if affected == 0 {
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
			if de, ok := domain.AsError(err); ok && de.Code == domain.ErrCodeNotFound {
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
	return s.db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}
