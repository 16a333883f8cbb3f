package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

const (
	promptCachePrefix = "refined:"
)

// PromptCache caches refiner output so rapid duplicate requests skip the
// chat-completion call. Keys hash the raw prompt together with all
// customizations, since any of them changes the refinement.
type PromptCache struct {
	client *Client
	ttl    time.Duration
}

// NewPromptCache creates a new refined-prompt cache
func NewPromptCache(client *Client, ttl time.Duration) *PromptCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PromptCache{client: client, ttl: ttl}
}

// Key derives the cache key for a request
func (c *PromptCache) Key(raw string, cust domain.Customizations) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s", raw, cust.Complexity, cust.AgeGroup, cust.LineThickness, cust.Border, cust.Theme)
	return promptCachePrefix + hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached refinement, returning nil on a miss
func (c *PromptCache) Get(ctx context.Context, key string) (*domain.RefinedPrompt, error) {
	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var refined domain.RefinedPrompt
	if err := json.Unmarshal(data, &refined); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refined prompt: %w", err)
	}

	return &refined, nil
}

// Set caches a refinement
func (c *PromptCache) Set(ctx context.Context, key string, refined *domain.RefinedPrompt) error {
	data, err := json.Marshal(refined)
	if err != nil {
		return fmt.Errorf("failed to marshal refined prompt: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, c.ttl).Err()
}
