// Package cache provides Redis-backed caching for oracle responses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"assistant_server/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const suggestionKeyPrefix = "suggestion:"

// SuggestionCache caches rewritten drafts keyed by a hash of the input draft.
// The oracle is deterministic enough in practice that re-running the same
// draft is wasted work; a miss or a Redis failure just falls through to the
// oracle.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a suggestion cache.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

func suggestionKey(draft string) string {
	sum := sha256.Sum256([]byte(draft))
	return suggestionKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached rewrite for a draft, if present.
func (c *SuggestionCache) Get(ctx context.Context, draft string) (string, bool) {
	val, err := c.client.Get(ctx, suggestionKey(draft)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.WithError(err).Debug("Suggestion cache read failed")
		}
		return "", false
	}
	return val, true
}

// Set stores a rewrite for a draft. Failures are logged and ignored.
func (c *SuggestionCache) Set(ctx context.Context, draft, suggestion string) {
	if err := c.client.Set(ctx, suggestionKey(draft), suggestion, c.ttl).Err(); err != nil {
		logger.WithError(err).Debug("Suggestion cache write failed")
	}
}
