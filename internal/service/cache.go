package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealplanner/backend/internal/model"
)

const recommendationKeyPrefix = "recommend:"

// RecommendationCache stores encoded recommendation results by key.
type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisRecommendationCache keeps results in redis with a fixed TTL.
type RedisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) *RedisRecommendationCache {
	return &RedisRecommendationCache{client: client, ttl: ttl}
}

func (c *RedisRecommendationCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached recommendation: %w", err)
	}
	return data, true, nil
}

func (c *RedisRecommendationCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendation: %w", err)
	}
	return nil
}

// RecommendationKey derives the cache key from normalized preferences and
// the selection sizes, so equivalent requests share an entry.
func RecommendationKey(prefs model.UserPreferences, targetSize, perCategoryTarget int) string {
	payload := struct {
		Prefs       model.UserPreferences `json:"prefs"`
		Target      int                   `json:"target"`
		PerCategory int                   `json:"per_category"`
	}{prefs.Normalize(), targetSize, perCategoryTarget}

	// marshalling plain strings and ints cannot fail
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return recommendationKeyPrefix + hex.EncodeToString(sum[:])
}

// cachedRecommendation stores ids rather than recipes; hits are resolved
// against the current catalog.
type cachedRecommendation struct {
	Entries    []cachedEntry `json:"entries"`
	Considered int           `json:"considered"`
	Eligible   int           `json:"eligible"`
}

type cachedEntry struct {
	ID      string   `json:"id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
