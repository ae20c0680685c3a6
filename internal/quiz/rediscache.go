package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CachedSource caches question lists in Redis (JSON blob per mode) and
// falls back to the wrapped source on cache miss. Concurrent misses for
// the same mode are coalesced into a single load.
type CachedSource struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	sf     singleflight.Group
}

// NewCachedSource creates a caching decorator over src.
// A non-positive ttl disables expiry.
func NewCachedSource(client *redis.Client, src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		client: client,
		source: src,
		ttl:    ttl,
	}
}

// Questions implements Source.
func (c *CachedSource) Questions(ctx context.Context, mode string) ([]Question, error) {
	key := c.key(mode)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
		var questions []Question
		if err := json.Unmarshal(cached, &questions); err == nil && len(questions) > 0 {
			return questions, nil
		}
	}

	result, err, _ := c.sf.Do(mode, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cached, err := c.client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			var questions []Question
			if err := json.Unmarshal(cached, &questions); err == nil && len(questions) > 0 {
				return questions, nil
			}
		}

		questions, err := c.source.Questions(ctx, mode)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(questions); err == nil {
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Question), nil
}

// Invalidate drops the cached list for a mode.
func (c *CachedSource) Invalidate(ctx context.Context, mode string) error {
	if err := c.client.Del(ctx, c.key(mode)).Err(); err != nil {
		return fmt.Errorf("quiz: invalidate cache: %w", err)
	}
	return nil
}

func (c *CachedSource) key(mode string) string {
	return "questions:" + mode
}

// ttlWithJitter spreads expiry by up to 10% so cached modes don't all
// reload at once.
func (c *CachedSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
