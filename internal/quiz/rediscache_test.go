package quiz

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// countingSource wraps a Source and counts loads.
type countingSource struct {
	mu    sync.Mutex
	inner Source
	calls int
}

func (c *countingSource) Questions(ctx context.Context, mode string) ([]Question, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Questions(ctx, mode)
}

func (c *countingSource) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newCacheFixture(t *testing.T) (*miniredis.Miniredis, *countingSource, *CachedSource) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	src := &countingSource{inner: BuiltinSource{}}
	cached := NewCachedSource(client, src, 5*time.Minute)
	return mr, src, cached
}

func TestCachedSourceLoadsOnceThenHits(t *testing.T) {
	_, src, cached := newCacheFixture(t)
	ctx := context.Background()

	first, err := cached.Questions(ctx, ModeRunner)
	if err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}
	second, err := cached.Questions(ctx, ModeRunner)
	if err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}

	if len(first) == 0 || len(first) != len(second) {
		t.Errorf("cache changed the question list: %d vs %d", len(first), len(second))
	}
	if src.callCount() != 1 {
		t.Errorf("underlying source loaded %d times, expected 1", src.callCount())
	}
}

func TestCachedSourcePerModeKeys(t *testing.T) {
	mr, _, cached := newCacheFixture(t)
	ctx := context.Background()

	if _, err := cached.Questions(ctx, ModeRunner); err != nil {
		t.Fatalf("Questions(runner) failed: %v", err)
	}
	if _, err := cached.Questions(ctx, ModeRacing); err != nil {
		t.Fatalf("Questions(racing) failed: %v", err)
	}

	if !mr.Exists("questions:runner") {
		t.Error("missing cache key questions:runner")
	}
	if !mr.Exists("questions:racing") {
		t.Error("missing cache key questions:racing")
	}
}

func TestCachedSourceTTLWithinJitterWindow(t *testing.T) {
	mr, _, cached := newCacheFixture(t)
	ctx := context.Background()

	if _, err := cached.Questions(ctx, ModeRunner); err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}

	ttl := mr.TTL("questions:runner")
	if ttl < 5*time.Minute || ttl > 5*time.Minute+30*time.Second {
		t.Errorf("cache TTL = %v, expected 5m plus up to 10%% jitter", ttl)
	}
}

func TestCachedSourceInvalidate(t *testing.T) {
	mr, src, cached := newCacheFixture(t)
	ctx := context.Background()

	if _, err := cached.Questions(ctx, ModeRunner); err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}
	if err := cached.Invalidate(ctx, ModeRunner); err != nil {
		t.Fatalf("Invalidate() failed: %v", err)
	}
	if mr.Exists("questions:runner") {
		t.Error("cache key still present after Invalidate")
	}

	if _, err := cached.Questions(ctx, ModeRunner); err != nil {
		t.Fatalf("Questions() after invalidate failed: %v", err)
	}
	if src.callCount() != 2 {
		t.Errorf("underlying source loaded %d times, expected a reload after invalidate", src.callCount())
	}
}

func TestCachedSourceCoalescesConcurrentMisses(t *testing.T) {
	_, src, cached := newCacheFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cached.Questions(ctx, ModeRunner); err != nil {
				t.Errorf("Questions() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Single flight plus the in-flight re-check keeps loads to one.
	if src.callCount() != 1 {
		t.Errorf("underlying source loaded %d times under concurrency, expected 1", src.callCount())
	}
}

func TestCachedSourceServesExistingCacheEntry(t *testing.T) {
	mr, src, cached := newCacheFixture(t)
	ctx := context.Background()

	mr.Set("questions:runner", `[{"id":"x","prompt":"run","correct":"verb","distractors":["noun"]}]`)

	questions, err := cached.Questions(ctx, ModeRunner)
	if err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "x" {
		t.Errorf("got %+v, expected the pre-seeded entry", questions)
	}
	if src.callCount() != 0 {
		t.Errorf("underlying source loaded %d times despite a warm cache, expected 0", src.callCount())
	}
}
