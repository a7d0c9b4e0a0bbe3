package storage

import (
	"context"
	"testing"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := newCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl, nil)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("  Bitcoin ", 23*time.Hour+59*time.Minute); got != "news:topic:bitcoin:23h59m0s" {
		t.Fatalf("CacheKey = %q", got)
	}
}

func TestCacheSetGetAndExpire(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := CacheKey("go", time.Hour)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("expected miss on empty cache")
	}

	in := []collector.Article{
		{Title: "Go 1.24", URL: "https://example.com/go", Published: "1 hour ago", PublishedAt: time.Now()},
	}
	if err := c.Set(ctx, key, in); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	out, ok := c.Get(ctx, key)
	if !ok || len(out) != 1 {
		t.Fatalf("expected hit with 1 article, got ok=%v %+v", ok, out)
	}
	if out[0].Title != in[0].Title || out[0].URL != in[0].URL || out[0].Published != in[0].Published {
		t.Fatalf("unexpected cached article: %+v", out[0])
	}
	if !out[0].PublishedAt.IsZero() {
		t.Fatalf("PublishedAt should not be cached")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestCacheEmptyResultAndCorruptValue(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()

	if err := c.Set(ctx, "empty", nil); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	out, ok := c.Get(ctx, "empty")
	if !ok || len(out) != 0 {
		t.Fatalf("expected cached empty list, got ok=%v %+v", ok, out)
	}
	if v, _ := mr.Get("empty"); v != "[]" {
		t.Fatalf("empty list stored as %q", v)
	}

	_ = mr.Set("corrupt", "{not json")
	if _, ok := c.Get(ctx, "corrupt"); ok {
		t.Fatalf("corrupt value should be a miss")
	}
}
