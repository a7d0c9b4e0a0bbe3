package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultCacheTTL = 5 * time.Minute
	pingTimeout     = 3 * time.Second
)

// Cache 用 Redis 缓存某个 topic 的最终结果。
// 只是短 TTL 的响应缓存，过期即丢，不承担持久化职责。
type Cache struct {
	Redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCache 连接 Redis；ping 失败只告警不报错，与读写失败时一样按未命中处理
func NewCache(addr string, ttl time.Duration, log *zap.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return newCache(rdb, ttl, log)
}

func newCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed", zap.Error(err))
	}

	return &Cache{Redis: rdb, ttl: ttl, log: log}
}

// CacheKey 缓存 key 同时包含 topic 与窗口，避免不同窗口的结果互相覆盖
func CacheKey(topic string, window time.Duration) string {
	return fmt.Sprintf("news:topic:%s:%s", strings.ToLower(strings.TrimSpace(topic)), window)
}

// Get 未命中、读失败或反序列化失败都返回 ok=false
func (c *Cache) Get(ctx context.Context, key string) ([]collector.Article, bool) {
	bs, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var cached []collector.Article
	if err := json.Unmarshal(bs, &cached); err != nil {
		c.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return cached, true
}

// Set 空结果同样写入，避免冷门 topic 反复回源
func (c *Cache) Set(ctx context.Context, key string, articles []collector.Article) error {
	if articles == nil {
		articles = []collector.Article{}
	}
	bs, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.Redis.Set(ctx, key, bs, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.Redis.Close()
}
