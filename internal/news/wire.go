package news

import (
	"fmt"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/LJTian/NewsRadar/internal/storage"
	"go.uber.org/zap"
)

// Build 根据配置组装 Service；启用缓存时一并返回 cache 以便调用方关闭
func Build(cfg *config.Config, log *zap.Logger) (*Service, *storage.Cache, error) {
	fetcher, err := collector.NewPageFetcher(cfg.FetchBackend, collector.FetchOptions{
		Timeout:      cfg.FetchTimeout,
		UserAgent:    cfg.UserAgent,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init fetcher: %w", err)
	}

	sc := collector.NewSearchCollector(collector.SearchConfig{
		SearchOrigins: cfg.SearchOrigins,
		SearchParams:  cfg.SearchParams,
		SiteOrigin:    cfg.SiteOrigin,
	}, fetcher, log.With(zap.String("component", "collector")))

	opts := []Option{WithLogger(log.With(zap.String("component", "news")))}

	var cache *storage.Cache
	if cfg.RedisAddr != "" {
		cache = storage.NewCache(cfg.RedisAddr, cfg.CacheTTL, log.With(zap.String("component", "cache")))
		opts = append(opts, WithCache(cache))
	}

	return NewService(sc, cfg.RecencyWindow, opts...), cache, nil
}
