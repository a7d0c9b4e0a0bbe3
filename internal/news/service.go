package news

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/LJTian/NewsRadar/internal/processor"
	"github.com/LJTian/NewsRadar/internal/storage"
	"go.uber.org/zap"
)

// ErrEmptyTopic topic 去空白后为空；空串会匹配所有标题
var ErrEmptyTopic = errors.New("topic is required")

// Query 一次查询：Window 为 0 时使用服务的默认窗口
type Query struct {
	Topic  string
	Window time.Duration
}

// Collector 抓取并抽取某个 topic 的候选条目
type Collector interface {
	Collect(ctx context.Context, topic string) ([]collector.Article, error)
}

// Cache 结果缓存，可为空
type Cache interface {
	Get(ctx context.Context, key string) ([]collector.Article, bool)
	Set(ctx context.Context, key string, articles []collector.Article) error
}

// Service 串起抓取、过滤排序与缓存
type Service struct {
	collector Collector
	cache     Cache
	window    time.Duration
	now       func() time.Time
	log       *zap.Logger
}

type Option func(*Service)

// WithCache 启用结果缓存
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock 测试时注入固定时间
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(c Collector, window time.Duration, opts ...Option) *Service {
	s := &Service{
		collector: c,
		window:    window,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search 返回窗口内、按时间倒序的文章；缓存命中时不回源
func (s *Service) Search(ctx context.Context, q Query) ([]collector.Article, error) {
	topic := normalizeTopic(q.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	window := s.resolveWindow(q.Window)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, storage.CacheKey(topic, window)); ok {
			s.log.Debug("cache hit", zap.String("topic", topic), zap.Int("articles", len(cached)))
			return cached, nil
		}
	}

	return s.fetch(ctx, topic, window)
}

// Refresh 跳过缓存读取直接回源，并回写缓存（供定时预热使用）
func (s *Service) Refresh(ctx context.Context, topic string) ([]collector.Article, error) {
	topic = normalizeTopic(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	return s.fetch(ctx, topic, s.resolveWindow(0))
}

func (s *Service) fetch(ctx context.Context, topic string, window time.Duration) ([]collector.Article, error) {
	items, err := s.collector.Collect(ctx, topic)
	if err != nil {
		return nil, err
	}

	articles := processor.New(window).Process(items, s.now())
	s.log.Info("topic searched",
		zap.String("topic", topic),
		zap.Duration("window", window),
		zap.Int("extracted", len(items)),
		zap.Int("selected", len(articles)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, storage.CacheKey(topic, window), articles); err != nil {
			s.log.Warn("cache set failed", zap.String("topic", topic), zap.Error(err))
		}
	}
	return articles, nil
}

func (s *Service) resolveWindow(w time.Duration) time.Duration {
	if w > 0 {
		return w
	}
	if s.window > 0 {
		return s.window
	}
	return processor.New(0).Window()
}

func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
