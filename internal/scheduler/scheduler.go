package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher 回源并刷新某个 topic 的缓存
type Refresher interface {
	Refresh(ctx context.Context, topic string) ([]collector.Article, error)
}

// Scheduler 定时预热热门 topic，让首个请求直接命中缓存
type Scheduler struct {
	cron      *cron.Cron
	topics    []string
	refresher Refresher
	timeout   time.Duration
	delay     time.Duration
	log       *zap.Logger

	mu    sync.Mutex
	first *time.Timer
}

const (
	// refreshTimeout 单个 topic 预热的超时
	refreshTimeout = time.Minute
	// startupDelay 启动后稍等再做首轮预热，不与服务启动争抢资源
	startupDelay = 5 * time.Second
)

func New(spec string, topics []string, r Refresher, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		topics:    topics,
		refresher: r,
		timeout:   refreshTimeout,
		delay:     startupDelay,
		log:       log,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.first = time.AfterFunc(s.delay, s.runOnce)
}

// Stop 停止调度（含尚未触发的首轮预热）并等待正在执行的任务结束
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	if s.first != nil {
		s.first.Stop()
	}
	s.mu.Unlock()
	return s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发预热
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	s.log.Info("start warm-up job", zap.Int("topics", len(s.topics)))

	var wg sync.WaitGroup
	for _, topic := range s.topics {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			articles, err := s.refresher.Refresh(ctx, topic)
			if err != nil {
				s.log.Warn("warm-up failed", zap.String("topic", topic), zap.Error(err))
				return
			}
			s.log.Info("warm-up done", zap.String("topic", topic), zap.Int("articles", len(articles)))
		}()
	}

	wg.Wait()
	s.log.Info("warm-up job done")
}
