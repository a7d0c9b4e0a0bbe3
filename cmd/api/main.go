package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsRadar/internal/api"
	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/LJTian/NewsRadar/internal/logger"
	"github.com/LJTian/NewsRadar/internal/news"
	"github.com/LJTian/NewsRadar/internal/scheduler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("config loaded",
		zap.String("port", cfg.AppPort),
		zap.Strings("search_origins", cfg.SearchOrigins),
		zap.Duration("window", cfg.RecencyWindow),
		zap.String("fetch_backend", cfg.FetchBackend),
		zap.Bool("cache", cfg.RedisAddr != ""),
	)

	svc, cache, err := news.Build(cfg, zl)
	if err != nil {
		zl.Fatal("init news service failed", zap.Error(err))
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	// 预热只有在缓存开启时才有意义
	if cache != nil && len(cfg.WarmTopics) > 0 {
		s, err := scheduler.New(cfg.WarmCronSpec, cfg.WarmTopics, svc, zl.With(zap.String("component", "scheduler")))
		if err != nil {
			zl.Fatal("init scheduler failed", zap.Error(err))
		}
		s.Start()
		defer s.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(zl.With(zap.String("component", "http"))))
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	api.NewServer(svc, zl.With(zap.String("component", "api"))).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("starting api server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server exit", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
