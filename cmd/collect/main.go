package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/LJTian/NewsRadar/internal/logger"
	"github.com/LJTian/NewsRadar/internal/news"
	"go.uber.org/zap"
)

// 一个仅执行一次查询的命令行入口：把结果以 JSON 打印到标准输出
//
//	collect -topic bitcoin -window 12h
func main() {
	topic := flag.String("topic", "", "topic to search")
	window := flag.Duration("window", 0, "recency window, defaults to RECENCY_WINDOW")
	flag.Parse()

	if *topic == "" && flag.NArg() > 0 {
		*topic = flag.Arg(0)
	}
	if *topic == "" {
		log.Fatal("usage: collect -topic <topic> [-window 12h]")
	}

	cfg := config.Load()
	zl, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	svc, cache, err := news.Build(cfg, zl)
	if err != nil {
		zl.Fatal("init news service failed", zap.Error(err))
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	articles, err := svc.Search(ctx, news.Query{Topic: *topic, Window: *window})
	if err != nil {
		zl.Fatal("fetch news failed", zap.String("topic", *topic), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		zl.Fatal("encode result failed", zap.Error(err))
	}
}
