package collector

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RawEntry 是从结果页中抽取出的原始条目，归一化后即丢弃
type RawEntry struct {
	Title     string
	Link      string
	HasLink   bool
	Published string
}

// Article 对外输出的新闻条目。
// PublishedAt 只在过滤/排序阶段使用，不参与序列化。
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Published   string    `json:"published"`
	PublishedAt time.Time `json:"-"`
}

// PageFetcher 抽象一次页面抓取（resty / colly / 浏览器）
type PageFetcher interface {
	Name() string
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// NewPageFetcher 按名称选择抓取实现：resty（默认）/ colly / browser
func NewPageFetcher(backend string, opts FetchOptions) (PageFetcher, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "resty":
		return NewRestyFetcher(opts), nil
	case "colly":
		return NewCollyFetcher(opts), nil
	case "browser", "chromedp":
		return NewBrowserFetcher(opts), nil
	default:
		return nil, fmt.Errorf("unknown fetch backend %q", backend)
	}
}
