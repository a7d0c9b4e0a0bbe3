package collector

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher 用 colly 拉取页面，每次调用新建 collector，避免跨请求共享状态
type CollyFetcher struct {
	opts FetchOptions
}

func NewCollyFetcher(opts FetchOptions) *CollyFetcher {
	return &CollyFetcher{opts: opts.withDefaults()}
}

func (f *CollyFetcher) Name() string {
	return "colly"
}

// Fetch colly 本身不支持 context，这里只在请求前后检查取消
func (f *CollyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(f.opts.UserAgent),
		// 多读一个字节用于判断是否超限，colly 自身只会静默截断
		colly.MaxBodySize(f.opts.MaxBodyBytes+1),
		colly.AllowURLRevisit(),
	)
	if f.opts.Timeout > 0 {
		c.SetRequestTimeout(f.opts.Timeout)
	}

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("colly visit %s: %w", url, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.opts.checkBodySize(url, len(body)); err != nil {
		return nil, err
	}
	return body, nil
}
