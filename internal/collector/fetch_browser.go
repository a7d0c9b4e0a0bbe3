package collector

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher 用 headless Chrome 渲染页面后取整页 HTML，适合需要执行 JS 才出结果的站点
type BrowserFetcher struct {
	opts FetchOptions
}

func NewBrowserFetcher(opts FetchOptions) *BrowserFetcher {
	return &BrowserFetcher{opts: opts.withDefaults()}
}

func (f *BrowserFetcher) Name() string {
	return "browser"
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(f.opts.UserAgent))
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, f.opts.Timeout)
		defer cancel()
	}

	var html string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}

	if err := f.opts.checkBodySize(url, len(html)); err != nil {
		return nil, err
	}
	return []byte(html), nil
}
