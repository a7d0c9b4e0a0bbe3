package collector

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchAll 并发抓取全部 URL，结果与 urls 顺序一致。
// 任意一个失败则整体失败（只返回第一个错误），同时取消其余请求，不返回部分结果。
func FetchAll(ctx context.Context, f PageFetcher, urls []string) ([][]byte, error) {
	pages := make([][]byte, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			body, err := f.Fetch(gctx, u)
			if err != nil {
				return err
			}
			pages[i] = body
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
