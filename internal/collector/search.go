package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// SearchConfig 描述搜索页地址和结果链接的站点根地址
type SearchConfig struct {
	// SearchOrigins 每个 origin 生成一个 "<origin>/search?q=<topic>" 请求
	SearchOrigins []string
	// SearchParams 追加在 q 之后的固定参数，例如 "hl=en-US&gl=US"
	SearchParams string
	// SiteOrigin 结果页中相对链接的根地址
	SiteOrigin string
	Selectors  Selectors
}

// SearchCollector 抓取搜索结果页并抽取条目
type SearchCollector struct {
	cfg        SearchConfig
	fetcher    PageFetcher
	extractor  *Extractor
	normalizer *Normalizer
	log        *zap.Logger
}

func NewSearchCollector(cfg SearchConfig, fetcher PageFetcher, log *zap.Logger) *SearchCollector {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchCollector{
		cfg:        cfg,
		fetcher:    fetcher,
		extractor:  NewExtractor(ParseHTML, cfg.Selectors),
		normalizer: NewNormalizer(cfg.SiteOrigin),
		log:        log,
	}
}

// SearchURLs 为 topic 生成所有待抓取的搜索页地址
func (c *SearchCollector) SearchURLs(topic string) []string {
	q := encodeQueryComponent(topic)
	urls := make([]string, 0, len(c.cfg.SearchOrigins))
	for _, origin := range c.cfg.SearchOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		u := origin + "/search?q=" + q
		if c.cfg.SearchParams != "" {
			u += "&" + strings.TrimPrefix(c.cfg.SearchParams, "&")
		}
		urls = append(urls, u)
	}
	return urls
}

// Collect 抓取所有搜索页，按页面顺序、页内文档顺序返回条目。
// 返回的 Article 尚未标注 PublishedAt，过滤与排序交给 processor。
func (c *SearchCollector) Collect(ctx context.Context, topic string) ([]Article, error) {
	urls := c.SearchURLs(topic)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no search origins configured")
	}

	c.log.Debug("fetch search pages", zap.String("topic", topic), zap.String("fetcher", c.fetcher.Name()), zap.Int("pages", len(urls)))

	pages, err := FetchAll(ctx, c.fetcher, urls)
	if err != nil {
		return nil, fmt.Errorf("fetch search pages: %w", err)
	}

	var articles []Article
	for i, page := range pages {
		entries, err := c.extractor.Extract(page, topic)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", urls[i], err)
		}
		for _, e := range entries {
			articles = append(articles, Article{
				Title:     e.Title,
				URL:       c.normalizer.Normalize(e.Link),
				Published: e.Published,
			})
		}
		c.log.Debug("page extracted", zap.String("url", urls[i]), zap.Int("entries", len(entries)))
	}

	return articles, nil
}

// encodeQueryComponent 查询参数转义，空格编码为 %20；与 encodeURIComponent 不同，!'()* 也会被转义
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
