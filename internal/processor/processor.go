package processor

import (
	"sort"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/LJTian/NewsRadar/internal/recency"
)

// Processor 负责时间标注、按窗口过滤与排序
type Processor struct {
	window time.Duration
	parser *recency.Parser
}

// New 按窗口构造；window<=0 时使用默认的 23h59m。
// 解析器与过滤使用同一个窗口，保证跨日边界的处理一致。
func New(window time.Duration, extra ...recency.Rule) *Processor {
	if window <= 0 {
		window = recency.DefaultWindow
	}
	return &Processor{
		window: window,
		parser: recency.NewParser(window, extra...),
	}
}

func (p *Processor) Window() time.Duration {
	return p.window
}

// Process 标注 PublishedAt 后过滤排序，不修改入参
func (p *Processor) Process(items []collector.Article, now time.Time) []collector.Article {
	return p.Select(p.Annotate(items, now), now)
}

// Annotate 根据 Published 文本推算 PublishedAt，无法识别时为零值
func (p *Processor) Annotate(items []collector.Article, now time.Time) []collector.Article {
	out := make([]collector.Article, len(items))
	for i, it := range items {
		it.PublishedAt = p.parser.Parse(it.Published, now)
		out[i] = it
	}
	return out
}

// Select 保留 PublishedAt >= now-window 的条目，按时间倒序稳定排序。
// 零值时间永远早于截止点，因此未知时间的条目总会被剔除。
func (p *Processor) Select(items []collector.Article, now time.Time) []collector.Article {
	cutoff := now.Add(-p.window)

	out := make([]collector.Article, 0, len(items))
	for _, it := range items {
		if it.PublishedAt.IsZero() || it.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
