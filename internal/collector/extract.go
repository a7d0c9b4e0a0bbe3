package collector

import (
	"strings"

	"github.com/LJTian/NewsRadar/internal/recency"
)

const (
	defaultContainerSelector = "article"
	defaultLinkSelector      = "a"
	defaultTimeSelector      = "time"

	noTitle    = "No title"
	morePrefix = "More"
)

// Selectors 描述结果页的 DOM 结构，站点改版时只需调整这里
type Selectors struct {
	Container string
	Link      string
	Time      string
}

// DefaultSelectors 当前新闻搜索结果页使用的选择器
func DefaultSelectors() Selectors {
	return Selectors{
		Container: defaultContainerSelector,
		Link:      defaultLinkSelector,
		Time:      defaultTimeSelector,
	}
}

// Extractor 从结果页中抽取与 topic 相关的条目
type Extractor struct {
	parse     DocumentParser
	selectors Selectors
}

// NewExtractor parse 为空时使用 goquery；selectors 中的空字段回落到默认值
func NewExtractor(parse DocumentParser, selectors Selectors) *Extractor {
	if parse == nil {
		parse = ParseHTML
	}
	def := DefaultSelectors()
	if selectors.Container == "" {
		selectors.Container = def.Container
	}
	if selectors.Link == "" {
		selectors.Link = def.Link
	}
	if selectors.Time == "" {
		selectors.Time = def.Time
	}
	return &Extractor{parse: parse, selectors: selectors}
}

// Extract 按文档顺序返回标题包含 topic（忽略大小写）且带链接的条目。
// 缺失子元素不算错误：无标题用 "No title"，无时间则 Published 为空，无链接或 href 为空则丢弃。
func (e *Extractor) Extract(markup []byte, topic string) ([]RawEntry, error) {
	doc, err := e.parse(markup)
	if err != nil {
		return nil, err
	}

	topic = strings.ToLower(topic)
	var entries []RawEntry

	for _, container := range doc.Find(e.selectors.Container) {
		var link Element
		if links := container.Find(e.selectors.Link); len(links) > 0 {
			link = links[0]
		}

		title := ""
		if link != nil {
			title = link.Text()
		}
		if title == "" {
			title = noTitle
		}
		title = cleanTitle(title)

		if !strings.Contains(strings.ToLower(title), topic) {
			continue
		}

		entry := RawEntry{Title: title}
		if link != nil {
			entry.Link, entry.HasLink = link.Attr("href")
		}
		// 空 href 与缺失同样无法归一化
		if !entry.HasLink || entry.Link == "" {
			continue
		}

		if times := container.Find(e.selectors.Time); len(times) > 0 {
			entry.Published = recency.Label(strings.TrimSpace(times[0].Text()))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// cleanTitle 去掉站点在聚合标题前拼接的 "More" 前缀
func cleanTitle(title string) string {
	if idx := strings.Index(title, morePrefix); idx != -1 {
		return strings.TrimSpace(title[idx+len(morePrefix):])
	}
	return title
}
