package collector

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Document 是一棵可按选择器查询的文档树，底层解析库可替换
type Document interface {
	Find(selector string) []Element
}

// Element 文档中的一个节点
type Element interface {
	Find(selector string) []Element
	Text() string
	Attr(name string) (string, bool)
}

// DocumentParser 把原始 markup 解析为 Document
type DocumentParser func(markup []byte) (Document, error)

// ParseHTML 基于 goquery 的默认实现
func ParseHTML(markup []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goqueryNode{sel: doc.Selection}, nil
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n goqueryNode) Find(selector string) []Element {
	found := n.sel.Find(selector)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goqueryNode{sel: s})
	})
	return out
}

func (n goqueryNode) Text() string {
	return n.sel.Text()
}

func (n goqueryNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
