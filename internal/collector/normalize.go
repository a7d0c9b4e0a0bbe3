package collector

import (
	"net/url"
	"strings"
)

// relativePrefixLen 结果页里的链接形如 "./articles/xxx"
const relativePrefixLen = 2

// Normalizer 把结果页中的相对链接拼成绝对地址
type Normalizer struct {
	origin string
}

func NewNormalizer(origin string) *Normalizer {
	if !strings.HasSuffix(origin, "/") {
		origin += "/"
	}
	return &Normalizer{origin: origin}
}

func (n *Normalizer) Origin() string {
	return n.origin
}

// Normalize 去掉前两个字符后拼接到 origin，再做百分号解码。
// 解码失败时原样返回拼接结果，不做 URL 合法性校验。
func (n *Normalizer) Normalize(rel string) string {
	rest := ""
	if len(rel) > relativePrefixLen {
		rest = rel[relativePrefixLen:]
	}
	abs := n.origin + rest
	if decoded, err := url.PathUnescape(abs); err == nil {
		return decoded
	}
	return abs
}
