package recency

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow 默认的时间窗口：23 小时 59 分钟
const DefaultWindow = 23*time.Hour + 59*time.Minute

var (
	// labelPattern 用于从时间文本中截取 "N hours ago" 原文
	labelPattern = regexp.MustCompile(`(?i)\d+\s*hour(s)?\s+ago`)
	hoursPattern = regexp.MustCompile(`(?i)(\d+)\s*hours?\s+ago`)
)

// Label 返回文本中第一个 "N hour(s) ago" 片段，未匹配时返回空串
func Label(text string) string {
	return labelPattern.FindString(text)
}

// Rule 是一条 "文本 -> 时间" 的解析规则；ok=false 表示本规则不认识该文本
type Rule interface {
	Parse(label string, now time.Time) (t time.Time, ok bool)
}

// RuleFunc 方便用函数直接实现 Rule
type RuleFunc func(label string, now time.Time) (time.Time, bool)

func (f RuleFunc) Parse(label string, now time.Time) (time.Time, bool) {
	return f(label, now)
}

// Parser 按顺序尝试各条规则，第一条命中的规则生效。
// 全部未命中时返回零值 time.Time，调用方据此视为"未知时间"。
type Parser struct {
	rules []Rule
}

// NewParser 使用给定窗口构造默认规则集（目前只有 HoursAgo），extra 规则排在其后
func NewParser(window time.Duration, extra ...Rule) *Parser {
	rules := make([]Rule, 0, 1+len(extra))
	rules = append(rules, HoursAgo{Window: window})
	rules = append(rules, extra...)
	return &Parser{rules: rules}
}

// NewParserWithRules 完全自定义规则顺序
func NewParserWithRules(rules ...Rule) *Parser {
	return &Parser{rules: rules}
}

func (p *Parser) Parse(label string, now time.Time) time.Time {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}
	}
	for _, r := range p.rules {
		if t, ok := r.Parse(label, now); ok {
			return t
		}
	}
	return time.Time{}
}

// HoursAgo 识别 "3 hours ago"、"Yesterday · 5 hours ago" 这类文本。
//
// 当窗口本身回溯到 24 小时或更早时，超过 24 小时的条目不按精确偏移计算，
// 而是归到 now 所在日期的零点，这样它们落在窗口内而不会被过滤掉。
// 默认窗口 23h59m 下该分支不会触发。
type HoursAgo struct {
	Window time.Duration
}

const day = 24 * time.Hour

func (h HoursAgo) Parse(label string, now time.Time) (time.Time, bool) {
	m := hoursPattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > math.MaxInt64/int64(time.Hour) {
		// 数字过大，按未知处理
		return time.Time{}, true
	}
	offset := time.Duration(n) * time.Hour

	cutoff := now.Add(-h.Window)
	if !cutoff.After(now.Add(-day)) && offset >= day {
		return startOfDay(now), true
	}
	return now.Add(-offset), true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
