package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultUserAgent    = "NewsRadarBot/1.0"
	defaultMaxBodyBytes = 4 << 20 // 4MB，防止超大 HTML
	errSnippetBytes     = 512
)

// FetchOptions 各类 PageFetcher 共用的抓取参数
type FetchOptions struct {
	// Timeout 为 0 表示不设超时
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
	return o
}

// RestyFetcher 默认的抓取实现
type RestyFetcher struct {
	client *resty.Client
	opts   FetchOptions
}

func NewRestyFetcher(opts FetchOptions) *RestyFetcher {
	opts = opts.withDefaults()
	client := resty.New().
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &RestyFetcher{client: client, opts: opts}
}

func (f *RestyFetcher) Name() string {
	return "resty"
}

func (f *RestyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	// 自行读取响应体，超限时最多多读一个字节
	resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	body, err := io.ReadAll(io.LimitReader(raw, int64(f.opts.MaxBodyBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: status %d body: %s", url, resp.StatusCode(), snippet(body))
	}
	if err := f.opts.checkBodySize(url, len(body)); err != nil {
		return nil, err
	}
	return body, nil
}

// ErrBodyTooLarge 页面超过 MaxBodyBytes，整次抓取失败
var ErrBodyTooLarge = errors.New("body too large")

func (o FetchOptions) checkBodySize(url string, n int) error {
	if n > o.MaxBodyBytes {
		return fmt.Errorf("get %s: %w: exceeds %d bytes", url, ErrBodyTooLarge, o.MaxBodyBytes)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > errSnippetBytes {
		return s[:errSnippetBytes] + "..."
	}
	return s
}
