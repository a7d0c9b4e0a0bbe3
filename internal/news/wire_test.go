package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
)

func TestBuildEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`
		<article><a href="./articles/old">Bitcoin old news</a><time>30 hours ago</time></article>
		<article><a href="./articles/ten">Bitcoin ten</a><time>10 hours ago</time></article>
		<article><a href="./articles/one">More Bitcoin one</a><time>1 hour ago</time></article>
		<article><a href="./articles/nolabel">Bitcoin undated</a></article>`))
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		SiteOrigin:    "https://news.example.com/",
		SearchOrigins: []string{srv.URL},
		RecencyWindow: 23*time.Hour + 59*time.Minute,
		FetchBackend:  "resty",
		FetchTimeout:  5 * time.Second,
		RedisAddr:     mr.Addr(),
		CacheTTL:      time.Minute,
	}

	svc, cache, err := Build(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if cache == nil {
		t.Fatalf("expected cache when REDIS_ADDR is set")
	}
	defer cache.Close()

	for i := 0; i < 2; i++ {
		out, err := svc.Search(context.Background(), Query{Topic: "BITCOIN"})
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 articles, got %+v", out)
		}
		if out[0].URL != "https://news.example.com/articles/one" || out[0].Title != "Bitcoin one" {
			t.Fatalf("unexpected first article: %+v", out[0])
		}
		if out[1].Published != "10 hours ago" {
			t.Fatalf("unexpected second article: %+v", out[1])
		}
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected one upstream hit thanks to cache, got %d", n)
	}
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{FetchBackend: "telnet"}
	if _, _, err := Build(cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
