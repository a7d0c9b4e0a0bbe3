package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.AppPort != "8000" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "8000")
	}
	if cfg.RecencyWindow != 23*time.Hour+59*time.Minute {
		t.Fatalf("RecencyWindow = %v", cfg.RecencyWindow)
	}
	if !reflect.DeepEqual(cfg.SearchOrigins, []string{"https://news.google.com"}) {
		t.Fatalf("SearchOrigins = %v", cfg.SearchOrigins)
	}
	if cfg.SiteOrigin != "https://news.google.com/" {
		t.Fatalf("SiteOrigin = %q", cfg.SiteOrigin)
	}
	if cfg.FetchBackend != "resty" || cfg.FetchTimeout != 20*time.Second {
		t.Fatalf("unexpected fetch defaults: %+v", cfg)
	}
	if cfg.RedisAddr != "" || len(cfg.WarmTopics) != 0 {
		t.Fatalf("cache and warm-up should be disabled by default: %+v", cfg)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")
	t.Setenv("RECENCY_WINDOW", "12h")
	t.Setenv("SEARCH_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("WARM_TOPICS", "bitcoin,golang")
	t.Setenv("FETCH_TIMEOUT", "0s")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.RecencyWindow != 12*time.Hour {
		t.Fatalf("RecencyWindow = %v", cfg.RecencyWindow)
	}
	if !reflect.DeepEqual(cfg.SearchOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("SearchOrigins = %v", cfg.SearchOrigins)
	}
	if !reflect.DeepEqual(cfg.WarmTopics, []string{"bitcoin", "golang"}) {
		t.Fatalf("WarmTopics = %v", cfg.WarmTopics)
	}
	if cfg.FetchTimeout != 0 || cfg.MaxBodyBytes != 1024 {
		t.Fatalf("unexpected fetch settings: %+v", cfg)
	}
}
