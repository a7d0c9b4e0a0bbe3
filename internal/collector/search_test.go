package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSearchURLs(t *testing.T) {
	c := NewSearchCollector(SearchConfig{
		SearchOrigins: []string{"https://news.example.com/", " ", "https://mirror.example.com"},
		SearchParams:  "hl=en-US&gl=US",
		SiteOrigin:    "https://news.example.com/",
	}, &fakeFetcher{}, nil)

	got := c.SearchURLs("bitcoin price & co")
	want := []string{
		"https://news.example.com/search?q=bitcoin%20price%20%26%20co&hl=en-US&gl=US",
		"https://mirror.example.com/search?q=bitcoin%20price%20%26%20co&hl=en-US&gl=US",
	}
	if len(got) != len(want) {
		t.Fatalf("SearchURLs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SearchURLs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchCollectorCollect(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()
		_, _ = w.Write([]byte(`
		<article><a href="./articles/btc%20rally">More Bitcoin rally continues</a><time>2 hours ago</time></article>
		<article><a href="./articles/other">Unrelated headline</a><time>1 hour ago</time></article>`))
	}))
	defer srv.Close()

	c := NewSearchCollector(SearchConfig{
		SearchOrigins: []string{srv.URL},
		SiteOrigin:    "https://news.example.com",
	}, NewRestyFetcher(FetchOptions{Timeout: 5 * time.Second}), nil)

	articles, err := c.Collect(context.Background(), "bitcoin rally")
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %+v", articles)
	}
	a := articles[0]
	if a.Title != "Bitcoin rally continues" {
		t.Fatalf("unexpected title: %q", a.Title)
	}
	if a.URL != "https://news.example.com/articles/btc rally" {
		t.Fatalf("unexpected url: %q", a.URL)
	}
	if a.Published != "2 hours ago" || !a.PublishedAt.IsZero() {
		t.Fatalf("unexpected published: %+v", a)
	}
	if len(queries) != 1 || queries[0] != "bitcoin rally" {
		t.Fatalf("unexpected outbound queries: %v", queries)
	}
}

func TestSearchCollectorMultiplePagesAndFailure(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]string{
			"https://a.example/search?q=go": `<article><a href="./1">go first</a></article>`,
			"https://b.example/search?q=go": `<article><a href="./2">go second</a></article><article><a href="./3">go third</a></article>`,
		},
	}
	c := NewSearchCollector(SearchConfig{
		SearchOrigins: []string{"https://a.example", "https://b.example"},
		SiteOrigin:    "https://site/",
	}, f, nil)

	articles, err := c.Collect(context.Background(), "go")
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	var titles []string
	for _, a := range articles {
		titles = append(titles, a.Title)
	}
	if strings.Join(titles, "|") != "go first|go second|go third" {
		t.Fatalf("unexpected order: %v", titles)
	}

	f.fail = map[string]error{"https://b.example/search?q=go": context.DeadlineExceeded}
	if _, err := c.Collect(context.Background(), "go"); err == nil {
		t.Fatalf("expected failure when one page fails")
	}

	empty := NewSearchCollector(SearchConfig{SiteOrigin: "https://site/"}, f, nil)
	if _, err := empty.Collect(context.Background(), "go"); err == nil {
		t.Fatalf("expected error without search origins")
	}
}

func TestEncodeQueryComponent(t *testing.T) {
	cases := map[string]string{
		"bitcoin etf": "bitcoin%20etf",
		"a&b=c":       "a%26b%3Dc",
		"wow!":        "wow%21",
		"(go)":        "%28go%29",
	}
	for in, want := range cases {
		if got := encodeQueryComponent(in); got != want {
			t.Fatalf("encodeQueryComponent(%q) = %q, want %q", in, got, want)
		}
	}
}
