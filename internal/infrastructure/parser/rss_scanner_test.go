package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/infrastructure/fetch"
	"NewsletterCurator/internal/scanner"
)

func TestRSSScannerScan(t *testing.T) {
	t.Parallel()

	fetcher := &mapFetcher{pages: map[string]string{"https://example.com/feed.xml": sampleFeed}}
	sc := NewRSSScanner(fetcher, nil)

	articles, err := sc.Scan(context.Background(), scanner.Request{
		Feed:        "https://example.com/feed.xml",
		Now:         testNow,
		RecencyDays: 14,
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Tom & Jerry" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Link != "https://example.com/posts/tom-and-jerry" {
		t.Fatalf("unexpected link: %s", first.Link)
	}
	if got := first.TextValue(); got != "First paragraph. Second & last." {
		t.Fatalf("unexpected text: %q", got)
	}
	if first.PublishedAt == nil || first.PublishedAt.Format("2006-01-02") != "2026-01-18" {
		t.Fatalf("unexpected date: %v", first.PublishedAt)
	}
	if first.Summary != nil || first.Tags != nil {
		t.Fatalf("enrichment fields must start empty")
	}

	if got := articles[1].TextValue(); got != "Bold words" {
		t.Fatalf("unexpected description fallback text: %q", got)
	}
}

func TestRSSScannerMalformedFeed(t *testing.T) {
	t.Parallel()

	fetcher := &mapFetcher{pages: map[string]string{"https://example.com/broken": "<html>not a feed"}}
	sc := NewRSSScanner(fetcher, nil)

	articles, err := sc.Scan(context.Background(), scanner.Request{Feed: "https://example.com/broken", Now: testNow, RecencyDays: 14})
	if err != nil {
		t.Fatalf("malformed feed must not fail: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}

	articles, err = sc.Scan(context.Background(), scanner.Request{Feed: "https://example.com/missing", Now: testNow, RecencyDays: 14})
	if err != nil || len(articles) != 0 {
		t.Fatalf("unreachable feed must yield nothing, got %d, %v", len(articles), err)
	}
}

func TestRSSScannerOverHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := fetch.NewClient(config.FetchConfig{Timeout: 2 * time.Second, Attempts: 1}, nil)
	sc := NewRSSScanner(client, nil)

	articles, err := sc.Scan(context.Background(), scanner.Request{Feed: server.URL, Now: testNow, RecencyDays: 14})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
}

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom sample</title>
  <updated>2026-01-19T10:00:00Z</updated>
  <entry>
    <title>Published entry</title>
    <link href="https://example.com/atom/published"/>
    <id>urn:1</id>
    <published>2026-01-18T09:00:00Z</published>
    <updated>2026-01-19T09:00:00Z</updated>
    <content type="html">&lt;p&gt;Has a date.&lt;/p&gt;</content>
  </entry>
  <entry>
    <title>Updated only</title>
    <link href="https://example.com/atom/updated"/>
    <id>urn:2</id>
    <updated>2026-01-19T09:00:00Z</updated>
    <content type="html">&lt;p&gt;No published date.&lt;/p&gt;</content>
  </entry>
</feed>`

func TestRSSScannerAtomRequiresPublished(t *testing.T) {
	t.Parallel()

	fetcher := &mapFetcher{pages: map[string]string{"https://example.com/atom.xml": atomFeed}}
	sc := NewRSSScanner(fetcher, nil)

	articles, err := sc.Scan(context.Background(), scanner.Request{Feed: "https://example.com/atom.xml", Now: testNow, RecencyDays: 14})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Link != "https://example.com/atom/published" {
		t.Fatalf("unexpected link: %s", articles[0].Link)
	}
	if got := articles[0].PublishedAt.Format("2006-01-02"); got != "2026-01-18" {
		t.Fatalf("expected the published date, got %s", got)
	}
}

func TestHTMLToText(t *testing.T) {
	t.Parallel()

	got := htmlToText("<div><h1>Head</h1>\n<p>Body <em>text</em></p></div>")
	if got != "Head Body text" {
		t.Fatalf("unexpected text: %q", got)
	}
}
