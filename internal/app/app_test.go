package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/usecase"
)

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()

	recent := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC1123Z)
	older := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC1123Z)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Linguistics</title><link>https://ling.example</link><description>d</description>
<item><title>Slang on the rise</title><link>https://ling.example/slang</link><pubDate>%s</pubDate><description>Slang body.</description></item>
<item><title>Dialects</title><link>https://ling.example/dialects</link><pubDate>%s</pubDate><description>Dialect body.</description></item>
</channel></rss>`, recent, older)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, feedURL string) config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Load(filepath.Join(dir, "missing.yaml"))
	cfg.Feeds.RSS = []string{feedURL}
	cfg.SourceNames = map[string]string{feedURL: "Linguistics Weekly"}
	cfg.Fetch.Attempts = 1
	cfg.Storage = config.StorageConfig{Driver: config.StorageJSON, Path: filepath.Join(dir, "urls.json")}
	cfg.Newsletter.OutputPath = filepath.Join(dir, "issue.html")
	cfg.LLM.APIKey = ""
	cfg.Notifications.Telegram = config.TelegramConfig{}
	return cfg
}

func TestApplicationRunEndToEnd(t *testing.T) {
	server := feedServer(t)
	cfg := testConfig(t, server.URL+"/feed")
	ctx := context.Background()

	var out bytes.Buffer
	application, err := New(ctx, cfg, Terminal{
		In:  strings.NewReader("1\n2\ndone\ny\n"),
		Out: &out,
		Err: &bytes.Buffer{},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	res, err := application.Run(ctx, usecase.RunOptions{Title: "Weekly", MaxArticles: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, cfg.Newsletter.OutputPath, res.OutputPath)
	require.Len(t, res.Issue.Articles, 1)
	assert.Equal(t, "https://ling.example/slang", res.Issue.Articles[0].Link)
	assert.Equal(t, "Linguistics Weekly", res.Issue.Articles[0].SourceValue())

	html, err := os.ReadFile(cfg.Newsletter.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Slang on the rise")

	used, err := application.Store().Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, used, "https://ling.example/slang")

	// The used link is pruned from the next run.
	candidates, err := application.Candidates(ctx, 20)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://ling.example/dialects", candidates[0].Link)
}

func TestApplicationRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t, "https://unused.example/feed")
	cfg.Storage.Driver = "mongo"

	_, err := New(context.Background(), cfg, Terminal{}, nil)
	require.Error(t, err)
}
