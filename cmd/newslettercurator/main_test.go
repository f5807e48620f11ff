package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsletterCurator/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestUsedAddAndList(t *testing.T) {
	store := filepath.Join(t.TempDir(), "urls.json")
	cfg := writeConfig(t, "storage:\n  driver: json\n  path: "+store+"\n")

	out, err := execute(t, "--config", cfg, "used", "add", "https://b.example/2", "https://a.example/1")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 2 link(s)")

	out, err = execute(t, "--config", cfg, "used", "list")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/1\nhttps://b.example/2\n", out)
}

func TestUsedAddRejectsRelativeLinks(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  path: "+filepath.Join(t.TempDir(), "urls.json")+"\n")

	_, err := execute(t, "--config", cfg, "used", "add", "/relative")
	require.Error(t, err)
}

func TestUsedListWithSQLite(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  driver: sqlite\n  path: "+filepath.Join(t.TempDir(), "urls.db")+"\n")

	_, err := execute(t, "--config", cfg, "used", "add", "https://c.example/3")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfg, "used", "list")
	require.NoError(t, err)
	assert.Equal(t, "https://c.example/3\n", out)
}

func TestCandidateTable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)
	published := now.Add(-48 * time.Hour)
	a, err := domain.NewArticle("Slang", "https://example.com/slang", &published)
	require.NoError(t, err)
	a.SetSource("Language Log")
	b, err := domain.NewArticle("Undated", "https://example.com/undated", nil)
	require.NoError(t, err)

	table := candidateTable([]*domain.Article{a, b}, now)
	assert.Contains(t, table, "Language Log")
	assert.Contains(t, table, "2 days ago")
	assert.Contains(t, table, "unknown")
	assert.True(t, strings.Contains(table, "https://example.com/undated"))
}

func TestCandidateTableWrapsLongTitles(t *testing.T) {
	t.Parallel()

	title := strings.TrimSpace(strings.Repeat("lexicon ", 12))
	a, err := domain.NewArticle(title, "https://example.com/lexicon", nil)
	require.NoError(t, err)

	table := candidateTable([]*domain.Article{a}, time.Now())
	assert.NotContains(t, table, title)
	assert.Contains(t, table, "lexicon lexicon")
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
