package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticleRequiresTitleAndLink(t *testing.T) {
	t.Parallel()

	_, err := NewArticle("", "https://example.com/a", nil)
	require.True(t, errors.Is(err, ErrMissingTitle))

	_, err = NewArticle("Title", "  ", nil)
	require.True(t, errors.Is(err, ErrMissingLink))

	a, err := NewArticle("Title", "https://example.com/a", nil)
	require.NoError(t, err)
	assert.Nil(t, a.PublishedAt)
	assert.Nil(t, a.Summary)
	assert.Nil(t, a.Tags)
	assert.Nil(t, a.Source)
}

func TestSettersDecodeEntities(t *testing.T) {
	t.Parallel()

	a, err := NewArticle("Tom &amp; Jerry", "https://example.com/tj", nil)
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", a.Title)

	a.SetText("&quot;quoted&quot; &lt;b&gt;")
	assert.Equal(t, `"quoted" <b>`, a.TextValue())

	a.SetSummary("caf&eacute; &#39;s")
	assert.Equal(t, "café 's", a.SummaryValue())
}

func TestIsRecent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)

	a, err := NewArticle("t", "l", nil)
	require.NoError(t, err)
	assert.True(t, a.IsRecent(now, DefaultRecencyDays), "missing date is always recent")

	old := now.AddDate(0, 0, -30)
	a.PublishedAt = &old
	assert.False(t, a.IsRecent(now, DefaultRecencyDays))

	inside := now.Add(-24 * time.Hour)
	a.PublishedAt = &inside
	assert.True(t, a.IsRecent(now, DefaultRecencyDays))

	boundary := now.Add(-DefaultRecencyDays * 24 * time.Hour)
	a.PublishedAt = &boundary
	assert.False(t, a.IsRecent(now, DefaultRecencyDays), "boundary is exclusive")

	justInside := boundary.Add(time.Second)
	a.PublishedAt = &justInside
	assert.True(t, a.IsRecent(now, DefaultRecencyDays))
}

func TestToDictAlwaysHasKeys(t *testing.T) {
	t.Parallel()

	a, err := NewArticle("Title", "https://example.com/x", nil)
	require.NoError(t, err)

	row := a.ToDict()
	assert.Len(t, row, 4)
	for _, key := range []string{"title", "summary", "link", "source"} {
		_, ok := row[key]
		assert.True(t, ok, "missing key %s", key)
	}
	assert.Equal(t, "", row["summary"])
	assert.Equal(t, "", row["source"])

	a.SetSummary("short")
	a.SetSource("Language Log")
	row = a.ToDict()
	assert.Equal(t, "short", row["summary"])
	assert.Equal(t, "Language Log", row["source"])
}
