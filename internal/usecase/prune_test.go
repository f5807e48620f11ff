package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsletterCurator/internal/domain"
)

func article(t *testing.T, link string, published *time.Time) *domain.Article {
	t.Helper()
	a, err := domain.NewArticle("title "+link, link, published)
	require.NoError(t, err)
	return a
}

func TestPruneRemovesUsedLinks(t *testing.T) {
	t.Parallel()

	input := []*domain.Article{article(t, "u1", nil), article(t, "u2", nil), article(t, "u3", nil)}
	got := Prune(input, map[string]struct{}{"u1": {}}, 20)

	assert.Equal(t, []string{"u2", "u3"}, domain.Links(got))
	assert.Len(t, input, 3, "input is not modified")
}

func TestPruneCapsByRecency(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	var input []*domain.Article
	// Ascending order on input so the sort has work to do.
	for i := 0; i < 25; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		input = append(input, article(t, fmt.Sprintf("link-%02d", i), &ts))
	}

	got := Prune(input, nil, 20)
	require.Len(t, got, 20)
	for i, a := range got {
		assert.Equal(t, fmt.Sprintf("link-%02d", 24-i), a.Link)
	}
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].PublishedAt.After(*got[i].PublishedAt))
	}
	assert.Equal(t, "link-00", input[0].Link, "input order is preserved")
}

func TestPruneRanksUndatedLast(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	older := base.Add(-time.Hour)
	input := []*domain.Article{
		article(t, "undated", nil),
		article(t, "new", &base),
		article(t, "old", &older),
	}

	got := Prune(input, nil, 2)
	assert.Equal(t, []string{"new", "old"}, domain.Links(got))

	got = Prune(input, nil, 3)
	assert.Equal(t, []string{"undated", "new", "old"}, domain.Links(got), "under the cap nothing is reordered")
}

func TestPruneWithoutCap(t *testing.T) {
	t.Parallel()

	input := []*domain.Article{article(t, "a", nil), article(t, "b", nil)}
	got := Prune(input, map[string]struct{}{"b": {}}, 0)
	assert.Equal(t, []string{"a"}, domain.Links(got))
}
