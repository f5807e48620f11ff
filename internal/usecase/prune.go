package usecase

import (
	"sort"

	"NewsletterCurator/internal/domain"
)

// Prune drops articles whose link was already used, then, if more than
// maxCount remain, keeps the maxCount most recent ones. Articles without a
// date rank last. A maxCount of zero or less disables the bound. The input
// slice is left untouched.
func Prune(articles []*domain.Article, used map[string]struct{}, maxCount int) []*domain.Article {
	fresh := make([]*domain.Article, 0, len(articles))
	for _, a := range articles {
		if _, seen := used[a.Link]; seen {
			continue
		}
		fresh = append(fresh, a)
	}

	if maxCount <= 0 || len(fresh) <= maxCount {
		return fresh
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return newerThan(fresh[i], fresh[j])
	})
	return fresh[:maxCount]
}

// newerThan orders by publication date descending; a missing date counts as
// the earliest possible value.
func newerThan(a, b *domain.Article) bool {
	switch {
	case a.PublishedAt == nil:
		return false
	case b.PublishedAt == nil:
		return true
	default:
		return a.PublishedAt.After(*b.PublishedAt)
	}
}
