package parser

import (
	"context"
	"log/slog"

	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/scanner"
)

// HybridScanner discovers entries through a feed but scrapes the body from
// each entry's page, for feeds that only publish metadata.
type HybridScanner struct {
	fetcher ports.Fetcher
	logger  *slog.Logger
}

var _ scanner.Scanner = (*HybridScanner)(nil)

func NewHybridScanner(fetcher ports.Fetcher, log *slog.Logger) *HybridScanner {
	return &HybridScanner{fetcher: fetcher, logger: log}
}

// Name identifies the strategy inside the registry.
func (s *HybridScanner) Name() string {
	return scanner.Hybrid
}

// Scan walks the feed entries and fetches every linked page in turn. An
// entry whose page cannot be fetched is dropped; the rest of the feed continues.
func (s *HybridScanner) Scan(ctx context.Context, req scanner.Request) ([]*domain.Article, error) {
	feed, err := loadFeed(ctx, s.fetcher, req.Feed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		warn(s.logger, "failed to parse feed", "feed", req.Feed, "error", err)
		return nil, nil
	}

	var articles []*domain.Article
	for _, item := range feed.Items {
		article := newEntryArticle(item)
		// Stale entries are filtered before their page is requested.
		if article == nil || !article.IsRecent(req.Now, req.RecencyDays) {
			continue
		}

		if !s.scrapeContent(ctx, article) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		articles = append(articles, article)
	}

	debug(s.logger, "hybrid feed scanned", "feed", req.Feed, "entries", len(feed.Items), "kept", len(articles))
	return articles, nil
}

func (s *HybridScanner) scrapeContent(ctx context.Context, article *domain.Article) bool {
	body, err := s.fetcher.Fetch(ctx, article.Link)
	if err != nil {
		debug(s.logger, "skip entry, page unavailable", "link", article.Link, "error", err)
		return false
	}

	doc, err := parseDocument(body)
	if err != nil {
		debug(s.logger, "skip entry, page unparsable", "link", article.Link, "error", err)
		return false
	}

	article.SetText(pageBody(doc))
	return true
}
