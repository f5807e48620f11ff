package parser

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/scanner"
)

// RSSScanner reads syndication feeds whose entries carry the article body inline.
type RSSScanner struct {
	fetcher ports.Fetcher
	logger  *slog.Logger
}

var _ scanner.Scanner = (*RSSScanner)(nil)

func NewRSSScanner(fetcher ports.Fetcher, log *slog.Logger) *RSSScanner {
	return &RSSScanner{fetcher: fetcher, logger: log}
}

// Name identifies the strategy inside the registry.
func (s *RSSScanner) Name() string {
	return scanner.RSS
}

// Scan parses the feed and keeps recent entries that carry a title, link,
// publication date and some body.
func (s *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]*domain.Article, error) {
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
		article := parseRSSItem(item)
		if article == nil || !article.IsRecent(req.Now, req.RecencyDays) {
			continue
		}
		articles = append(articles, article)
	}

	debug(s.logger, "rss feed scanned", "feed", req.Feed, "entries", len(feed.Items), "kept", len(articles))
	return articles, nil
}

func parseRSSItem(item *gofeed.Item) *domain.Article {
	article := newEntryArticle(item)
	if article == nil {
		return nil
	}

	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}
	if strings.TrimSpace(body) == "" {
		return nil
	}

	article.SetText(htmlToText(body))
	return article
}

// newEntryArticle validates the metadata shared by RSS and hybrid entries.
func newEntryArticle(item *gofeed.Item) *domain.Article {
	if item == nil || item.PublishedParsed == nil {
		return nil
	}
	article, err := domain.NewArticle(strings.TrimSpace(item.Title), strings.TrimSpace(item.Link), item.PublishedParsed)
	if err != nil {
		return nil
	}
	return article
}

func loadFeed(ctx context.Context, fetcher ports.Fetcher, feedURL string) (*gofeed.Feed, error) {
	body, err := fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	fp := gofeed.NewParser()
	fp.AtomTranslator = &publishedAtomTranslator{}
	return fp.Parse(bytes.NewReader(body))
}

// publishedAtomTranslator stops gofeed from passing an Atom entry's
// <updated> off as its publication date. Entries without <published> end up
// undated and are dropped by newEntryArticle.
type publishedAtomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *publishedAtomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	src, ok := feed.(*atom.Feed)
	if !ok {
		return out, nil
	}
	for i, entry := range src.Entries {
		if i < len(out.Items) && entry.PublishedParsed == nil {
			out.Items[i].Published = ""
			out.Items[i].PublishedParsed = nil
		}
	}
	return out, nil
}

func debug(log *slog.Logger, msg string, args ...interface{}) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

func warn(log *slog.Logger, msg string, args ...interface{}) {
	if log != nil {
		log.Warn(msg, args...)
	}
}
