package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/scanner"
)

// NonRSSScanner discovers articles on plain listing pages by matching anchor
// targets against a per-site pattern, then scrapes each candidate page.
type NonRSSScanner struct {
	fetcher  ports.Fetcher
	sites    map[string]config.NonRSSSite
	patterns []DatePattern
	logger   *slog.Logger
}

var _ scanner.Scanner = (*NonRSSScanner)(nil)

// NewNonRSSScanner wires the per-site settings keyed by listing URL.
func NewNonRSSScanner(fetcher ports.Fetcher, sites map[string]config.NonRSSSite, log *slog.Logger) *NonRSSScanner {
	return &NonRSSScanner{
		fetcher:  fetcher,
		sites:    sites,
		patterns: DefaultDatePatterns,
		logger:   log,
	}
}

// Name identifies the strategy inside the registry.
func (s *NonRSSScanner) Name() string {
	return scanner.NonRSS
}

// Scan returns nothing for listing pages without site settings; the link
// pattern is never guessed.
func (s *NonRSSScanner) Scan(ctx context.Context, req scanner.Request) ([]*domain.Article, error) {
	site, ok := s.sites[req.Feed]
	if !ok {
		debug(s.logger, "no site settings, skipping", "feed", req.Feed)
		return nil, nil
	}

	linkExpr, err := compileLinkPattern(site.ArticlePattern)
	if err != nil {
		warn(s.logger, "invalid article pattern, skipping", "feed", req.Feed, "error", err)
		return nil, nil
	}

	body, err := s.fetcher.Fetch(ctx, req.Feed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		warn(s.logger, "listing page unavailable", "feed", req.Feed, "error", err)
		return nil, nil
	}

	listing, err := parseDocument(body)
	if err != nil {
		warn(s.logger, "listing page unparsable", "feed", req.Feed, "error", err)
		return nil, nil
	}

	candidates := collectArticleLinks(listing, req.Feed, linkExpr)

	var articles []*domain.Article
	for _, link := range candidates {
		article := s.scrapeArticle(ctx, link, site.AllowFallbackDate)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if article == nil || !article.IsRecent(req.Now, req.RecencyDays) {
			continue
		}
		articles = append(articles, article)
	}

	debug(s.logger, "listing scanned", "feed", req.Feed, "candidates", len(candidates), "kept", len(articles))
	return articles, nil
}

func (s *NonRSSScanner) scrapeArticle(ctx context.Context, link string, allowFallback bool) *domain.Article {
	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		debug(s.logger, "skip candidate, page unavailable", "link", link, "error", err)
		return nil
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil
	}

	title := doc.Find("title").First()
	if title.Length() == 0 {
		return nil
	}

	articleTag := doc.Find("article").First()
	if articleTag.Length() == 0 {
		return nil
	}

	publishedAt := ExtractPubDate(articleTag, s.patterns, allowFallback)
	article, err := domain.NewArticle(strings.TrimSpace(title.Text()), link, publishedAt)
	if err != nil {
		return nil
	}
	article.SetText(paragraphText(articleTag.Find("p")))
	return article
}

// compileLinkPattern anchors the pattern at the start of the URL.
func compileLinkPattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty article pattern")
	}
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// collectArticleLinks resolves every anchor against the listing page's origin
// and keeps the distinct URLs that match, in first-seen order.
func collectArticleLinks(doc *goquery.Document, listingURL string, linkExpr *regexp.Regexp) []string {
	origin, err := originOf(listingURL)
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{}
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := origin.ResolveReference(ref).String()
		if !linkExpr.MatchString(full) {
			return
		}
		if _, dup := seen[full]; dup {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})
	return links
}

func originOf(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url %s: %w", rawURL, err)
	}
	return &url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: "/"}, nil
}
