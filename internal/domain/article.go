package domain

import (
	"errors"
	"html"
	"strings"
	"time"
)

// DefaultRecencyDays is the trailing window used when no other window is configured.
const DefaultRecencyDays = 14

var (
	ErrMissingTitle = errors.New("article title is required")
	ErrMissingLink  = errors.New("article link is required")
)

// Article is a single piece of content discovered by a source adapter.
// Optional fields stay nil until something populates them.
type Article struct {
	Title       string
	Link        string
	PublishedAt *time.Time
	Text        *string
	Summary     *string
	Tags        []string
	Source      *string
}

// NewArticle validates the required fields and builds an article.
func NewArticle(title, link string, publishedAt *time.Time) (*Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(link) == "" {
		return nil, ErrMissingLink
	}

	a := &Article{Link: link}
	a.SetTitle(title)
	if publishedAt != nil {
		ts := *publishedAt
		a.PublishedAt = &ts
	}
	return a, nil
}

// SetTitle stores the title with HTML entities decoded.
func (a *Article) SetTitle(title string) {
	a.Title = html.UnescapeString(title)
}

// SetText stores the extracted body with HTML entities decoded.
func (a *Article) SetText(text string) {
	decoded := html.UnescapeString(text)
	a.Text = &decoded
}

// SetSummary stores the enrichment summary with HTML entities decoded.
func (a *Article) SetSummary(summary string) {
	decoded := html.UnescapeString(summary)
	a.Summary = &decoded
}

func (a *Article) SetSource(source string) {
	a.Source = &source
}

// IsRecent reports whether the article falls inside the trailing window.
// Articles without a publication date are always considered recent.
func (a *Article) IsRecent(now time.Time, windowDays int) bool {
	if a.PublishedAt == nil {
		return true
	}
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	return a.PublishedAt.After(cutoff)
}

// TextValue returns the body or an empty string.
func (a *Article) TextValue() string {
	if a.Text == nil {
		return ""
	}
	return *a.Text
}

// SummaryValue returns the summary or an empty string.
func (a *Article) SummaryValue() string {
	if a.Summary == nil {
		return ""
	}
	return *a.Summary
}

// SourceValue returns the source name or an empty string.
func (a *Article) SourceValue() string {
	if a.Source == nil {
		return ""
	}
	return *a.Source
}

// ToDict projects the fields the newsletter renderer consumes. The keys are
// always present; absent values are rendered as empty strings.
func (a *Article) ToDict() map[string]string {
	return map[string]string{
		"title":   a.Title,
		"summary": a.SummaryValue(),
		"link":    a.Link,
		"source":  a.SourceValue(),
	}
}

// Links collects the identity keys of the given articles in order.
func Links(articles []*Article) []string {
	links := make([]string, 0, len(articles))
	for _, a := range articles {
		links = append(links, a.Link)
	}
	return links
}
