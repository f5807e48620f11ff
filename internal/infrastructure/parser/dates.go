package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const publishedAtSelector = ".published_at"

// DatePattern pairs a matcher with the layout used to parse its match.
type DatePattern struct {
	Expr   *regexp.Regexp
	Layout string
}

const (
	fullMonths  = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`
	shortMonths = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
)

// DefaultDatePatterns covers "5th January 2026", "January 5, 2026" and
// "5 Jan 2026", tried in that order.
var DefaultDatePatterns = []DatePattern{
	{Expr: regexp.MustCompile(`\d{1,2}(?:st|nd|rd|th) ` + fullMonths + ` \d{4}`), Layout: "2 January 2006"},
	{Expr: regexp.MustCompile(fullMonths + ` \d{1,2}, \d{4}`), Layout: "January 2, 2006"},
	{Expr: regexp.MustCompile(`\d{1,2} ` + shortMonths + ` \d{4}`), Layout: "2 Jan 2006"},
}

var ordinalExpr = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)`)

// cleanOrdinalDay turns "5th January 2026" into "5 January 2026".
func cleanOrdinalDay(s string) string {
	return ordinalExpr.ReplaceAllString(s, "$1")
}

// ParseDate returns the first date found in text. The first pattern that
// matches decides the outcome; later patterns are not consulted.
func ParseDate(text string, patterns []DatePattern) *time.Time {
	for _, p := range patterns {
		match := p.Expr.FindString(text)
		if match == "" {
			continue
		}
		parsed, err := time.Parse(p.Layout, cleanOrdinalDay(match))
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

// ExtractPubDate looks for a dedicated published_at element inside the
// article. Without one, the whole article text is searched only when
// fallback is allowed.
func ExtractPubDate(article *goquery.Selection, patterns []DatePattern, allowFallback bool) *time.Time {
	var raw string
	if dated := article.Find(publishedAtSelector).First(); dated.Length() > 0 {
		raw = strings.TrimSpace(dated.Text())
	} else {
		if !allowFallback {
			return nil
		}
		raw = article.Text()
	}
	return ParseDate(raw, patterns)
}
