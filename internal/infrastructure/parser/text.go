package parser

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag, leaving a space where a tag stood so that
// adjacent block elements do not run together.
var stripPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// htmlToText reduces an HTML fragment to whitespace-normalised plain text.
// Entities are left encoded; Article setters decode them.
func htmlToText(fragment string) string {
	return strings.Join(strings.Fields(stripPolicy.Sanitize(fragment)), " ")
}

func parseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// paragraphText joins the trimmed text of every paragraph with newlines.
func paragraphText(paragraphs *goquery.Selection) string {
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(p.Text()))
	})
	return strings.Join(parts, "\n")
}

// pageBody prefers paragraphs inside the first <article>, falling back to
// every paragraph on the page.
func pageBody(doc *goquery.Document) string {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return paragraphText(article.Find("p"))
	}
	return paragraphText(doc.Find("p"))
}
