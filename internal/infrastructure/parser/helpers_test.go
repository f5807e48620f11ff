package parser

import (
	"context"
	"fmt"
	"time"

	"NewsletterCurator/internal/ports"
)

// mapFetcher serves canned bodies; unknown URLs are unavailable.
type mapFetcher struct {
	pages map[string]string
	calls []string
}

func (f *mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnavailable, url)
	}
	return []byte(body), nil
}

var testNow = time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Example</title>
    <link>https://example.com</link>
    <description>Example feed</description>
    <item>
      <title>Tom &amp;amp; Jerry</title>
      <link>https://example.com/posts/tom-and-jerry</link>
      <pubDate>Sun, 18 Jan 2026 10:00:00 +0000</pubDate>
      <content:encoded><![CDATA[<p>First   paragraph.</p><p>Second &amp; last.</p>]]></content:encoded>
      <description>ignored description</description>
    </item>
    <item>
      <title>Description only</title>
      <link>https://example.com/posts/description</link>
      <pubDate>Sat, 17 Jan 2026 10:00:00 +0000</pubDate>
      <description><![CDATA[<b>Bold</b> words]]></description>
    </item>
    <item>
      <title>No body</title>
      <link>https://example.com/posts/empty</link>
      <pubDate>Sat, 17 Jan 2026 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>No date</title>
      <link>https://example.com/posts/undated</link>
      <description>text</description>
    </item>
    <item>
      <link>https://example.com/posts/untitled</link>
      <pubDate>Sat, 17 Jan 2026 10:00:00 +0000</pubDate>
      <description>text</description>
    </item>
    <item>
      <title>Too old</title>
      <link>https://example.com/posts/old</link>
      <pubDate>Mon, 01 Dec 2025 10:00:00 +0000</pubDate>
      <description>text</description>
    </item>
  </channel>
</rss>`
