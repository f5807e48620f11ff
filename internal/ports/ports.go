package ports

import (
	"context"
	"errors"

	"NewsletterCurator/internal/domain"
)

var (
	// ErrUnavailable marks a resource that could not be fetched after retries
	// or failed with a non-recoverable HTTP status.
	ErrUnavailable = errors.New("resource unavailable")
	// ErrInvalidURL marks a fetch call made with an unusable URL.
	ErrInvalidURL = errors.New("invalid url")
)

// ArticleSource pulls candidate articles from every configured feed.
type ArticleSource interface {
	Collect(ctx context.Context) ([]*domain.Article, error)
}

// Fetcher retrieves a remote document, retrying transient failures.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// UsedURLStore keeps links already placed in a previous newsletter.
type UsedURLStore interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	Add(ctx context.Context, links []string) error
}

// Completer sends a single prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enricher populates summary and tags on each article.
type Enricher interface {
	Enrich(ctx context.Context, articles []*domain.Article) error
}

// Curator lets an operator pick the articles that go into the newsletter.
type Curator interface {
	Curate(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error)
}

// Renderer turns the selected articles into a newsletter document and
// returns where it was written.
type Renderer interface {
	Render(ctx context.Context, issue domain.Issue) (string, error)
}

// Notifier announces a finished newsletter on an outbound channel.
type Notifier interface {
	PublishIssue(ctx context.Context, issue domain.Issue) error
}
