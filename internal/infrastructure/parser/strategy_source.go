package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/progress"
	"NewsletterCurator/internal/scanner"
)

// category groups the feed references handled by one strategy.
type category struct {
	scanner string
	label   string
	feeds   []string
}

// StrategySource implements ArticleSource via registered scanner strategies.
// Categories run one after another: RSS, hybrid, then plain listing pages.
type StrategySource struct {
	registry    *scanner.Registry
	categories  []category
	sourceNames map[string]string
	recencyDays int
	now         func() time.Time
	progress    progress.Factory
	logger      *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// SourceOptions tunes a StrategySource.
type SourceOptions struct {
	RecencyDays int
	Now         func() time.Time
	Progress    progress.Factory
}

// NewStrategySource wires the scanner registry with config-defined feeds.
func NewStrategySource(reg *scanner.Registry, cfg config.Config, opts SourceOptions, log *slog.Logger) *StrategySource {
	if opts.RecencyDays <= 0 {
		opts.RecencyDays = domain.DefaultRecencyDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Progress == nil {
		opts.Progress = progress.None()
	}

	return &StrategySource{
		registry: reg,
		categories: []category{
			{scanner: scanner.RSS, label: "Processing RSS feeds", feeds: cfg.Feeds.RSS},
			{scanner: scanner.Hybrid, label: "Processing hybrid feeds", feeds: cfg.Feeds.Hybrid},
			{scanner: scanner.NonRSS, label: "Processing non-RSS feeds", feeds: cfg.Feeds.NonRSS},
		},
		sourceNames: cfg.SourceNames,
		recencyDays: opts.RecencyDays,
		now:         opts.Now,
		progress:    opts.Progress,
		logger:      log,
	}
}

// Collect runs every category and concatenates the results.
func (s *StrategySource) Collect(ctx context.Context) ([]*domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	now := s.now()
	var aggregated []*domain.Article
	for _, cat := range s.categories {
		if len(cat.feeds) == 0 {
			continue
		}

		strategy, err := s.registry.Resolve(cat.scanner)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cat.scanner, err)
		}

		s.debug("process category", "scanner", cat.scanner, "feeds", len(cat.feeds))
		tracker := s.progress(len(cat.feeds), cat.label)
		for _, feed := range cat.feeds {
			results, err := strategy.Scan(ctx, scanner.Request{
				Feed:        feed,
				Now:         now,
				RecencyDays: s.recencyDays,
			})
			if err != nil {
				tracker.Exit()
				return nil, fmt.Errorf("scan %s feed %s: %w", cat.scanner, feed, err)
			}

			s.assignSource(results, feed)
			aggregated = append(aggregated, results...)
			tracker.Add(1)
		}
		tracker.Finish()
	}

	s.debug("strategy source done", "total_articles", len(aggregated))
	return aggregated, nil
}

// assignSource resolves the display name for a feed; unknown feeds get an
// empty name.
func (s *StrategySource) assignSource(articles []*domain.Article, feed string) {
	name := s.sourceNames[feed]
	for _, a := range articles {
		a.SetSource(name)
	}
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
