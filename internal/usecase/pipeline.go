package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
)

// ErrNoCandidates is returned when ingestion and pruning leave nothing to curate.
var ErrNoCandidates = errors.New("no candidate articles")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Enricher and Notifier are optional.
type PipelineDeps struct {
	Source   ports.ArticleSource
	Store    ports.UsedURLStore
	Enricher ports.Enricher
	Curator  ports.Curator
	Renderer ports.Renderer
	Notifier ports.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Pipeline implements the newsletter workflow: ingest, prune, enrich,
// curate, render, record and announce.
type Pipeline struct {
	source   ports.ArticleSource
	store    ports.UsedURLStore
	enricher ports.Enricher
	curator  ports.Curator
	renderer ports.Renderer
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// RunOptions carries the per-issue settings.
type RunOptions struct {
	Title       string
	Summary     string
	MaxArticles int
	SkipEnrich  bool
}

// Result describes a finished run.
type Result struct {
	Candidates int
	Issue      domain.Issue
	OutputPath string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		source:   deps.Source,
		store:    deps.Store,
		enricher: deps.Enricher,
		curator:  deps.Curator,
		renderer: deps.Renderer,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		now:      now,
	}
}

// Candidates collects every feed and prunes the result against the used
// links, keeping at most maxArticles.
func (p *Pipeline) Candidates(ctx context.Context, maxArticles int) ([]*domain.Article, error) {
	if p.source == nil {
		return nil, nil
	}

	articles, err := p.source.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect articles: %w", err)
	}

	var used map[string]struct{}
	if p.store != nil {
		used, err = p.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load used urls: %w", err)
		}
	}

	candidates := Prune(articles, used, maxArticles)
	p.info("candidates ready", "collected", len(articles), "kept", len(candidates))
	return candidates, nil
}

// Run executes one full issue.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (Result, error) {
	candidates, err := p.Candidates(ctx, opts.MaxArticles)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}
	result := Result{Candidates: len(candidates)}

	if p.enricher != nil && !opts.SkipEnrich {
		if err := p.enricher.Enrich(ctx, candidates); err != nil {
			return result, fmt.Errorf("enrichment aborted: %w", err)
		}
	}

	selected, err := p.curator.Curate(ctx, candidates)
	if err != nil {
		return result, fmt.Errorf("curate: %w", err)
	}

	result.Issue = domain.Issue{
		Title:    opts.Title,
		Summary:  opts.Summary,
		Date:     p.now(),
		Articles: selected,
	}

	result.OutputPath, err = p.renderer.Render(ctx, result.Issue)
	if err != nil {
		return result, fmt.Errorf("render newsletter: %w", err)
	}

	if p.store != nil {
		if err := p.store.Add(ctx, domain.Links(selected)); err != nil {
			return result, fmt.Errorf("record used urls: %w", err)
		}
	}

	if p.notifier != nil {
		// The newsletter is already on disk; a failed announcement is not fatal.
		if err := p.notifier.PublishIssue(ctx, result.Issue); err != nil {
			p.warn("announce issue", "error", err)
		}
	}

	return result, nil
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
