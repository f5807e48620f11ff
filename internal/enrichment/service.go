// Package enrichment asks a language model to summarise and tag articles.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/infrastructure/llm"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/progress"
)

// Options carries the run-time hooks of the service.
type Options struct {
	Progress progress.Factory
	// Sleep waits out rate-limit hints; it must return early when ctx ends.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Service fills Summary and Tags on each article, one request at a time.
type Service struct {
	completer     ports.Completer
	limiter       *rate.Limiter
	vocabulary    []string
	summaryWords  int
	audience      string
	serverRetries int
	retryWait     time.Duration
	maxAttempts   int
	progress      progress.Factory
	sleep         func(ctx context.Context, d time.Duration) error
	logger        *slog.Logger
}

var _ ports.Enricher = (*Service)(nil)

// NewService wires the completer with the pacing and retry settings from
// configuration.
func NewService(completer ports.Completer, llmCfg config.LLMConfig, cfg config.EnrichmentConfig, opts Options, log *slog.Logger) *Service {
	limit := rate.Inf
	if llmCfg.RequestInterval > 0 {
		limit = rate.Every(llmCfg.RequestInterval)
	}
	if opts.Progress == nil {
		opts.Progress = progress.None()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	return &Service{
		completer:     completer,
		limiter:       rate.NewLimiter(limit, 1),
		vocabulary:    cfg.Tags,
		summaryWords:  max(cfg.SummaryWords, 1),
		audience:      cfg.Audience,
		serverRetries: max(llmCfg.ServerRetries, 1),
		retryWait:     llmCfg.RetryWait,
		maxAttempts:   max(llmCfg.MaxAttempts, 1),
		progress:      opts.Progress,
		sleep:         opts.Sleep,
		logger:        log,
	}
}

// Enrich processes articles in order. It stops at the first article that
// hits the provider's daily quota and returns an error wrapping
// llm.ErrQuotaExhausted; articles already processed keep their results.
func (s *Service) Enrich(ctx context.Context, articles []*domain.Article) error {
	bar := s.progress(len(articles), "Summarising and tagging articles")

	for _, article := range articles {
		if err := s.enrichOne(ctx, article); err != nil {
			bar.Exit()
			return err
		}
		bar.Add(1)
	}
	bar.Finish()
	return nil
}

func (s *Service) enrichOne(ctx context.Context, article *domain.Article) error {
	text := strings.TrimSpace(article.TextValue())
	if text == "" {
		s.debug("skip article without text", "link", article.Link)
		return nil
	}
	prompt := BuildPrompt(text, s.vocabulary, s.summaryWords, s.audience)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		reply, err := s.complete(ctx, prompt)
		if err == nil {
			summary, tags, ok := ParseReply(reply, s.vocabulary)
			if !ok {
				s.debug("unparseable model reply", "link", article.Link)
				return nil
			}
			article.SetSummary(summary)
			article.Tags = tags
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, llm.ErrQuotaExhausted) {
			return fmt.Errorf("enrich %s: %w", article.Link, err)
		}

		var rateErr *llm.RateLimitError
		if errors.As(err, &rateErr) {
			wait := rateErr.RetryAfter + time.Second
			s.debug("rate limited", "link", article.Link, "attempt", attempt, "wait", wait)
			if err := s.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		s.warn("enrichment attempt failed", "link", article.Link, "attempt", attempt, "error", err)
	}

	s.warn("giving up on article", "link", article.Link, "attempts", s.maxAttempts)
	return nil
}

// complete paces the request and retries provider-side failures on a
// constant backoff. Every other failure is returned as is.
func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	var reply string
	op := func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		out, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			var serverErr *llm.ServerError
			if errors.As(err, &serverErr) {
				return err
			}
			return backoff.Permanent(err)
		}
		reply = out
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryWait), uint64(s.serverRetries-1)), ctx)
	notify := func(err error, wait time.Duration) {
		s.debug("model server error, retrying", "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", err
	}
	return reply, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Service) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
