package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/curation"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/enrichment"
	"NewsletterCurator/internal/infrastructure/fetch"
	"NewsletterCurator/internal/infrastructure/llm"
	"NewsletterCurator/internal/infrastructure/parser"
	"NewsletterCurator/internal/infrastructure/storage"
	"NewsletterCurator/internal/infrastructure/telegram"
	"NewsletterCurator/internal/logging"
	"NewsletterCurator/internal/newsletter"
	"NewsletterCurator/internal/ports"
	"NewsletterCurator/internal/progress"
	"NewsletterCurator/internal/scanner"
	"NewsletterCurator/internal/usecase"
)

// Terminal describes the operator's console.
type Terminal struct {
	In  io.Reader
	Out io.Writer
	// Err receives progress bars.
	Err io.Writer
	// Interactive is true when Out is a real terminal.
	Interactive bool
}

// Application wires configs to use cases.
type Application struct {
	store      ports.UsedURLStore
	closeStore func() error
	pipeline   *usecase.Pipeline
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, term Terminal, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.Discard()
	}
	if term.In == nil {
		term.In = os.Stdin
	}
	if term.Out == nil {
		term.Out = os.Stdout
	}
	if term.Err == nil {
		term.Err = os.Stderr
	}

	bars := progress.None()
	if term.Interactive {
		bars = progress.Bars(term.Err)
	}

	fetcher := fetch.NewClient(cfg.Fetch, baseLogger.With("component", "fetch"))

	registry := scanner.NewRegistry()
	registry.Register(parser.NewRSSScanner(fetcher, baseLogger.With("component", "scanner.rss")))
	registry.Register(parser.NewHybridScanner(fetcher, baseLogger.With("component", "scanner.hybrid")))
	registry.Register(parser.NewNonRSSScanner(fetcher, cfg.NonRSS, baseLogger.With("component", "scanner.nonrss")))

	source := parser.NewStrategySource(registry, cfg, parser.SourceOptions{
		RecencyDays: cfg.Pipeline.RecencyDays,
		Progress:    bars,
	}, baseLogger.With("component", "source"))

	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open used-url store: %w", err)
	}

	var enricher ports.Enricher
	if cfg.LLM.APIKey != "" {
		completer, err := llm.New(cfg.LLM)
		if err != nil {
			_ = closeStore()
			return nil, err
		}
		enricher = enrichment.NewService(completer, cfg.LLM, cfg.Enrichment,
			enrichment.Options{Progress: bars}, baseLogger.With("component", "enrichment"))
	} else {
		baseLogger.Warn("no llm api key configured, articles will not be summarised", "provider", cfg.LLM.Provider)
	}

	renderer, err := newsletter.NewRenderer(cfg.Newsletter, baseLogger.With("component", "newsletter"))
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(cfg.Notifications.Telegram); tg.Configured() {
		notifier = tg
	}

	curator := curation.New(curation.Options{
		In:          term.In,
		Out:         term.Out,
		Colors:      cfg.UI.ColorsEnabled() && term.Interactive,
		ClearScreen: term.Interactive,
	})

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   source,
		Store:    store,
		Enricher: enricher,
		Curator:  curator,
		Renderer: renderer,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return &Application{store: store, closeStore: closeStore, pipeline: pipeline}, nil
}

// Run produces one newsletter issue.
func (a *Application) Run(ctx context.Context, opts usecase.RunOptions) (usecase.Result, error) {
	return a.pipeline.Run(ctx, opts)
}

// Candidates ingests and prunes without curating.
func (a *Application) Candidates(ctx context.Context, maxArticles int) ([]*domain.Article, error) {
	return a.pipeline.Candidates(ctx, maxArticles)
}

// Store exposes the used-URL store for maintenance commands.
func (a *Application) Store() ports.UsedURLStore {
	return a.store
}

// Close releases the store.
func (a *Application) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}
