package newsletter

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
)

//go:embed templates/index.html
var templates embed.FS

// Renderer writes an issue as HTML.
type Renderer struct {
	tmpl   *template.Template
	output string
	logger *slog.Logger
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer parses cfg.TemplatePath, or the built-in template when unset.
func NewRenderer(cfg config.NewsletterConfig, log *slog.Logger) (*Renderer, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if cfg.TemplatePath != "" {
		tmpl, err = template.ParseFiles(cfg.TemplatePath)
	} else {
		tmpl, err = template.ParseFS(templates, "templates/index.html")
	}
	if err != nil {
		return nil, fmt.Errorf("parse newsletter template: %w", err)
	}

	return &Renderer{tmpl: tmpl, output: cfg.OutputPath, logger: log}, nil
}

// RenderHTML returns the document without touching the filesystem.
func (r *Renderer) RenderHTML(issue domain.Issue) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, BuildContext(issue)); err != nil {
		return nil, fmt.Errorf("execute newsletter template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render writes the document to the configured output path and returns it.
func (r *Renderer) Render(ctx context.Context, issue domain.Issue) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := r.RenderHTML(issue)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(r.output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(r.output, html, 0o644); err != nil {
		return "", fmt.Errorf("write newsletter: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("newsletter written", "path", r.output, "articles", len(issue.Articles))
	}
	return r.output, nil
}
