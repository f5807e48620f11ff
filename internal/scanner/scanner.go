package scanner

import (
	"context"
	"fmt"
	"time"

	"NewsletterCurator/internal/domain"
)

// Strategy names used in the registry and in logs.
const (
	RSS    = "rss"
	Hybrid = "hybrid"
	NonRSS = "nonrss"
)

// Request carries all parameters required to scan one feed reference.
type Request struct {
	Feed        string
	Now         time.Time
	RecencyDays int
}

// Scanner captures a single ingestion strategy (RSS, hybrid, plain HTML).
// Structural problems with a feed or entry never surface as errors; Scan only
// fails when the context is done.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]*domain.Article, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
