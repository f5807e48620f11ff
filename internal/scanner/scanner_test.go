package scanner

import (
	"context"
	"testing"

	"NewsletterCurator/internal/domain"
)

type stubScanner struct{ name string }

func (s stubScanner) Name() string { return s.name }

func (s stubScanner) Scan(context.Context, Request) ([]*domain.Article, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubScanner{name: RSS})

	got, err := reg.Resolve(RSS)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Name() != RSS {
		t.Fatalf("unexpected scanner: %s", got.Name())
	}

	if _, err := reg.Resolve(NonRSS); err == nil {
		t.Fatalf("expected error for unregistered scanner")
	}
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubScanner{name: Hybrid})
	if _, err := reg.Resolve(Hybrid); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}
