package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"NewsletterCurator/internal/ports"
)

// JSONStore keeps used links in a flat file shaped {"used_urls": [...]}.
type JSONStore struct {
	path string
}

var _ ports.UsedURLStore = (*JSONStore)(nil)

type jsonDocument struct {
	UsedURLs []string `json:"used_urls"`
}

// NewJSONStore points the store at path; the file is created on first Add.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns every recorded link. A missing file is an empty set.
func (s *JSONStore) Load(ctx context.Context) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	used := make(map[string]struct{}, len(doc.UsedURLs))
	for _, link := range doc.UsedURLs {
		used[link] = struct{}{}
	}
	return used, nil
}

// Add merges links into the file.
func (s *JSONStore) Add(ctx context.Context, links []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	used, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, link := range links {
		used[link] = struct{}{}
	}

	doc := jsonDocument{UsedURLs: make([]string, 0, len(used))}
	for link := range used {
		doc.UsedURLs = append(doc.UsedURLs, link)
	}
	sort.Strings(doc.UsedURLs)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal used urls: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	// Write next to the target and rename so a crash never truncates the file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write used urls: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace used urls: %w", err)
	}
	return nil
}

func (s *JSONStore) read() (jsonDocument, error) {
	var doc jsonDocument

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read used urls: %w", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse used urls %s: %w", s.path, err)
	}
	return doc, nil
}
