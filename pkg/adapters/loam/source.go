// Package loam reads option lists from a directory of Markdown, YAML or JSON
// documents managed by Loam. Each document's frontmatter carries one payload.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/clicktree/internal/dto"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/loam"
)

// ListMetadata is the frontmatter of an option document.
type ListMetadata struct {
	ID        string           `json:"id" mapstructure:"id"`
	Indent    *int             `json:"indent" mapstructure:"indent"`
	Style     string           `json:"style" mapstructure:"style"`
	Collapsed []string         `json:"collapsed" mapstructure:"collapsed"`
	Options   []map[string]any `json:"options" mapstructure:"options"`
}

// Source implements ports.OptionsSource over a Loam repository.
type Source struct {
	Repo *loam.TypedRepository[ListMetadata]
}

// New wraps an existing typed repository.
func New(repo *loam.TypedRepository[ListMetadata]) *Source {
	return &Source{Repo: repo}
}

// Open opens dir read-only. Strict mode keeps numbers as json.Number so large
// ids survive without float rounding.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ListMetadata](repo)), nil
}

// Load returns the payload stored in the named document.
func (s *Source) Load(ctx context.Context, name string) (*domain.RenderConfig, error) {
	doc, err := s.Repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrOptionsNotFound, name, err)
	}
	if doc.Data.Options == nil {
		return nil, fmt.Errorf("%w: %s has no options", domain.ErrOptionsNotFound, name)
	}

	cfg, err := dto.DecodeConfig(toPayload(doc.Data))
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", name, err)
	}
	return cfg, nil
}

func toPayload(meta ListMetadata) map[string]any {
	options := make([]any, len(meta.Options))
	for i, o := range meta.Options {
		options[i] = o
	}
	raw := map[string]any{"options": options}
	if meta.Indent != nil {
		raw["indent"] = *meta.Indent
	}
	if meta.Style != "" {
		raw["style"] = meta.Style
	}
	if meta.Collapsed != nil {
		raw["collapsedState"] = meta.Collapsed
	}
	return raw
}

// List returns the names of documents that carry options, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Options == nil {
			continue
		}
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		name := trimExtension(rawID)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
