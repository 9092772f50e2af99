package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/clicktree/pkg/domain"
)

// Source implements ports.OptionsSource over a fixed set of named payloads.
type Source struct {
	configs map[string]*domain.RenderConfig
}

// NewSource creates a source from named option lists, using the default indent.
func NewSource(lists map[string][]domain.Item) *Source {
	configs := make(map[string]*domain.RenderConfig, len(lists))
	for name, items := range lists {
		configs[name] = &domain.RenderConfig{Options: items, Indent: domain.DefaultIndent}
	}
	return &Source{configs: configs}
}

// Load returns a copy of the named payload.
func (s *Source) Load(ctx context.Context, name string) (*domain.RenderConfig, error) {
	cfg, ok := s.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOptionsNotFound, name)
	}
	out := *cfg
	out.Options = append([]domain.Item{}, cfg.Options...)
	return &out, nil
}

// List returns the payload names, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.configs))
	for name := range s.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
