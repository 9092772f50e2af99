package dto

import (
	"fmt"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Payload is the loosely typed render payload as hosts send it.
// Hosts built on dynamic languages freely mix numbers and strings for ids and
// levels, so decoding is weakly typed.
type Payload struct {
	Options        []ItemPayload `mapstructure:"options"`
	Indent         *int          `mapstructure:"indent"`
	Style          string        `mapstructure:"style"`
	CollapsedState []string      `mapstructure:"collapsedState"`
}

// ItemPayload is one entry of Payload.Options.
type ItemPayload struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Level int    `mapstructure:"level"`
}

// DecodeConfig converts a raw payload (typically map[string]any from JSON or YAML)
// into a RenderConfig. A nil raw value or a payload without "options" decodes to a
// config that is not renderable, never to an error.
func DecodeConfig(raw any) (*domain.RenderConfig, error) {
	cfg := &domain.RenderConfig{Indent: domain.DefaultIndent}
	if raw == nil {
		return cfg, nil
	}

	var p Payload
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payload decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	if p.Options != nil {
		cfg.Options = make([]domain.Item, len(p.Options))
		for i, it := range p.Options {
			cfg.Options[i] = domain.Item{ID: it.ID, Name: it.Name, Level: it.Level}
		}
	}
	if p.Indent != nil {
		cfg.Indent = *p.Indent
	}
	cfg.Style = p.Style

	// Distinguish "not echoed" from "echoed empty".
	if m, ok := raw.(map[string]any); ok {
		if v, present := m["collapsedState"]; present && v != nil {
			cfg.CollapsedState = p.CollapsedState
			if cfg.CollapsedState == nil {
				cfg.CollapsedState = []string{}
			}
		}
	} else {
		cfg.CollapsedState = p.CollapsedState
	}
	return cfg, nil
}

// EncodeConfig converts a RenderConfig back into the payload shape hosts send.
func EncodeConfig(cfg *domain.RenderConfig) map[string]any {
	options := make([]any, len(cfg.Options))
	for i, it := range cfg.Options {
		options[i] = map[string]any{"id": it.ID, "name": it.Name, "level": it.Level}
	}
	out := map[string]any{
		"options": options,
		"indent":  cfg.Indent,
	}
	if cfg.Style != "" {
		out["style"] = cfg.Style
	}
	if cfg.CollapsedState != nil {
		out["collapsedState"] = cfg.CollapsedState
	}
	return out
}
