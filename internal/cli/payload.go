package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/clicktree/internal/dto"
	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// ReadPayload decodes a render payload written as YAML or JSON. When query is
// set it is run with jq semantics and its first result becomes the payload.
// A bare array is taken as the options list.
func ReadPayload(r io.Reader, query string) (*domain.RenderConfig, error) {
	limit := int64(sanitize.MaxPayloadSize())
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	if err := sanitize.Payload(data); err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	if query != "" {
		if doc, err = runQuery(query, doc); err != nil {
			return nil, err
		}
	}
	if items, ok := doc.([]any); ok {
		doc = map[string]any{"options": items}
	}
	return dto.DecodeConfig(doc)
}

// LoadPayload reads a payload file; "-" reads stdin.
func LoadPayload(path, query string, stdin io.Reader) (*domain.RenderConfig, error) {
	if path == "-" {
		return ReadPayload(stdin, query)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()
	return ReadPayload(f, query)
}

func runQuery(query string, doc any) (any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	iter := code.Run(doc)
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("query %q produced no result", query)
	}
	if err, isErr := v.(error); isErr {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return v, nil
}
