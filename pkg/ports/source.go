package ports

import (
	"context"

	"github.com/aretw0/clicktree/pkg/domain"
)

// OptionsSource loads named render payloads, e.g. from a directory of documents.
type OptionsSource interface {
	Load(ctx context.Context, name string) (*domain.RenderConfig, error)
	List(ctx context.Context) ([]string, error)
}
