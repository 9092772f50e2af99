package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/clicktree/pkg/adapters/memory"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	ctx := context.Background()
	src := memory.NewSource(map[string][]domain.Item{
		"menu":  {{ID: "a", Name: "A", Level: 0}},
		"empty": {},
	})

	names, err := src.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "menu"}, names)

	cfg, err := src.Load(ctx, "menu")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIndent, cfg.Indent)
	assert.Len(t, cfg.Options, 1)

	cfg.Options[0].Name = "mutated"
	again, err := src.Load(ctx, "menu")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Options[0].Name)

	_, err = src.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOptionsNotFound)
}
