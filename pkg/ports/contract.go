package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Collapsed = []string{"p-Parent-0", "c-Child-1"}
		snap.Config = &domain.RenderConfig{
			Options: []domain.Item{
				{ID: "p", Name: "Parent", Level: 0},
				{ID: "c", Name: "Child", Level: 1},
			},
			Indent: 12,
			Style:  "color: red;",
		}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, snap.Collapsed, loaded.Collapsed)
		require.NotNil(t, loaded.Config)
		assert.Equal(t, snap.Config.Options, loaded.Config.Options)
		assert.Equal(t, 12, loaded.Config.Indent)
		assert.Equal(t, "color: red;", loaded.Config.Style)
	})

	t.Run("Save Is Isolated", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Collapsed = []string{"a"}
		require.NoError(t, store.Save(ctx, sessionID, snap))

		snap.Collapsed[0] = "mutated"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, loaded.Collapsed)
	})

	t.Run("Sealed Round Trip", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Sealed = "c2VhbGVk"
		require.NoError(t, store.Save(ctx, sessionID, snap))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "c2VhbGVk", loaded.Sealed)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, sessionID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, sessionID)
		require.NoError(t, err)

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, sessionID)
	})
}
