// Package testutils holds fixtures shared by adapter tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo writes files into a temporary directory and opens a Loam
// repository over it. It fails the test immediately on error.
func SetupTestRepo(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// Methods is the three-level option list used across tests:
//
//	Method A
//	  Method B
//	    Method C
//	  Method D
//	Method E
func Methods() []domain.Item {
	return []domain.Item{
		{ID: "a", Name: "Method A", Level: 0},
		{ID: "b", Name: "Method B", Level: 1},
		{ID: "c", Name: "Method C", Level: 2},
		{ID: "d", Name: "Method D", Level: 1},
		{ID: "e", Name: "Method E", Level: 0},
	}
}
