package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_Contract(t *testing.T) {
	cache := file.NewCache(t.TempDir())
	ports.RunResultCacheContract(t, cache)
}

func TestFileCache_DefaultPath(t *testing.T) {
	cache := file.NewCache("")
	assert.Equal(t, filepath.Join(".turing", "cache"), cache.BasePath)
}

func TestFileCache_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	cache := file.NewCache(dir)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "a", &domain.RunResult{Output: "1"}))
	require.NoError(t, cache.Put(ctx, "a", &domain.RunResult{Output: "2"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

const complementYAML = `
start: q0
halt: [qf]
tape: "110"
rules:
  - {state: q0, read: 1, next: q0, write: 0, move: R}
  - {state: q0, read: 0, next: q0, write: 1, move: R}
  - {state: q0, read: " ", next: qf, move: N}
`

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flip.yaml"), []byte(complementYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	var src ports.DefinitionSource = file.NewSource(dir)

	names, err := src.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"flip"}, names)

	def, err := src.Get("flip")
	require.NoError(t, err)
	assert.Equal(t, "flip", def.Name)

	m, err := def.Build(nil)
	require.NoError(t, err)
	contents, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "001", turing.Result(contents, m.Blank()))

	t.Run("Missing", func(t *testing.T) {
		_, err := src.Get("nope")
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Path Traversal", func(t *testing.T) {
		_, err := src.Get("../flip")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		names, err := file.NewSource(filepath.Join(dir, "absent")).List()
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
