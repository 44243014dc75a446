package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/file"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunPathStoreContract(t, store)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	b := dsl.New(domain.PathMetadata{Title: "T", Description: "D", Language: "en"})
	b.Add(1).Lesson("a", "A")
	require.NoError(t, store.Seed(b.MustBuild(1)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"counters.json", "path-1.json"}, names)
}

func TestFileStore_ListEmptyDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	paths, err := store.ListPaths(context.Background())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
