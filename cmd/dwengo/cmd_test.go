package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/config"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/cache"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/file"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

func TestDemoPath_IsTree(t *testing.T) {
	g, warnings, err := pathgraph.FromPath(demoPath(1))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 5, g.Len())
}

func catalogFor(t *testing.T, cfg config.CatalogConfig) *app {
	t.Helper()
	a := &app{cfg: config.Config{Catalog: cfg}, logger: logging.NewNop()}
	require.NoError(t, a.loadCatalog(context.Background()))
	return a
}

func TestSampleCatalog_CoversDemoPath(t *testing.T) {
	catalog := catalogFor(t, config.CatalogConfig{}).catalog

	for _, n := range demoPath(1).Nodes {
		s, err := catalog.FetchContent(context.Background(), n.Content)
		require.NoError(t, err, n.Content.String())
		assert.Equal(t, n.ContentKind, s.Kind, n.Content.String())
	}
}

func TestLoadCatalog_Cached(t *testing.T) {
	a := catalogFor(t, config.CatalogConfig{CacheTTL: time.Minute})
	assert.IsType(t, &cache.Catalog{}, a.catalog)
	assert.Nil(t, a.docs)
}

func TestLoadCatalog_DocumentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loops.md"), []byte("---\ntitle: Loops\nlanguage: en\n---\nFor and while."), 0o644))

	a := catalogFor(t, config.CatalogConfig{Dir: dir})
	require.NotNil(t, a.docs)
	s, err := a.catalog.FetchContent(context.Background(), domain.LocalRef("loops"))
	require.NoError(t, err)
	assert.Equal(t, "Loops", s.Title)
}

func TestSeedAndValidate_FileStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"paths", "seed", "--store", "file", "--dir", dir, "--id", "3"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Seeded path 3")

	p, err := file.New(dir).LoadPath(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Intro to AI", p.Metadata.Title)

	out.Reset()
	rootCmd.SetArgs([]string{"validate", "3", "--store", "file", "--dir", dir})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Path 3: 5 nodes in 3 sequences")

	out.Reset()
	rootCmd.SetArgs([]string{"graph", "3", "--store", "file", "--dir", dir})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `p_2 -- "supervised" --> p_3`)
}

func TestSeed_UnsupportedStore(t *testing.T) {
	err := seedPath(context.Background(), nil, demoPath(1))
	assert.Error(t, err)
}

func TestVersion_ReportsAPIVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, rootCmd.Execute())

	var v versionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, "0.1.0", v.APIVersion)
	assert.NotEmpty(t, v.Go)
}

func TestShow_PlainOutline(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"paths", "seed", "--store", "file", "--dir", dir, "--id", "4"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"show", "4", "--store", "file", "--dir", dir, "--style", "plain"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "# Intro to AI")
	assert.Contains(t, out.String(), "1. **")
}
