// Package file keeps learning paths as JSON documents in a directory and reads the
// content catalog from a YAML file. It suits the CLI and single-instance deployments.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

const counterFile = "counters.json"

type counters struct {
	Path int64 `json:"path"`
	Node int64 `json:"node"`
}

// Store implements ports.PathStore using the local filesystem.
// One process may use a directory at a time; within the process it is safe for concurrent use.
type Store struct {
	BasePath string

	mu  sync.Mutex
	now func() time.Time
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".dwengo/paths".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".dwengo", "paths")
	}
	return &Store{BasePath: basePath, now: time.Now}
}

func (s *Store) pathFile(id int64) string {
	return filepath.Join(s.BasePath, "path-"+strconv.FormatInt(id, 10)+".json")
}

// SaveOrCreatePath applies the request. The path document is replaced by an atomic rename,
// so readers and crashes see either the old or the new version.
func (s *Store) SaveOrCreatePath(ctx context.Context, req domain.SaveRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return 0, fmt.Errorf("failed to ensure path directory: %w", err)
	}
	c, err := s.readCounters()
	if err != nil {
		return 0, err
	}

	var existing *domain.Path
	id := c.Path + 1
	if req.PathID != nil {
		existing, err = s.read(*req.PathID)
		if err != nil {
			return 0, err
		}
		id = existing.ID
	}

	next := c
	path, err := reconcile.Apply(id, existing, req, func() (int64, error) {
		next.Node++
		return next.Node, nil
	})
	if err != nil {
		return 0, err
	}
	path.UpdatedAt = s.now().UTC()
	next.Path = max(next.Path, id)

	// Counters first: a crash in between only skips ids.
	if err := writeJSON(s.BasePath, counterFile, next); err != nil {
		return 0, err
	}
	if err := writeJSON(s.BasePath, filepath.Base(s.pathFile(id)), path); err != nil {
		return 0, err
	}
	return id, nil
}

// Seed writes a prepared path under its own id.
func (s *Store) Seed(p *domain.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure path directory: %w", err)
	}
	c, err := s.readCounters()
	if err != nil {
		return err
	}
	c.Path = max(c.Path, p.ID)
	for _, n := range p.Nodes {
		c.Node = max(c.Node, n.ID)
	}
	cp := p.Clone()
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = s.now().UTC()
	}
	if err := writeJSON(s.BasePath, counterFile, c); err != nil {
		return err
	}
	return writeJSON(s.BasePath, filepath.Base(s.pathFile(cp.ID)), cp)
}

// LoadPath reads one path document.
func (s *Store) LoadPath(ctx context.Context, id int64) (*domain.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// ListPaths reads every path document in the directory.
func (s *Store) ListPaths(ctx context.Context) ([]domain.PathSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.PathSummary{}, nil
		}
		return nil, fmt.Errorf("failed to read path directory: %w", err)
	}

	out := make([]domain.PathSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "path-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, "path-"), ".json"), 10, 64)
		if err != nil {
			continue
		}
		p, err := s.read(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) read(id int64) (*domain.Path, error) {
	data, err := os.ReadFile(s.pathFile(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrPathNotFound
		}
		return nil, fmt.Errorf("failed to read path file: %w", err)
	}
	var p domain.Path
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal path %d: %w", id, err)
	}
	return &p, nil
}

func (s *Store) readCounters() (counters, error) {
	var c counters
	data, err := os.ReadFile(filepath.Join(s.BasePath, counterFile))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read counters: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to unmarshal counters: %w", err)
	}
	return c, nil
}

// writeJSON writes to a temporary file, syncs it, and renames it over the destination.
func writeJSON(dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", name, err)
	}
	return nil
}
