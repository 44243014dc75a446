package file

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SELab-2/Dwengo-4-sub000/internal/dto"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Catalog implements ports.ContentCatalog from a YAML file.
// Question documents are decoded at load time, so callers always see structured options.
type Catalog struct {
	*memory.Catalog
	Path string
}

// LoadCatalog reads the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	summaries, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Catalog{Catalog: memory.NewCatalog(summaries...), Path: path}, nil
}

// ParseCatalog decodes catalog YAML into content summaries.
func ParseCatalog(data []byte) ([]domain.ContentSummary, error) {
	var file dto.CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	out := make([]domain.ContentSummary, 0, len(file.Content))
	seen := make(map[string]bool, len(file.Content))
	for i, entry := range file.Content {
		s, err := dto.ToSummary(entry)
		if err != nil {
			return nil, fmt.Errorf("content entry %d: %w", i, err)
		}
		key := s.Ref.String()
		if seen[key] {
			return nil, fmt.Errorf("content entry %d: duplicate reference %s", i, key)
		}
		seen[key] = true
		out = append(out, s)
	}
	return out, nil
}
