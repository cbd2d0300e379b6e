package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository of automaton envelopes to ports.CatalogLoader.
// Each document carries kind, an optional name and the definition, either as a
// whole JSON/YAML file or as Markdown frontmatter.
type Loader struct {
	Repo *loam.TypedRepository[dto.Envelope]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.Envelope]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numeric scalars as json.Number; ReadOnly avoids the dev sandbox.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[dto.Envelope](repo)), nil
}

// LoadCatalog lists every document and converts it to a description, sorted by name.
// Documents without a kind are skipped. Two documents resolving to the same name
// are reported as a collision.
func (l *Loader) LoadCatalog(ctx context.Context) ([]domain.Description, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	descs := make([]domain.Description, 0, len(docs))
	for _, doc := range docs {
		env := doc.Data
		if env.Kind == "" && env.Definition == nil {
			continue
		}

		kind, err := domain.ParseKind(env.Kind)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		if env.Definition == nil {
			return nil, fmt.Errorf("document %s: missing definition", doc.ID)
		}

		name := env.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: name '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID

		descs = append(descs, domain.Description{
			Kind:       kind,
			Name:       name,
			Source:     doc.ID,
			Definition: dto.NormalizeDefinition(env.Definition),
		})
	}

	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
