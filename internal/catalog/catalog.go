// Package catalog reads automaton descriptions from files and directories and
// preloads them into a registry.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/dto"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"gopkg.in/yaml.v3"
)

// ErrNoKind is returned when neither the file nor the caller names a kind.
var ErrNoKind = errors.New("automaton kind not specified")

// ReadFile reads a JSON or YAML description from path.
//
// The file is either an envelope (kind, name, definition) or a bare definition.
// A bare definition takes fallback as its kind; an envelope's own kind must agree
// with fallback when both are set.
func ReadFile(path string, fallback domain.Kind) (domain.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Description{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Description{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc == nil {
		return domain.Description{}, fmt.Errorf("%s: empty document", path)
	}
	doc = dto.NormalizeDefinition(doc)

	desc := domain.Description{
		Kind:       fallback,
		Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source:     path,
		Definition: doc,
	}

	if rawKind, ok := doc["kind"]; ok {
		s, _ := rawKind.(string)
		kind, err := domain.ParseKind(s)
		if err != nil {
			return domain.Description{}, fmt.Errorf("%s: %w", path, err)
		}
		if fallback != "" && fallback != kind {
			return domain.Description{}, fmt.Errorf("%w: %s describes a %s, not a %s",
				domain.ErrKindMismatch, path, kind.Title(), fallback.Title())
		}
		def, ok := doc["definition"].(map[string]any)
		if !ok {
			return domain.Description{}, fmt.Errorf("%s: missing definition", path)
		}
		desc.Kind = kind
		desc.Definition = def
		if name, ok := doc["name"].(string); ok && name != "" {
			desc.Name = name
		}
	}

	if desc.Kind == "" {
		return domain.Description{}, fmt.Errorf("%w: %s", ErrNoKind, path)
	}
	return desc, nil
}

// OpenDir returns a loader over the catalog directory at dir.
func OpenDir(dir string) (ports.CatalogLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog %s is not a directory", dir)
	}
	return loamAdapter.Open(dir)
}

// Loaded records where a preloaded description ended up.
type Loaded struct {
	ID   string
	Kind domain.Kind
	Name string
}

// Preload validates and stores every description the loader yields.
// It stops at the first invalid description and reports its source.
func Preload(ctx context.Context, svc ports.AutomatonService, loader ports.CatalogLoader, logger *slog.Logger) ([]Loaded, error) {
	descs, err := loader.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]Loaded, 0, len(descs))
	for _, d := range descs {
		id, err := svc.CreateNamed(ctx, d.Kind, d.Name, d.Definition)
		if err != nil {
			source := d.Source
			if source == "" {
				source = d.Name
			}
			return loaded, fmt.Errorf("catalog entry %s: %w", source, err)
		}
		logger.Info("catalog entry loaded", "name", d.Name, "kind", d.Kind, "id", id)
		loaded = append(loaded, Loaded{ID: id, Kind: d.Kind, Name: d.Name})
	}
	return loaded, nil
}
