package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.CatalogLoader over descriptions held in memory.
type Loader struct {
	descs map[string]domain.Description
}

// NewLoader creates a loader from raw JSON definitions keyed by name.
func NewLoader(kind domain.Kind, data map[string]string) (*Loader, error) {
	descs := make([]domain.Description, 0, len(data))
	for name, raw := range data {
		var def map[string]any
		if err := json.Unmarshal([]byte(raw), &def); err != nil {
			return nil, fmt.Errorf("failed to decode definition %s: %w", name, err)
		}
		descs = append(descs, domain.Description{Kind: kind, Name: name, Source: "memory", Definition: def})
	}
	return NewFromDescriptions(descs...)
}

// NewFromDescriptions creates a loader from already decoded descriptions.
func NewFromDescriptions(descs ...domain.Description) (*Loader, error) {
	l := &Loader{descs: make(map[string]domain.Description, len(descs))}
	for _, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("description missing name")
		}
		if _, ok := l.descs[d.Name]; ok {
			return nil, fmt.Errorf("duplicate description name %q", d.Name)
		}
		l.descs[d.Name] = d
	}
	return l, nil
}

// LoadCatalog returns the descriptions sorted by name.
func (l *Loader) LoadCatalog(_ context.Context) ([]domain.Description, error) {
	names := make([]string, 0, len(l.descs))
	for k := range l.descs {
		names = append(names, k)
	}
	sort.Strings(names) // Deterministic order

	out := make([]domain.Description, 0, len(names))
	for _, name := range names {
		out = append(out, l.descs[name])
	}
	return out, nil
}
