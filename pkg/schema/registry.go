package schema

import (
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

// Registry maps schema ids to schemas for one graph.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Add registers s under id.
func (r *Registry) Add(id string, s *Schema) error {
	if id == "" || s == nil {
		return common.Configurationf("schema needs an id and a definition")
	}
	if _, exists := r.schemas[id]; exists {
		return common.InvalidOperationf("schema %q already defined", id)
	}
	r.schemas[id] = s
	return nil
}

// Get returns the schema registered under id.
func (r *Registry) Get(id string) (*Schema, error) {
	s, ok := r.schemas[id]
	if !ok {
		return nil, common.InvalidOperationf("schema %q not defined", id)
	}
	return s, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.schemas[id]
	return ok
}

// Update replaces the schema registered under id. The item kind cannot
// change.
func (r *Registry) Update(id string, s *Schema) error {
	current, ok := r.schemas[id]
	if !ok {
		return common.InvalidOperationf("schema %q not defined", id)
	}
	if s == nil {
		return common.Configurationf("schema %q: nil definition", id)
	}
	if current.kind != s.kind {
		return common.InvalidOperationf("schema %q: cannot change kind from %s to %s", id, current.kind, s.kind)
	}
	r.schemas[id] = s
	return nil
}

// Remove drops id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	delete(r.schemas, id)
}

// IDs returns every registered id, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.schemas))
	for id := range r.schemas {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IDsOfKind returns the sorted ids of schemas describing kind.
func (r *Registry) IDsOfKind(kind ItemKind) []string {
	var ids []string
	for id, s := range r.schemas {
		if s.kind == kind {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
