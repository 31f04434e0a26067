// Package schema declares which features apply to a class of graph items.
package schema

import (
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
)

// ItemKind is the kind of graph item a schema describes.
type ItemKind int

const (
	Node ItemKind = iota
	DirectedEdge
	UndirectedEdge
	GraphKind
)

func (k ItemKind) String() string {
	switch k {
	case Node:
		return "node"
	case DirectedEdge:
		return "directed"
	case UndirectedEdge:
		return "undirected"
	case GraphKind:
		return "graph"
	default:
		return "unknown"
	}
}

// ParseItemKind is the inverse of ItemKind.String.
func ParseItemKind(s string) (ItemKind, bool) {
	for k := Node; k <= GraphKind; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// IsEdge reports whether k is one of the edge kinds.
func (k ItemKind) IsEdge() bool {
	return k == DirectedEdge || k == UndirectedEdge
}

// Schema is an item kind plus an insertion ordered set of feature
// declarations.
type Schema struct {
	kind     ItemKind
	ids      []string
	features map[string]feature.Feature
}

// New creates an empty schema for items of kind.
func New(kind ItemKind) *Schema {
	return &Schema{
		kind:     kind,
		features: make(map[string]feature.Feature),
	}
}

// Kind returns the item kind.
func (s *Schema) Kind() ItemKind { return s.kind }

// AddFeature declares a feature. Feature ids are unique within a schema.
func (s *Schema) AddFeature(id string, f feature.Feature) error {
	if id == "" || f == nil {
		return common.Configurationf("feature needs an id and a declaration")
	}
	if _, exists := s.features[id]; exists {
		return common.InvalidOperationf("feature %q already declared", id)
	}
	s.ids = append(s.ids, id)
	s.features[id] = f
	return nil
}

// RemoveFeature drops a feature declaration.
func (s *Schema) RemoveFeature(id string) error {
	if _, exists := s.features[id]; !exists {
		return common.InvalidOperationf("feature %q not declared", id)
	}
	delete(s.features, id)
	s.ids = slices.DeleteFunc(s.ids, func(fid string) bool { return fid == id })
	return nil
}

// HasFeature reports whether id is declared.
func (s *Schema) HasFeature(id string) bool {
	_, ok := s.features[id]
	return ok
}

// Feature returns the declaration of id.
func (s *Schema) Feature(id string) (feature.Feature, bool) {
	f, ok := s.features[id]
	return f, ok
}

// FeatureIDs returns the declared ids in declaration order.
func (s *Schema) FeatureIDs() []string {
	return slices.Clone(s.ids)
}

// NumFeatures returns the number of declared features.
func (s *Schema) NumFeatures() int {
	return len(s.ids)
}

// Copy returns a schema with copies of every declaration.
func (s *Schema) Copy() *Schema {
	c := New(s.kind)
	for _, id := range s.ids {
		c.ids = append(c.ids, id)
		c.features[id] = s.features[id].Copy()
	}
	return c
}
