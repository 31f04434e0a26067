// Package graph implements an in-memory property graph whose nodes and edges
// carry schema-declared features.
//
// Items live in an arena addressed by integer handles: edges store the handles
// of their endpoint nodes and nodes store the handles of their incident edges,
// both resolved through the owning Graph.
//
// A Graph is not safe for concurrent use. Mutating a graph while iterating
// over it is allowed but the iteration works on the snapshot taken when it
// started, skipping items removed in the meantime.
package graph

import (
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// Handle addresses an item inside its graph. Handles increase with insertion
// order and are never reused.
type Handle uint64

// Graph owns the nodes, edges and schemas of one graph identity.
type Graph struct {
	id      graphid.GraphID
	schemas *schema.Registry

	nextHandle Handle
	nodes      map[Handle]*Node
	edges      map[Handle]*Edge
	byID       map[graphid.GraphItemID]Handle
	bySchema   map[string]map[Handle]struct{}

	listeners    []listenerEntry
	nextListener ListenerID

	registry *Registry
}

// Option configures a new Graph.
type Option func(*Graph)

// WithSchemaRegistry makes the graph use an existing schema registry.
func WithSchemaRegistry(r *schema.Registry) Option {
	return func(g *Graph) {
		g.schemas = r
	}
}

// New creates an empty, unregistered graph.
func New(id graphid.GraphID, opts ...Option) *Graph {
	g := &Graph{
		id:       id,
		schemas:  schema.NewRegistry(),
		nodes:    make(map[Handle]*Node),
		edges:    make(map[Handle]*Edge),
		byID:     make(map[graphid.GraphItemID]Handle),
		bySchema: make(map[string]map[Handle]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph identifier.
func (g *Graph) ID() graphid.GraphID { return g.id }

// Schemas exposes the schema registry of the graph.
func (g *Graph) Schemas() *schema.Registry { return g.schemas }

// AddSchema declares a schema.
func (g *Graph) AddSchema(id string, s *schema.Schema) error {
	return g.schemas.Add(id, s)
}

// Schema returns the schema registered under id.
func (g *Graph) Schema(id string) (*schema.Schema, error) {
	return g.schemas.Get(id)
}

// HasSchema reports whether id is declared.
func (g *Graph) HasSchema(id string) bool {
	return g.schemas.Has(id)
}

// UpdateSchema replaces the schema of id. Stored values of features the new
// schema no longer declares are dropped.
func (g *Graph) UpdateSchema(id string, s *schema.Schema) error {
	if err := g.schemas.Update(id, s); err != nil {
		return err
	}
	for h := range g.bySchema[id] {
		it := g.itemByHandle(h)
		for fid := range it.values {
			if !s.HasFeature(fid) {
				delete(it.values, fid)
			}
		}
	}
	return nil
}

// RemoveSchema drops the schema of id. It fails while items of that schema
// exist; callers remove them first with RemoveAllGraphItems.
func (g *Graph) RemoveSchema(id string) error {
	if !g.schemas.Has(id) {
		return common.InvalidOperationf("schema %q not defined", id)
	}
	if n := len(g.bySchema[id]); n > 0 {
		return common.InvalidOperationf("schema %q still has %d items", id, n)
	}
	g.schemas.Remove(id)
	delete(g.bySchema, id)
	return nil
}

// AddFeature declares a feature on schema schemaID. Existing items read
// Unknown, or the closed default, until a value is set.
func (g *Graph) AddFeature(schemaID, featureID string, f feature.Feature) error {
	s, err := g.schemas.Get(schemaID)
	if err != nil {
		return err
	}
	return s.AddFeature(featureID, f)
}

// RemoveFeature drops a feature declaration and every stored value of it.
func (g *Graph) RemoveFeature(schemaID, featureID string) error {
	s, err := g.schemas.Get(schemaID)
	if err != nil {
		return err
	}
	if err := s.RemoveFeature(featureID); err != nil {
		return err
	}
	for h := range g.bySchema[schemaID] {
		delete(g.itemByHandle(h).values, featureID)
	}
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NumGraphItems returns the number of items of schemaID, or of all items when
// schemaID is empty.
func (g *Graph) NumGraphItems(schemaID string) int {
	if schemaID == "" {
		return len(g.nodes) + len(g.edges)
	}
	return len(g.bySchema[schemaID])
}

// Destroy removes every item, drops the listeners and unregisters the graph
// from its registry.
func (g *Graph) Destroy() error {
	var firstErr error
	for _, h := range g.sortedHandles(g.allHandles()) {
		if n, ok := g.nodes[h]; ok {
			if err := g.removeNode(n); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, h := range g.sortedHandles(g.allHandles()) {
		if e, ok := g.edges[h]; ok {
			if err := g.removeEdge(e); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	g.listeners = nil
	if g.registry != nil {
		g.registry.Unregister(g.id)
	}
	logger.Debug("[Graph] Destroyed", "graph", g.id.String())
	return firstErr
}

func (g *Graph) itemByHandle(h Handle) *item {
	if n, ok := g.nodes[h]; ok {
		return &n.item
	}
	if e, ok := g.edges[h]; ok {
		return &e.item
	}
	return nil
}
