package graph

import (
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
)

// Registry maps graph ids to live graphs. Entries stay until the graph is
// destroyed or explicitly unregistered.
type Registry struct {
	graphs map[graphid.GraphID]*Graph
}

func NewRegistry() *Registry {
	return &Registry{graphs: make(map[graphid.GraphID]*Graph)}
}

// Register adds g. It fails when the id is taken or g already belongs to
// another registry.
func (r *Registry) Register(g *Graph) error {
	if _, ok := r.graphs[g.id]; ok {
		return common.InvalidOperationf("graph %s already registered", g.id)
	}
	if g.registry != nil && g.registry != r {
		return common.InvalidOperationf("graph %s is registered elsewhere", g.id)
	}
	r.graphs[g.id] = g
	g.registry = r
	logger.Debug("[Graph] Registered", "graph", g.id.String())
	return nil
}

// Unregister drops the graph id. It reports whether it was registered.
func (r *Registry) Unregister(id graphid.GraphID) bool {
	g, ok := r.graphs[id]
	if !ok {
		return false
	}
	delete(r.graphs, id)
	g.registry = nil
	return true
}

// NewGraph creates and registers a graph.
func (r *Registry) NewGraph(id graphid.GraphID, opts ...Option) (*Graph, error) {
	g := New(id, opts...)
	if err := r.Register(g); err != nil {
		return nil, err
	}
	return g, nil
}

// IsRegistered reports whether id, or the graph an item id belongs to, is
// registered. For item ids the item must exist as well.
func (r *Registry) IsRegistered(id graphid.ID) bool {
	g, ok := r.graphs[id.Graph()]
	if !ok {
		return false
	}
	if itemID, isItem := id.(graphid.GraphItemID); isItem {
		return g.HasGraphItem(itemID)
	}
	return true
}

// Graph returns the graph owning id, which may be a graph or an item id.
func (r *Registry) Graph(id graphid.ID) (*Graph, bool) {
	g, ok := r.graphs[id.Graph()]
	return g, ok
}

// GraphItem routes an item lookup through its owning graph.
func (r *Registry) GraphItem(id graphid.GraphItemID) Item {
	g, ok := r.graphs[id.GraphID]
	if !ok {
		return nil
	}
	return g.GraphItem(id)
}

// IDs lists the registered graph ids in order.
func (r *Registry) IDs() []graphid.GraphID {
	ids := make([]graphid.GraphID, 0, len(r.graphs))
	for id := range r.graphs {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b graphid.GraphID) int {
		return graphid.Compare(graphid.GraphItemID{GraphID: a}, graphid.GraphItemID{GraphID: b})
	})
	return ids
}
