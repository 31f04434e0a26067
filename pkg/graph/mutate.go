package graph

import (
	"maps"
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// NewItemID returns an unused item id of schemaID in g.
func (g *Graph) NewItemID(schemaID string) (graphid.GraphItemID, error) {
	for {
		objectID, err := graphid.NewObjectID()
		if err != nil {
			return graphid.GraphItemID{}, err
		}
		id := graphid.GraphItemID{GraphID: g.id, SchemaID: schemaID, ObjectID: objectID}
		if _, taken := g.byID[id]; !taken {
			return id, nil
		}
	}
}

// AddNode creates a node. A non-nil node together with an error means the
// node was added but a listener failed.
func (g *Graph) AddNode(id graphid.GraphItemID) (*Node, error) {
	if err := g.checkNewItem(id, schema.Node); err != nil {
		return nil, err
	}
	n := &Node{
		item:  g.newItem(id),
		edges: make(map[Handle]struct{}),
	}
	g.nodes[n.handle] = n
	g.index(&n.item)

	return n, g.notify(Event{Kind: NodeAdded, Graph: g, Item: n})
}

// AddDirectedEdge creates a directed edge from sources to targets. Both sides
// need at least one node.
func (g *Graph) AddDirectedEdge(id graphid.GraphItemID, sources, targets []graphid.GraphItemID) (*Edge, error) {
	if len(sources) == 0 || len(targets) == 0 {
		return nil, common.InvalidStatef("directed edge %s needs at least one source and one target", id)
	}
	if err := g.checkNewItem(id, schema.DirectedEdge); err != nil {
		return nil, err
	}
	src, err := g.endpointHandles(id, sources)
	if err != nil {
		return nil, err
	}
	dst, err := g.endpointHandles(id, targets)
	if err != nil {
		return nil, err
	}
	return g.insertEdge(&Edge{
		item:    g.newItem(id),
		kind:    schema.DirectedEdge,
		sources: src,
		targets: dst,
	})
}

// AddUndirectedEdge creates an undirected edge over nodes.
func (g *Graph) AddUndirectedEdge(id graphid.GraphItemID, nodes []graphid.GraphItemID) (*Edge, error) {
	if len(nodes) == 0 {
		return nil, common.InvalidStatef("undirected edge %s needs at least one node", id)
	}
	if err := g.checkNewItem(id, schema.UndirectedEdge); err != nil {
		return nil, err
	}
	hs, err := g.endpointHandles(id, nodes)
	if err != nil {
		return nil, err
	}
	return g.insertEdge(&Edge{
		item:  g.newItem(id),
		kind:  schema.UndirectedEdge,
		nodes: hs,
	})
}

// RemoveNode removes the node and, before it, every incident edge.
func (g *Graph) RemoveNode(id graphid.GraphItemID) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	if n == nil {
		return common.InvalidStatef("node %s not in graph %s", id, g.id)
	}
	return g.removeNode(n)
}

// RemoveEdge removes the edge.
func (g *Graph) RemoveEdge(id graphid.GraphItemID) error {
	e, err := g.Edge(id)
	if err != nil {
		return err
	}
	if e == nil {
		return common.InvalidStatef("edge %s not in graph %s", id, g.id)
	}
	return g.removeEdge(e)
}

// RemoveAllGraphItems removes every item of schemaID. Removal continues past
// listener errors; the first one is returned.
func (g *Graph) RemoveAllGraphItems(schemaID string) error {
	if !g.schemas.Has(schemaID) {
		return common.InvalidOperationf("schema %q not defined", schemaID)
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, h := range g.sortedHandles(g.bySchema[schemaID]) {
		if n, ok := g.nodes[h]; ok {
			keep(g.removeNode(n))
		} else if e, ok := g.edges[h]; ok {
			keep(g.removeEdge(e))
		}
	}
	logger.Debug("[Graph] Removed all items", "graph", g.id.String(), "schema", schemaID)
	return firstErr
}

func (g *Graph) checkNewItem(id graphid.GraphItemID, kind schema.ItemKind) error {
	if id.GraphID != g.id {
		return common.InvalidStatef("item %s belongs to graph %s, not %s", id, id.GraphID, g.id)
	}
	if _, exists := g.byID[id]; exists {
		return common.InvalidStatef("item %s already exists", id)
	}
	s, err := g.schemas.Get(id.SchemaID)
	if err != nil {
		return common.InvalidStatef("item %s: schema %q not defined", id, id.SchemaID)
	}
	if s.Kind() != kind {
		return common.InvalidStatef("item %s: schema %q is for %s items, not %s", id, id.SchemaID, s.Kind(), kind)
	}
	return nil
}

func (g *Graph) endpointHandles(edgeID graphid.GraphItemID, ids []graphid.GraphItemID) ([]Handle, error) {
	hs := make([]Handle, 0, len(ids))
	for _, id := range ids {
		h, ok := g.byID[id]
		if !ok {
			return nil, common.InvalidStatef("edge %s: node %s not in graph %s", edgeID, id, g.id)
		}
		if _, isNode := g.nodes[h]; !isNode {
			return nil, common.InvalidStatef("edge %s: %s is not a node", edgeID, id)
		}
		hs = append(hs, h)
	}
	return hs, nil
}

func (g *Graph) newItem(id graphid.GraphItemID) item {
	g.nextHandle++
	return item{handle: g.nextHandle, id: id, graph: g, live: true}
}

func (g *Graph) index(it *item) {
	g.byID[it.id] = it.handle
	set, ok := g.bySchema[it.id.SchemaID]
	if !ok {
		set = make(map[Handle]struct{})
		g.bySchema[it.id.SchemaID] = set
	}
	set[it.handle] = struct{}{}
}

func (g *Graph) unindex(it *item) {
	delete(g.byID, it.id)
	delete(g.bySchema[it.id.SchemaID], it.handle)
	it.live = false
	g.invalidateDerived(it)
}

func (g *Graph) insertEdge(e *Edge) (*Edge, error) {
	g.edges[e.handle] = e
	g.index(&e.item)
	for _, h := range e.endpoints() {
		g.nodes[h].edges[e.handle] = struct{}{}
	}
	return e, g.notify(Event{Kind: EdgeAdded, Graph: g, Item: e})
}

// removeNode cascades over incident edges first. Listener errors do not stop
// the cascade.
func (g *Graph) removeNode(n *Node) error {
	var firstErr error
	for _, e := range n.IncidentEdges() {
		if err := g.removeEdge(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	delete(g.nodes, n.handle)
	g.unindex(&n.item)
	if err := g.notify(Event{Kind: NodeRemoved, Graph: g, Item: n}); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (g *Graph) removeEdge(e *Edge) error {
	if !e.live {
		return nil
	}
	for _, h := range e.endpoints() {
		if n, ok := g.nodes[h]; ok {
			delete(n.edges, e.handle)
		}
	}
	delete(g.edges, e.handle)
	g.unindex(&e.item)
	return g.notify(Event{Kind: EdgeRemoved, Graph: g, Item: e})
}

// invalidateDerived drops cached derived values of a removed item so a later
// item reusing the id starts fresh.
func (g *Graph) invalidateDerived(it *item) {
	s, err := g.schemas.Get(it.id.SchemaID)
	if err != nil {
		return
	}
	for _, fid := range s.FeatureIDs() {
		f, _ := s.Feature(fid)
		if d, ok := f.(*feature.Derived); ok && d.IsCached(it.id) {
			_ = d.ResetCacheFor(it.id)
		}
	}
}

func (g *Graph) allHandles() map[Handle]struct{} {
	out := make(map[Handle]struct{}, len(g.nodes)+len(g.edges))
	for h := range g.nodes {
		out[h] = struct{}{}
	}
	for h := range g.edges {
		out[h] = struct{}{}
	}
	return out
}

func (g *Graph) sortedHandles(set map[Handle]struct{}) []Handle {
	return slices.Sorted(maps.Keys(set))
}
