package graph

import (
	"iter"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// HasGraphItem reports whether id names a live item of g.
func (g *Graph) HasGraphItem(id graphid.GraphItemID) bool {
	_, ok := g.byID[id]
	return ok
}

// GraphItem returns the node or edge named id, or nil when absent.
func (g *Graph) GraphItem(id graphid.GraphItemID) Item {
	h, ok := g.byID[id]
	if !ok {
		return nil
	}
	if n, ok := g.nodes[h]; ok {
		return n
	}
	return g.edges[h]
}

// Node returns the node named id. It returns nil, nil when no item has that
// id and an error when the id belongs to an edge.
func (g *Graph) Node(id graphid.GraphItemID) (*Node, error) {
	h, ok := g.byID[id]
	if !ok {
		return nil, nil
	}
	n, ok := g.nodes[h]
	if !ok {
		return nil, common.InvalidStatef("item %s is an edge, not a node", id)
	}
	return n, nil
}

// Edge returns the edge named id. It returns nil, nil when no item has that
// id and an error when the id belongs to a node.
func (g *Graph) Edge(id graphid.GraphItemID) (*Edge, error) {
	h, ok := g.byID[id]
	if !ok {
		return nil, nil
	}
	e, ok := g.edges[h]
	if !ok {
		return nil, common.InvalidStatef("item %s is a node, not an edge", id)
	}
	return e, nil
}

// Nodes iterates over the nodes of schemaID, or all nodes when schemaID is
// empty, in insertion order.
func (g *Graph) Nodes(schemaID string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, h := range g.snapshot(schemaID) {
			n, ok := g.nodes[h]
			if !ok {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Edges iterates over the edges of schemaID, or all edges when schemaID is
// empty, in insertion order.
func (g *Graph) Edges(schemaID string) iter.Seq[*Edge] {
	return func(yield func(*Edge) bool) {
		for _, h := range g.snapshot(schemaID) {
			e, ok := g.edges[h]
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// GraphItems iterates over nodes and edges of schemaID, or every item when
// schemaID is empty, in insertion order.
func (g *Graph) GraphItems(schemaID string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, h := range g.snapshot(schemaID) {
			var it Item
			if n, ok := g.nodes[h]; ok {
				it = n
			} else if e, ok := g.edges[h]; ok {
				it = e
			} else {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// NodeList collects Nodes(schemaID).
func (g *Graph) NodeList(schemaID string) []*Node {
	var out []*Node
	for n := range g.Nodes(schemaID) {
		out = append(out, n)
	}
	return out
}

// EdgeList collects Edges(schemaID).
func (g *Graph) EdgeList(schemaID string) []*Edge {
	var out []*Edge
	for e := range g.Edges(schemaID) {
		out = append(out, e)
	}
	return out
}

func (g *Graph) snapshot(schemaID string) []Handle {
	if schemaID == "" {
		return g.sortedHandles(g.allHandles())
	}
	return g.sortedHandles(g.bySchema[schemaID])
}
