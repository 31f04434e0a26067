package graph

import (
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// Item is a node or an edge.
type Item interface {
	ID() graphid.GraphItemID
	SchemaID() string
	Kind() schema.ItemKind
	Graph() *Graph
	// Live reports whether the item is still part of its graph.
	Live() bool
	FeatureValue(featureID string) (feature.Value, error)
	SetFeatureValue(featureID string, v feature.Value) error
	base() *item
}

type item struct {
	handle Handle
	id     graphid.GraphItemID
	graph  *Graph
	live   bool
	values map[string]feature.Value
}

func (i *item) ID() graphid.GraphItemID { return i.id }

func (i *item) SchemaID() string { return i.id.SchemaID }

func (i *item) Graph() *Graph { return i.graph }

func (i *item) Live() bool { return i.live }

func (i *item) base() *item { return i }

// Node is a graph vertex.
type Node struct {
	item
	edges map[Handle]struct{}
}

func (n *Node) Kind() schema.ItemKind { return schema.Node }

func (n *Node) FeatureValue(featureID string) (feature.Value, error) {
	return n.graph.FeatureValue(n, featureID)
}

func (n *Node) SetFeatureValue(featureID string, v feature.Value) error {
	return n.graph.SetFeatureValue(n, featureID, v)
}

// IncidentEdges returns the edges touching n in insertion order.
func (n *Node) IncidentEdges() []*Edge {
	out := make([]*Edge, 0, len(n.edges))
	for _, h := range n.graph.sortedHandles(n.edges) {
		out = append(out, n.graph.edges[h])
	}
	return out
}

// IncidentEdgesOf returns the edges of schemaID touching n.
func (n *Node) IncidentEdgesOf(schemaID string) []*Edge {
	var out []*Edge
	for _, e := range n.IncidentEdges() {
		if e.SchemaID() == schemaID {
			out = append(out, e)
		}
	}
	return out
}

// AdjacentNodes returns the distinct nodes sharing an edge with n, excluding
// n itself.
func (n *Node) AdjacentNodes() []*Node {
	seen := map[Handle]struct{}{n.handle: {}}
	var out []*Node
	for _, e := range n.IncidentEdges() {
		for _, h := range e.endpoints() {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, n.graph.nodes[h])
		}
	}
	return out
}

// Degree returns the number of incident edges.
func (n *Node) Degree() int { return len(n.edges) }

// Edge connects one or more nodes. Directed edges partition their nodes into
// sources and targets; undirected edges treat all nodes alike.
type Edge struct {
	item
	kind    schema.ItemKind
	sources []Handle
	targets []Handle
	nodes   []Handle
}

func (e *Edge) Kind() schema.ItemKind { return e.kind }

func (e *Edge) FeatureValue(featureID string) (feature.Value, error) {
	return e.graph.FeatureValue(e, featureID)
}

func (e *Edge) SetFeatureValue(featureID string, v feature.Value) error {
	return e.graph.SetFeatureValue(e, featureID, v)
}

// IsDirected reports whether e is a directed edge.
func (e *Edge) IsDirected() bool { return e.kind == schema.DirectedEdge }

// Nodes returns every endpoint: sources then targets for directed edges.
func (e *Edge) Nodes() []*Node { return e.resolve(e.endpoints()) }

// Sources returns the source nodes of a directed edge.
func (e *Edge) Sources() []*Node { return e.resolve(e.sources) }

// Targets returns the target nodes of a directed edge.
func (e *Edge) Targets() []*Node { return e.resolve(e.targets) }

// NumNodes returns the number of distinct endpoints.
func (e *Edge) NumNodes() int { return len(distinct(e.endpoints())) }

// IsSelfLoop reports whether every endpoint is the same node.
func (e *Edge) IsSelfLoop() bool { return e.NumNodes() == 1 }

// IsIncident reports whether n is an endpoint of e.
func (e *Edge) IsIncident(n *Node) bool {
	return n != nil && n.graph == e.graph && slices.Contains(e.endpoints(), n.handle)
}

func (e *Edge) endpoints() []Handle {
	if e.kind == schema.DirectedEdge {
		return append(slices.Clone(e.sources), e.targets...)
	}
	return e.nodes
}

func (e *Edge) resolve(handles []Handle) []*Node {
	out := make([]*Node, len(handles))
	for i, h := range handles {
		out[i] = e.graph.nodes[h]
	}
	return out
}

func distinct(handles []Handle) []Handle {
	out := slices.Clone(handles)
	slices.Sort(out)
	return slices.Compact(out)
}
