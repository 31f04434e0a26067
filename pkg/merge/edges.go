package merge

import (
	"fmt"
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// IncidentEdgeMerger moves the edges of component members onto the merged
// node.
type IncidentEdgeMerger interface {
	Merge(members []*graph.Node, merged *graph.Node) error
}

// UnionEdges rewrites every edge touching a member so that members are
// replaced by the merged node. Rewritten edges keep their id and explicit
// values.
//
// An edge whose rewritten endpoints are all the merged node is a self-loop
// and is dropped unless AllowSelfLoops is set. An edge equal to one already
// on the merged node, meaning the same schema and endpoint set (source and
// target sets for directed edges), is dropped unless AllowDuplicates is set.
type UnionEdges struct {
	AllowSelfLoops  bool
	AllowDuplicates bool
}

func (u UnionEdges) Merge(members []*graph.Node, merged *graph.Node) error {
	g := merged.Graph()
	memberIDs := make(map[graphid.GraphItemID]struct{}, len(members))
	for _, m := range members {
		memberIDs[m.ID()] = struct{}{}
	}
	rewrite := func(nodes []*graph.Node) []graphid.GraphItemID {
		out := make([]graphid.GraphItemID, 0, len(nodes))
		for _, n := range nodes {
			id := n.ID()
			if _, ok := memberIDs[id]; ok {
				id = merged.ID()
			}
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
		return out
	}

	processed := make(map[graphid.GraphItemID]struct{})
	var moved, dropped int
	for _, m := range members {
		for _, e := range m.IncidentEdges() {
			if _, done := processed[e.ID()]; done || !e.Live() {
				continue
			}
			processed[e.ID()] = struct{}{}

			var candidate endpoints
			switch e.Kind() {
			case schema.DirectedEdge:
				candidate = endpoints{schemaID: e.SchemaID(), directed: true, sources: rewrite(e.Sources()), targets: rewrite(e.Targets())}
			case schema.UndirectedEdge:
				candidate = endpoints{schemaID: e.SchemaID(), sources: rewrite(e.Nodes())}
			default:
				return common.UnsupportedTypef("edge %s of kind %s cannot be merged", e.ID(), e.Kind())
			}

			values, err := g.StoredValues(e)
			if err != nil {
				return err
			}
			if err := g.RemoveEdge(e.ID()); err != nil {
				return fmt.Errorf("failed to detach edge %s: %w", e.ID(), err)
			}

			if !u.AllowSelfLoops && candidate.isSelfLoop(merged.ID()) {
				dropped++
				continue
			}
			if !u.AllowDuplicates && hasDuplicate(merged, candidate) {
				dropped++
				continue
			}

			var rewired *graph.Edge
			if candidate.directed {
				rewired, err = g.AddDirectedEdge(e.ID(), candidate.sources, candidate.targets)
			} else {
				rewired, err = g.AddUndirectedEdge(e.ID(), candidate.sources)
			}
			if err != nil {
				return fmt.Errorf("failed to rewire edge %s: %w", e.ID(), err)
			}
			for fid, v := range values {
				if err := rewired.SetFeatureValue(fid, v); err != nil {
					return err
				}
			}
			moved++
		}
	}
	logger.Debug("[Merge] Edges rewired", "node", merged.ID().String(), "moved", moved, "dropped", dropped)
	return nil
}

// endpoints describes a rewritten edge. Undirected edges keep their nodes in
// sources.
type endpoints struct {
	schemaID string
	directed bool
	sources  []graphid.GraphItemID
	targets  []graphid.GraphItemID
}

func (c endpoints) isSelfLoop(id graphid.GraphItemID) bool {
	all := append(slices.Clone(c.sources), c.targets...)
	for _, n := range all {
		if n != id {
			return false
		}
	}
	return true
}

func (c endpoints) equal(e *graph.Edge) bool {
	if e.SchemaID() != c.schemaID || e.IsDirected() != c.directed {
		return false
	}
	if c.directed {
		return sameSet(c.sources, e.Sources()) && sameSet(c.targets, e.Targets())
	}
	return sameSet(c.sources, e.Nodes())
}

func hasDuplicate(merged *graph.Node, c endpoints) bool {
	for _, e := range merged.IncidentEdgesOf(c.schemaID) {
		if c.equal(e) {
			return true
		}
	}
	return false
}

func sameSet(ids []graphid.GraphItemID, nodes []*graph.Node) bool {
	other := make([]graphid.GraphItemID, 0, len(nodes))
	for _, n := range nodes {
		if !slices.Contains(other, n.ID()) {
			other = append(other, n.ID())
		}
	}
	if len(ids) != len(other) {
		return false
	}
	for _, id := range ids {
		if !slices.Contains(other, id) {
			return false
		}
	}
	return true
}
