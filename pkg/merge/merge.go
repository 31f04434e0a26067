// Package merge collapses entity-resolution components of a graph into single
// reference nodes.
//
// Nodes joined by "same-as" edges form components. Each component is replaced
// by one new node whose features and incident edges are produced by pluggable
// FeatureMerger and IncidentEdgeMerger policies.
package merge

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// Options configures MergeUsingERLinks.
type Options struct {
	// RefSchemaID is the node schema of the merged nodes.
	RefSchemaID string `validate:"required"`
	// EdgeSchemaID is the schema of the same-as edges.
	EdgeSchemaID string `validate:"required"`
	// ProvenanceFeatureID, when set, receives the ids of the merged originals.
	ProvenanceFeatureID string
	FeatureMerger       FeatureMerger       `validate:"required"`
	EdgeMerger          IncidentEdgeMerger `validate:"required"`
	// RemoveSchema drops the same-as schema once its edges are gone.
	RemoveSchema bool
}

// Result summarizes a merge pass.
type Result struct {
	// Components lists the member ids of every merged component.
	Components [][]graphid.GraphItemID
	// MergedNodes holds the new node of each component, in the same order.
	MergedNodes []graphid.GraphItemID
	// RemovedLinks counts the same-as edges removed.
	RemovedLinks int
}

var validate = validator.New()

// MergeUsingERLinks replaces every component induced by the same-as edges of
// opts.EdgeSchemaID with one node of opts.RefSchemaID. Sameness is taken to be
// transitive and is not re-verified.
//
// A failure aborts the pass and leaves the graph as it was at that point.
func MergeUsingERLinks(g *graph.Graph, opts Options) (*Result, error) {
	if err := checkOptions(g, opts); err != nil {
		return nil, err
	}

	components := connectedComponents(g, opts.EdgeSchemaID)
	logger.Info("[Merge] Merging entity components", "graph", g.ID().String(), "components", len(components))

	provenance := make([]feature.MultiIDValue, len(components))
	if opts.ProvenanceFeatureID != "" {
		for i, members := range components {
			p, err := collectProvenance(g, members, opts.ProvenanceFeatureID)
			if err != nil {
				return nil, err
			}
			provenance[i] = p
		}
	}

	result := &Result{RemovedLinks: g.NumGraphItems(opts.EdgeSchemaID)}
	if err := g.RemoveAllGraphItems(opts.EdgeSchemaID); err != nil {
		return nil, fmt.Errorf("failed to remove same-as edges: %w", err)
	}
	if opts.RemoveSchema {
		if err := g.RemoveSchema(opts.EdgeSchemaID); err != nil {
			return nil, fmt.Errorf("failed to remove same-as schema: %w", err)
		}
	}

	for i, memberIDs := range components {
		mergedID, err := mergeComponent(g, opts, memberIDs)
		if err != nil {
			return result, err
		}
		if opts.ProvenanceFeatureID != "" {
			merged, err := g.Node(mergedID)
			if err != nil {
				return result, err
			}
			if err := merged.SetFeatureValue(opts.ProvenanceFeatureID, provenance[i]); err != nil {
				return result, fmt.Errorf("failed to set provenance of %s: %w", mergedID, err)
			}
		}
		result.Components = append(result.Components, memberIDs)
		result.MergedNodes = append(result.MergedNodes, mergedID)
	}

	logger.Info("[Merge] Merge completed", "graph", g.ID().String(), "merged", len(result.MergedNodes), "removed_links", result.RemovedLinks)
	return result, nil
}

func checkOptions(g *graph.Graph, opts Options) error {
	if g == nil {
		return common.Configurationf("merge needs a graph")
	}
	if err := validate.Struct(opts); err != nil {
		return common.Configurationf("invalid merge options: %v", err)
	}

	ref, err := g.Schema(opts.RefSchemaID)
	if err != nil {
		return common.Configurationf("reference schema %q not defined", opts.RefSchemaID)
	}
	if ref.Kind() != schema.Node {
		return common.Configurationf("reference schema %q is a %s schema, not a node schema", opts.RefSchemaID, ref.Kind())
	}
	links, err := g.Schema(opts.EdgeSchemaID)
	if err != nil {
		return common.Configurationf("same-as schema %q not defined", opts.EdgeSchemaID)
	}
	if !links.Kind().IsEdge() {
		return common.Configurationf("same-as schema %q is a %s schema, not an edge schema", opts.EdgeSchemaID, links.Kind())
	}

	if opts.ProvenanceFeatureID == "" {
		return nil
	}
	f, ok := ref.Feature(opts.ProvenanceFeatureID)
	if !ok {
		return ref.AddFeature(opts.ProvenanceFeatureID, feature.NewExplicitMultiID())
	}
	if _, explicit := f.(*feature.Explicit); !explicit || f.Domain().Kind() != feature.MultiID {
		return common.Configurationf("provenance feature %q must be an explicit multi-id feature", opts.ProvenanceFeatureID)
	}
	return nil
}

// connectedComponents groups the nodes touched by same-as edges with
// union-find. Components and their members keep the order in which nodes are
// first seen while walking the edges.
func connectedComponents(g *graph.Graph, edgeSchemaID string) [][]graphid.GraphItemID {
	parent := make(map[graphid.GraphItemID]graphid.GraphItemID)
	var order []graphid.GraphItemID

	var find func(x graphid.GraphItemID) graphid.GraphItemID
	find = func(x graphid.GraphItemID) graphid.GraphItemID {
		if _, ok := parent[x]; !ok {
			parent[x] = x
			order = append(order, x)
		}
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	union := func(x, y graphid.GraphItemID) {
		px, py := find(x), find(y)
		if px != py {
			parent[py] = px
		}
	}

	for e := range g.Edges(edgeSchemaID) {
		nodes := e.Nodes()
		first := nodes[0].ID()
		find(first)
		for _, n := range nodes[1:] {
			union(first, n.ID())
		}
	}

	byRoot := make(map[graphid.GraphItemID]int)
	var components [][]graphid.GraphItemID
	for _, id := range order {
		root := find(id)
		i, ok := byRoot[root]
		if !ok {
			i = len(components)
			byRoot[root] = i
			components = append(components, nil)
		}
		components[i] = append(components[i], id)
	}
	return components
}

// collectProvenance unions the member ids, substituting the provenance of
// members that are themselves merge results.
func collectProvenance(g *graph.Graph, members []graphid.GraphItemID, featureID string) (feature.MultiIDValue, error) {
	var ids []graphid.GraphItemID
	for _, id := range members {
		n, err := g.Node(id)
		if err != nil {
			return feature.MultiIDValue{}, err
		}
		v, err := n.FeatureValue(featureID)
		if err != nil {
			return feature.MultiIDValue{}, err
		}
		if prior, ok := v.(feature.MultiIDValue); ok && prior.Len() > 0 {
			ids = append(ids, prior.IDs()...)
			continue
		}
		ids = append(ids, id)
	}
	return feature.MultiIDs(ids...), nil
}

func mergeComponent(g *graph.Graph, opts Options, memberIDs []graphid.GraphItemID) (graphid.GraphItemID, error) {
	members := make([]*graph.Node, 0, len(memberIDs))
	for _, id := range memberIDs {
		n, err := g.Node(id)
		if err != nil {
			return graphid.GraphItemID{}, err
		}
		if n == nil {
			return graphid.GraphItemID{}, common.InvalidStatef("component member %s disappeared", id)
		}
		members = append(members, n)
	}

	mergedID, err := g.NewItemID(opts.RefSchemaID)
	if err != nil {
		return graphid.GraphItemID{}, err
	}
	merged, err := g.AddNode(mergedID)
	if err != nil {
		return graphid.GraphItemID{}, fmt.Errorf("failed to create merged node: %w", err)
	}

	if err := opts.FeatureMerger.Merge(members, merged); err != nil {
		return mergedID, fmt.Errorf("failed to merge features into %s: %w", mergedID, err)
	}
	if err := opts.EdgeMerger.Merge(members, merged); err != nil {
		return mergedID, fmt.Errorf("failed to merge edges into %s: %w", mergedID, err)
	}

	for _, id := range memberIDs {
		if err := g.RemoveNode(id); err != nil {
			return mergedID, fmt.Errorf("failed to remove merged member %s: %w", id, err)
		}
	}
	logger.Debug("[Merge] Component merged", "node", mergedID.String(), "members", len(memberIDs))
	return mergedID, nil
}
