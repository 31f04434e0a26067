package merge

import (
	"github.com/linqs/GAIA-sub004/internal/util"
)

var (
	featureMergers = util.NewRegistry[FeatureMerger]("feature merger")
	edgeMergers    = util.NewRegistry[IncidentEdgeMerger]("edge merger")
)

// RegisterFeatureMerger makes a feature merger available under tag.
func RegisterFeatureMerger(tag string, factory util.Factory[FeatureMerger]) {
	featureMergers.Register(tag, factory)
}

// RegisterEdgeMerger makes an incident edge merger available under tag.
func RegisterEdgeMerger(tag string, factory util.Factory[IncidentEdgeMerger]) {
	edgeMergers.Register(tag, factory)
}

// NewFeatureMerger builds the feature merger registered under tag: "first",
// "majority" or "concat" (parameter "separator", default " ").
func NewFeatureMerger(tag string, params util.Params) (FeatureMerger, error) {
	return featureMergers.New(tag, params)
}

// NewEdgeMerger builds the edge merger registered under tag. "union" reads
// the boolean parameters "selfloops" and "duplicates".
func NewEdgeMerger(tag string, params util.Params) (IncidentEdgeMerger, error) {
	return edgeMergers.New(tag, params)
}

// FeatureMergerTags lists the registered feature merger tags.
func FeatureMergerTags() []string { return featureMergers.Tags() }

// EdgeMergerTags lists the registered edge merger tags.
func EdgeMergerTags() []string { return edgeMergers.Tags() }

func init() {
	RegisterFeatureMerger("first", func(util.Params) (FeatureMerger, error) {
		return FirstValue{}, nil
	})
	RegisterFeatureMerger("majority", func(util.Params) (FeatureMerger, error) {
		return MajorityVote{}, nil
	})
	RegisterFeatureMerger("concat", func(p util.Params) (FeatureMerger, error) {
		return Concatenate{Separator: p.String("separator", " ")}, nil
	})

	RegisterEdgeMerger("union", func(p util.Params) (IncidentEdgeMerger, error) {
		selfLoops, err := p.Bool("selfloops", false)
		if err != nil {
			return nil, err
		}
		duplicates, err := p.Bool("duplicates", false)
		if err != nil {
			return nil, err
		}
		return UnionEdges{AllowSelfLoops: selfLoops, AllowDuplicates: duplicates}, nil
	})
}
