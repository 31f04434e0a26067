package merge

import (
	"fmt"
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// FeatureMerger populates the features of a merged node from the members of
// its component. Members are still part of the graph while it runs.
type FeatureMerger interface {
	Merge(members []*graph.Node, merged *graph.Node) error
}

// FeatureMergerFunc adapts a function to FeatureMerger.
type FeatureMergerFunc func(members []*graph.Node, merged *graph.Node) error

func (f FeatureMergerFunc) Merge(members []*graph.Node, merged *graph.Node) error {
	return f(members, merged)
}

// FirstValue copies, per feature, the first known member value.
type FirstValue struct{}

func (FirstValue) Merge(members []*graph.Node, merged *graph.Node) error {
	return mergeExplicit(members, merged, func(_ *feature.Domain, values []feature.Value) feature.Value {
		return values[0]
	})
}

// MajorityVote keeps, per feature, the most frequent known member value. Ties
// go to the value seen first.
type MajorityVote struct{}

func (MajorityVote) Merge(members []*graph.Node, merged *graph.Node) error {
	return mergeExplicit(members, merged, func(_ *feature.Domain, values []feature.Value) feature.Value {
		return majority(values)
	})
}

// Concatenate combines member values by kind: strings are joined with
// Separator, multi-categorical and multi-id values are unioned, numbers are
// averaged and categorical values go to a majority vote.
type Concatenate struct {
	Separator string
}

func (c Concatenate) Merge(members []*graph.Node, merged *graph.Node) error {
	return mergeExplicit(members, merged, c.combine)
}

func (c Concatenate) combine(domain *feature.Domain, values []feature.Value) feature.Value {
	switch domain.Kind() {
	case feature.String:
		var parts []string
		for _, v := range distinct(values) {
			parts = append(parts, v.String())
		}
		return feature.Str(strings.Join(parts, c.Separator))
	case feature.MultiCategorical:
		var categories []string
		for _, v := range values {
			categories = append(categories, v.(feature.MultiCategValue).Categories...)
		}
		return feature.MultiCateg(categories)
	case feature.MultiID:
		var ids []graphid.GraphItemID
		for _, v := range values {
			ids = append(ids, v.(feature.MultiIDValue).IDs()...)
		}
		return feature.MultiIDs(ids...)
	case feature.Numeric:
		var sum float64
		for _, v := range values {
			sum += float64(v.(feature.NumValue))
		}
		return feature.Num(sum / float64(len(values)))
	case feature.Categorical:
		return majority(values)
	default:
		return values[0]
	}
}

type combineFunc func(domain *feature.Domain, values []feature.Value) feature.Value

// mergeExplicit runs combine over the known member values of every explicit
// feature of the merged node's schema. Features without known values stay
// unset.
func mergeExplicit(members []*graph.Node, merged *graph.Node, combine combineFunc) error {
	g := merged.Graph()
	s, err := g.Schema(merged.SchemaID())
	if err != nil {
		return err
	}
	for _, fid := range s.FeatureIDs() {
		f, _ := s.Feature(fid)
		if _, explicit := f.(*feature.Explicit); !explicit {
			continue
		}
		values, err := knownValues(members, fid, f.Domain())
		if err != nil {
			return err
		}
		if len(values) == 0 {
			continue
		}
		if err := merged.SetFeatureValue(fid, combine(f.Domain(), values)); err != nil {
			return err
		}
	}
	return nil
}

// knownValues collects the non-Unknown member values of featureID, which must
// fit domain.
func knownValues(members []*graph.Node, featureID string, domain *feature.Domain) ([]feature.Value, error) {
	var values []feature.Value
	for _, m := range members {
		v, err := m.FeatureValue(featureID)
		if err != nil {
			return nil, err
		}
		if feature.IsUnknown(v) {
			continue
		}
		if err := domain.Validate(v); err != nil {
			return nil, fmt.Errorf("member %s feature %q: %w", m.ID(), featureID, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func majority(values []feature.Value) feature.Value {
	unique := distinct(values)
	counts := make([]int, len(unique))
	for _, v := range values {
		for i, u := range unique {
			if u.Equal(v) {
				counts[i]++
				break
			}
		}
	}
	best := 0
	for i := 1; i < len(unique); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return unique[best]
}

// distinct keeps the first occurrence of every value.
func distinct(values []feature.Value) []feature.Value {
	var out []feature.Value
	for _, v := range values {
		seen := false
		for _, u := range out {
			if u.Equal(v) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out
}
