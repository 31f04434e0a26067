package graph

import (
	"maps"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
)

// FeatureValue reads featureID of it. Features the item's schema does not
// declare read as Unknown. Explicit features fall back to their closed
// default, then Unknown; derived features are computed through their cache.
func (g *Graph) FeatureValue(it Item, featureID string) (feature.Value, error) {
	b, err := g.owned(it)
	if err != nil {
		return nil, err
	}
	s, err := g.schemas.Get(b.id.SchemaID)
	if err != nil {
		return nil, err
	}
	f, ok := s.Feature(featureID)
	if !ok {
		return feature.UnknownValue, nil
	}
	switch f := f.(type) {
	case *feature.Explicit:
		if v, ok := b.values[featureID]; ok {
			return v, nil
		}
		if v, ok := f.ClosedDefault(); ok {
			return v, nil
		}
		return feature.UnknownValue, nil
	case *feature.Derived:
		return f.Value(it)
	default:
		return nil, common.UnsupportedTypef("feature %q has type %T", featureID, f)
	}
}

// SetFeatureValue stores v for featureID on it. Setting Unknown clears the
// stored value. Derived and undeclared features cannot be set.
func (g *Graph) SetFeatureValue(it Item, featureID string, v feature.Value) error {
	b, err := g.owned(it)
	if err != nil {
		return err
	}
	s, err := g.schemas.Get(b.id.SchemaID)
	if err != nil {
		return err
	}
	f, ok := s.Feature(featureID)
	if !ok {
		return common.InvalidOperationf("schema %q has no feature %q", b.id.SchemaID, featureID)
	}
	if _, derived := f.(*feature.Derived); derived {
		return common.InvalidOperationf("feature %q is derived and cannot be set", featureID)
	}
	if err := f.Domain().Validate(v); err != nil {
		return err
	}

	old, err := g.FeatureValue(it, featureID)
	if err != nil {
		return err
	}
	if feature.IsUnknown(v) {
		delete(b.values, featureID)
		v = feature.UnknownValue
	} else {
		if b.values == nil {
			b.values = make(map[string]feature.Value)
		}
		b.values[featureID] = v
	}
	return g.notify(Event{Kind: FeatureSet, Graph: g, Item: it, FeatureID: featureID, Old: old, New: v})
}

// RemoveFeatureValue clears the stored value of featureID on it.
func (g *Graph) RemoveFeatureValue(it Item, featureID string) error {
	return g.SetFeatureValue(it, featureID, feature.UnknownValue)
}

// FeatureValues reads every feature declared on the schema of it.
func (g *Graph) FeatureValues(it Item) (map[string]feature.Value, error) {
	b, err := g.owned(it)
	if err != nil {
		return nil, err
	}
	s, err := g.schemas.Get(b.id.SchemaID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]feature.Value, s.NumFeatures())
	for _, fid := range s.FeatureIDs() {
		v, err := g.FeatureValue(it, fid)
		if err != nil {
			return nil, err
		}
		out[fid] = v
	}
	return out, nil
}

// StoredValues returns a copy of the explicitly stored values of it.
func (g *Graph) StoredValues(it Item) (map[string]feature.Value, error) {
	b, err := g.owned(it)
	if err != nil {
		return nil, err
	}
	return maps.Clone(b.values), nil
}

func (g *Graph) owned(it Item) (*item, error) {
	if it == nil {
		return nil, common.InvalidStatef("nil graph item")
	}
	b := it.base()
	if b.graph != g || !b.live {
		return nil, common.InvalidStatef("item %s is not part of graph %s", b.id, g.id)
	}
	return b, nil
}
