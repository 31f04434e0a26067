package routes

import (
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// valueJSON is the wire form of a feature value. Kind selects which of the
// other fields apply; "unknown" carries none.
type valueJSON struct {
	Kind       string      `json:"kind" validate:"required"`
	Category   string      `json:"category,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Probs      []float64   `json:"probs,omitempty"`
	Number     *float64    `json:"number,omitempty"`
	Text       *string     `json:"text,omitempty"`
	IDs        []string    `json:"ids,omitempty"`
	Values     []valueJSON `json:"values,omitempty"`
}

const unknownKind = "unknown"

func encodeValue(v feature.Value) valueJSON {
	switch v := v.(type) {
	case feature.CategValue:
		return valueJSON{Kind: feature.Categorical.String(), Category: v.Category, Probs: v.Probs}
	case feature.MultiCategValue:
		return valueJSON{Kind: feature.MultiCategorical.String(), Categories: v.Categories, Probs: v.Probs}
	case feature.NumValue:
		n := float64(v)
		return valueJSON{Kind: feature.Numeric.String(), Number: &n}
	case feature.StringValue:
		s := string(v)
		return valueJSON{Kind: feature.String.String(), Text: &s}
	case feature.MultiIDValue:
		ids := make([]string, 0, v.Len())
		for _, id := range v.IDs() {
			ids = append(ids, id.String())
		}
		return valueJSON{Kind: feature.MultiID.String(), IDs: ids}
	case feature.CompositeValue:
		parts := make([]valueJSON, len(v.Values))
		for i, part := range v.Values {
			parts[i] = encodeValue(part)
		}
		return valueJSON{Kind: feature.Composite.String(), Values: parts}
	default:
		return valueJSON{Kind: unknownKind}
	}
}

func decodeValue(raw valueJSON) (feature.Value, error) {
	if raw.Kind == unknownKind {
		return feature.UnknownValue, nil
	}
	kind, ok := feature.ParseKind(raw.Kind)
	if !ok {
		return nil, common.UnsupportedTypef("value kind %q", raw.Kind)
	}
	switch kind {
	case feature.Categorical:
		return feature.Categ(raw.Category, raw.Probs...), nil
	case feature.MultiCategorical:
		return feature.MultiCateg(raw.Categories, raw.Probs...), nil
	case feature.Numeric:
		if raw.Number == nil {
			return nil, common.InvalidAssignmentf("numeric value without number")
		}
		return feature.Num(*raw.Number), nil
	case feature.String:
		if raw.Text == nil {
			return nil, common.InvalidAssignmentf("string value without text")
		}
		return feature.Str(*raw.Text), nil
	case feature.MultiID:
		ids := make([]graphid.GraphItemID, 0, len(raw.IDs))
		for _, s := range raw.IDs {
			id, err := graphid.ParseGraphItemID(s)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return feature.MultiIDs(ids...), nil
	default:
		parts := make([]feature.Value, len(raw.Values))
		for i, part := range raw.Values {
			v, err := decodeValue(part)
			if err != nil {
				return nil, err
			}
			parts[i] = v
		}
		return feature.CompositeOf(parts...), nil
	}
}
