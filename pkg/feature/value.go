package feature

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// Kind is the value kind a feature declares.
type Kind int

const (
	Categorical Kind = iota
	MultiCategorical
	Numeric
	String
	MultiID
	Composite
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categ"
	case MultiCategorical:
		return "multicateg"
	case Numeric:
		return "num"
	case String:
		return "string"
	case MultiID:
		return "multiid"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := Categorical; k <= Composite; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Value is a feature value. The set of variants is closed: UnknownValue,
// CategValue, MultiCategValue, NumValue, StringValue, MultiIDValue and
// CompositeValue.
type Value interface {
	fmt.Stringer
	// Equal compares by structural content.
	Equal(other Value) bool
	isValue()
}

// Unknown marks the absence of a value.
type Unknown struct{}

// UnknownValue is the Unknown sentinel.
var UnknownValue Value = Unknown{}

// IsUnknown reports whether v is nil or the Unknown sentinel.
func IsUnknown(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Unknown)
	return ok
}

func (Unknown) String() string { return "?" }

func (Unknown) Equal(other Value) bool { return IsUnknown(other) }

func (Unknown) isValue() {}

// CategValue holds one category label and an optional probability vector with
// one entry per declared category.
type CategValue struct {
	Category string
	Probs    []float64
}

// Categ returns a categorical value.
func Categ(category string, probs ...float64) CategValue {
	return CategValue{Category: category, Probs: probs}
}

func (v CategValue) String() string { return v.Category }

func (v CategValue) Equal(other Value) bool {
	o, ok := other.(CategValue)
	return ok && v.Category == o.Category && slices.Equal(v.Probs, o.Probs)
}

func (CategValue) isValue() {}

// MultiCategValue holds a set of category labels, kept sorted, and an
// optional probability vector with one entry per declared category.
type MultiCategValue struct {
	Categories []string
	Probs      []float64
}

// MultiCateg returns a multi-categorical value over the given labels.
// Duplicate labels collapse.
func MultiCateg(categories []string, probs ...float64) MultiCategValue {
	set := slices.Clone(categories)
	slices.Sort(set)
	return MultiCategValue{Categories: slices.Compact(set), Probs: probs}
}

// Has reports whether category is in the set.
func (v MultiCategValue) Has(category string) bool {
	_, found := slices.BinarySearch(v.Categories, category)
	return found
}

func (v MultiCategValue) String() string { return strings.Join(v.Categories, ",") }

func (v MultiCategValue) Equal(other Value) bool {
	o, ok := other.(MultiCategValue)
	return ok && slices.Equal(v.Categories, o.Categories) && slices.Equal(v.Probs, o.Probs)
}

func (MultiCategValue) isValue() {}

// NumValue is a numeric value.
type NumValue float64

// Num returns a numeric value.
func Num(n float64) NumValue { return NumValue(n) }

func (v NumValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

func (v NumValue) Equal(other Value) bool {
	o, ok := other.(NumValue)
	return ok && v == o
}

func (NumValue) isValue() {}

// StringValue is a free text value.
type StringValue string

// Str returns a string value.
func Str(s string) StringValue { return StringValue(s) }

func (v StringValue) String() string { return string(v) }

func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v == o
}

func (StringValue) isValue() {}

// MultiIDValue is a set of item identifiers, kept sorted. Merges record
// provenance with it.
type MultiIDValue struct {
	ids []graphid.GraphItemID
}

// MultiIDs returns a multi-id value over ids. Duplicates collapse.
func MultiIDs(ids ...graphid.GraphItemID) MultiIDValue {
	set := slices.Clone(ids)
	graphid.Sort(set)
	return MultiIDValue{ids: slices.Compact(set)}
}

// IDs returns a copy of the sorted id set.
func (v MultiIDValue) IDs() []graphid.GraphItemID {
	return slices.Clone(v.ids)
}

// Len returns the set size.
func (v MultiIDValue) Len() int { return len(v.ids) }

// Has reports whether id is in the set.
func (v MultiIDValue) Has(id graphid.GraphItemID) bool {
	_, found := slices.BinarySearchFunc(v.ids, id, graphid.Compare)
	return found
}

// Union returns the union of v and other.
func (v MultiIDValue) Union(other MultiIDValue) MultiIDValue {
	return MultiIDs(append(slices.Clone(v.ids), other.ids...)...)
}

func (v MultiIDValue) String() string {
	parts := make([]string, len(v.ids))
	for i, id := range v.ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func (v MultiIDValue) Equal(other Value) bool {
	o, ok := other.(MultiIDValue)
	return ok && slices.Equal(v.ids, o.ids)
}

func (MultiIDValue) isValue() {}

// CompositeValue bundles one value per part of a composite feature, in part
// order.
type CompositeValue struct {
	Values []Value
}

// CompositeOf returns a composite value.
func CompositeOf(values ...Value) CompositeValue {
	return CompositeValue{Values: values}
}

func (v CompositeValue) String() string {
	parts := make([]string, len(v.Values))
	for i, value := range v.Values {
		if value == nil {
			value = UnknownValue
		}
		parts[i] = value.String()
	}
	return "(" + strings.Join(parts, ";") + ")"
}

func (v CompositeValue) Equal(other Value) bool {
	o, ok := other.(CompositeValue)
	if !ok || len(v.Values) != len(o.Values) {
		return false
	}
	for i := range v.Values {
		a, b := v.Values[i], o.Values[i]
		if IsUnknown(a) || IsUnknown(b) {
			if IsUnknown(a) != IsUnknown(b) {
				return false
			}
			continue
		}
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

func (CompositeValue) isValue() {}

// KindOf returns the kind of a non-Unknown value.
func KindOf(v Value) (Kind, bool) {
	switch v.(type) {
	case CategValue:
		return Categorical, true
	case MultiCategValue:
		return MultiCategorical, true
	case NumValue:
		return Numeric, true
	case StringValue:
		return String, true
	case MultiIDValue:
		return MultiID, true
	case CompositeValue:
		return Composite, true
	default:
		return 0, false
	}
}
