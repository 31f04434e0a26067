package feature

import (
	"fmt"
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

// Part is a named sub-feature of a composite domain.
type Part struct {
	ID     string
	Domain *Domain
}

// Domain fixes the value kind of a feature and, for categorical kinds, its
// category list. A Domain is immutable after construction and is shared by
// feature copies.
type Domain struct {
	kind       Kind
	categories []string
	index      map[string]int
	parts      []Part
}

// CategDomain declares a categorical domain over a non-empty, duplicate-free
// category list.
func CategDomain(categories []string) (*Domain, error) {
	return newCategoricalDomain(Categorical, categories)
}

// MultiCategDomain declares a multi-categorical domain over a non-empty,
// duplicate-free category list.
func MultiCategDomain(categories []string) (*Domain, error) {
	return newCategoricalDomain(MultiCategorical, categories)
}

func newCategoricalDomain(kind Kind, categories []string) (*Domain, error) {
	if len(categories) == 0 {
		return nil, invalidDeclaration("%s domain needs at least one category", kind)
	}
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			return nil, invalidDeclaration("%s domain has duplicate category %q", kind, c)
		}
		index[c] = i
	}
	return &Domain{
		kind:       kind,
		categories: slices.Clone(categories),
		index:      index,
	}, nil
}

// invalidDeclaration matches both ErrInvalidAssignment and ErrConfiguration.
func invalidDeclaration(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", common.ErrInvalidAssignment, common.ErrConfiguration, fmt.Sprintf(format, args...))
}

// NumDomain declares a numeric domain.
func NumDomain() *Domain { return &Domain{kind: Numeric} }

// StringDomain declares a free text domain.
func StringDomain() *Domain { return &Domain{kind: String} }

// MultiIDDomain declares a domain of identifier sets.
func MultiIDDomain() *Domain { return &Domain{kind: MultiID} }

// CompositeDomain declares a bundle of named sub-domains.
func CompositeDomain(parts ...Part) (*Domain, error) {
	if len(parts) == 0 {
		return nil, invalidDeclaration("composite domain needs at least one part")
	}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if p.ID == "" || p.Domain == nil {
			return nil, invalidDeclaration("composite part needs an id and a domain")
		}
		if seen[p.ID] {
			return nil, invalidDeclaration("composite domain has duplicate part %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &Domain{kind: Composite, parts: slices.Clone(parts)}, nil
}

// Kind returns the value kind.
func (d *Domain) Kind() Kind { return d.kind }

// Categories returns a copy of the category list.
func (d *Domain) Categories() []string { return slices.Clone(d.categories) }

// NumCategories returns the category count.
func (d *Domain) NumCategories() int { return len(d.categories) }

// CategoryIndex returns the position of category in the list.
func (d *Domain) CategoryIndex(category string) (int, bool) {
	i, ok := d.index[category]
	return i, ok
}

// Parts returns a copy of the composite parts.
func (d *Domain) Parts() []Part { return slices.Clone(d.parts) }

// IsValidValue reports whether v is Unknown or matches the domain.
func (d *Domain) IsValidValue(v Value) bool {
	return d.Validate(v) == nil
}

// Validate explains why v does not fit the domain. The error wraps
// ErrInvalidAssignment.
func (d *Domain) Validate(v Value) error {
	if IsUnknown(v) {
		return nil
	}
	kind, _ := KindOf(v)
	if kind != d.kind {
		return common.InvalidAssignmentf("%s value %q for %s feature", kind, v, d.kind)
	}

	switch val := v.(type) {
	case CategValue:
		if _, ok := d.index[val.Category]; !ok {
			return common.InvalidAssignmentf("category %q not in %v", val.Category, d.categories)
		}
		return d.validateProbs(val.Probs)
	case MultiCategValue:
		for _, c := range val.Categories {
			if _, ok := d.index[c]; !ok {
				return common.InvalidAssignmentf("category %q not in %v", c, d.categories)
			}
		}
		return d.validateProbs(val.Probs)
	case CompositeValue:
		if len(val.Values) != len(d.parts) {
			return common.InvalidAssignmentf("composite value has %d parts, want %d", len(val.Values), len(d.parts))
		}
		for i, part := range d.parts {
			if err := part.Domain.Validate(val.Values[i]); err != nil {
				return fmt.Errorf("part %q: %w", part.ID, err)
			}
		}
	}
	return nil
}

func (d *Domain) validateProbs(probs []float64) error {
	if probs == nil {
		return nil
	}
	if len(probs) != len(d.categories) {
		return common.InvalidAssignmentf("probability vector has %d entries, want %d", len(probs), len(d.categories))
	}
	return nil
}
