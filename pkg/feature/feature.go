// Package feature implements typed feature values and feature declarations.
//
// A feature is either Explicit, whose value is stored per item by the graph,
// or Derived, whose value is computed from the item on demand and optionally
// memoised per item. Both carry a Domain that fixes the value kind and decides
// which values are acceptable.
package feature

import (
	"fmt"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// Item is the minimal view of a graph item a derived feature needs. Graph
// nodes and edges implement it.
type Item interface {
	ID() graphid.GraphItemID
}

// Feature is a feature declaration.
type Feature interface {
	Domain() *Domain
	IsValidValue(v Value) bool
	// Copy returns an independent declaration sharing immutable configuration.
	// Derived copies never carry cache contents.
	Copy() Feature
	isFeature()
}

// Explicit is a feature whose value is stored per item.
type Explicit struct {
	domain        *Domain
	closedDefault Value
}

// ExplicitOption configures an Explicit feature.
type ExplicitOption func(*Explicit)

// WithClosedDefault makes the feature closed: items without a stored value read
// v instead of Unknown.
func WithClosedDefault(v Value) ExplicitOption {
	return func(f *Explicit) {
		f.closedDefault = v
	}
}

// NewExplicit declares an explicit feature over domain.
func NewExplicit(domain *Domain, opts ...ExplicitOption) (*Explicit, error) {
	if domain == nil {
		return nil, common.Configurationf("explicit feature needs a domain")
	}
	f := &Explicit{domain: domain}
	for _, opt := range opts {
		opt(f)
	}
	if f.closedDefault != nil {
		if IsUnknown(f.closedDefault) {
			f.closedDefault = nil
		} else if err := domain.Validate(f.closedDefault); err != nil {
			return nil, fmt.Errorf("closed default: %w", err)
		}
	}
	return f, nil
}

// NewExplicitCateg declares an explicit categorical feature.
func NewExplicitCateg(categories []string, opts ...ExplicitOption) (*Explicit, error) {
	domain, err := CategDomain(categories)
	if err != nil {
		return nil, err
	}
	return NewExplicit(domain, opts...)
}

// NewExplicitMultiCateg declares an explicit multi-categorical feature.
func NewExplicitMultiCateg(categories []string, opts ...ExplicitOption) (*Explicit, error) {
	domain, err := MultiCategDomain(categories)
	if err != nil {
		return nil, err
	}
	return NewExplicit(domain, opts...)
}

// NewExplicitNum declares an explicit numeric feature.
func NewExplicitNum(opts ...ExplicitOption) (*Explicit, error) {
	return NewExplicit(NumDomain(), opts...)
}

// NewExplicitString declares an explicit string feature.
func NewExplicitString(opts ...ExplicitOption) (*Explicit, error) {
	return NewExplicit(StringDomain(), opts...)
}

// NewExplicitMultiID declares an explicit multi-id feature.
func NewExplicitMultiID() *Explicit {
	return &Explicit{domain: MultiIDDomain()}
}

func (f *Explicit) Domain() *Domain { return f.domain }

func (f *Explicit) IsValidValue(v Value) bool { return f.domain.IsValidValue(v) }

// IsClosed reports whether the feature has a closed default.
func (f *Explicit) IsClosed() bool { return f.closedDefault != nil }

// ClosedDefault returns the closed default, if any.
func (f *Explicit) ClosedDefault() (Value, bool) {
	if f.closedDefault == nil {
		return UnknownValue, false
	}
	return f.closedDefault, true
}

func (f *Explicit) Copy() Feature {
	return &Explicit{domain: f.domain, closedDefault: f.closedDefault}
}

func (*Explicit) isFeature() {}

// ComputeFunc derives a value from an item. It must be pure with respect to
// the graph state it reads.
type ComputeFunc func(item Item) (Value, error)

// Derived is a feature whose value is computed on demand.
type Derived struct {
	domain  *Domain
	compute ComputeFunc
	cache   *Cache
}

// DerivedOption configures a Derived feature.
type DerivedOption func(*Derived)

// WithCaching enables the per-item cache at construction.
func WithCaching() DerivedOption {
	return func(f *Derived) {
		f.EnableCaching()
	}
}

// NewDerived declares a derived feature over domain computed by compute.
func NewDerived(domain *Domain, compute ComputeFunc, opts ...DerivedOption) (*Derived, error) {
	if domain == nil {
		return nil, common.Configurationf("derived feature needs a domain")
	}
	if compute == nil {
		return nil, common.Configurationf("derived feature needs a compute function")
	}
	f := &Derived{domain: domain, compute: compute}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Derived) Domain() *Domain { return f.domain }

func (f *Derived) IsValidValue(v Value) bool { return f.domain.IsValidValue(v) }

func (f *Derived) Copy() Feature {
	c := &Derived{domain: f.domain, compute: f.compute}
	if f.cache != nil {
		c.cache = newCache()
	}
	return c
}

func (*Derived) isFeature() {}

// Value returns the feature value of item, from the cache when possible.
func (f *Derived) Value(item Item) (Value, error) {
	if f.cache != nil {
		if v, ok := f.cache.get(item.ID()); ok {
			return v, nil
		}
	}

	v, err := f.compute(item)
	if err != nil {
		return nil, fmt.Errorf("failed to compute feature of %s: %w", item.ID(), err)
	}
	if v == nil {
		v = UnknownValue
	}
	if err := f.domain.Validate(v); err != nil {
		return nil, fmt.Errorf("computed value of %s: %w", item.ID(), err)
	}

	if f.cache != nil {
		f.cache.put(item.ID(), v)
	}
	return v, nil
}
