package util

import (
	"fmt"
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

// Factory builds an implementation from its parameters.
type Factory[T any] func(params Params) (T, error)

// Registry maps symbolic tags to factories so implementations can be chosen
// by name from configuration. Registration happens at process start (package
// init); lookups afterwards are read-only.
type Registry[T any] struct {
	kind      string
	factories map[string]Factory[T]
}

// NewRegistry creates an empty registry. kind names the registered category in
// error messages.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		factories: make(map[string]Factory[T]),
	}
}

// Register adds a factory under tag. Registering a tag twice panics.
func (r *Registry[T]) Register(tag string, factory Factory[T]) {
	if tag == "" || factory == nil {
		panic(fmt.Sprintf("%s registry: empty tag or nil factory", r.kind))
	}
	if _, exists := r.factories[tag]; exists {
		panic(fmt.Sprintf("%s registry: tag %q registered twice", r.kind, tag))
	}
	r.factories[tag] = factory
}

// New builds the implementation registered under tag.
func (r *Registry[T]) New(tag string, params Params) (T, error) {
	var zero T
	factory, ok := r.factories[tag]
	if !ok {
		return zero, common.Configurationf("unknown %s %q", r.kind, tag)
	}
	if params == nil {
		params = Params{}
	}
	impl, err := factory(params)
	if err != nil {
		return zero, fmt.Errorf("failed to build %s %q: %w", r.kind, tag, err)
	}
	return impl, nil
}

// Has reports whether tag is registered.
func (r *Registry[T]) Has(tag string) bool {
	_, ok := r.factories[tag]
	return ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
