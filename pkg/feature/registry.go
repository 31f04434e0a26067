package feature

import (
	"github.com/linqs/GAIA-sub004/internal/util"
)

// Factory builds a feature declaration from parameters.
type Factory = util.Factory[Feature]

var registry = util.NewRegistry[Feature]("feature")

// Register makes a feature implementation available under tag. It is meant to
// be called from package init functions and panics on duplicate tags.
func Register(tag string, factory Factory) {
	registry.Register(tag, factory)
}

// New builds the feature registered under tag.
//
// The built-in tags create explicit features: "categ" and "multicateg" read
// the comma separated "categories" parameter, and every built-in tag accepts
// a closed "default" in the textual value form.
func New(tag string, params util.Params) (Feature, error) {
	return registry.New(tag, params)
}

// Tags lists the registered feature tags.
func Tags() []string {
	return registry.Tags()
}

func init() {
	Register(Categorical.String(), explicitFactory(func(p util.Params) (*Domain, error) {
		return CategDomain(p.List("categories"))
	}))
	Register(MultiCategorical.String(), explicitFactory(func(p util.Params) (*Domain, error) {
		return MultiCategDomain(p.List("categories"))
	}))
	Register(Numeric.String(), explicitFactory(func(util.Params) (*Domain, error) {
		return NumDomain(), nil
	}))
	Register(String.String(), explicitFactory(func(util.Params) (*Domain, error) {
		return StringDomain(), nil
	}))
	Register(MultiID.String(), explicitFactory(func(util.Params) (*Domain, error) {
		return MultiIDDomain(), nil
	}))
}

func explicitFactory(domainOf func(util.Params) (*Domain, error)) Factory {
	return func(params util.Params) (Feature, error) {
		domain, err := domainOf(params)
		if err != nil {
			return nil, err
		}
		var opts []ExplicitOption
		if raw, ok := params["default"]; ok {
			v, err := domain.ParseValue(raw)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithClosedDefault(v))
		}
		return NewExplicit(domain, opts...)
	}
}
