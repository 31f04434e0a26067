package schema

import (
	"github.com/linqs/GAIA-sub004/pkg/feature"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes the feature values of items of this schema as a JSON
// Schema document, using the textual value forms of package feature.
// Derived features are listed but marked as computed.
func (s *Schema) JSONSchema(title string) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, id := range s.ids {
		f := s.features[id]
		prop := domainSchema(f.Domain())

		switch decl := f.(type) {
		case *feature.Explicit:
			if def, closed := decl.ClosedDefault(); closed {
				prop.Default = def.String()
			}
		case *feature.Derived:
			prop.Description = "derived"
		}
		props.Set(id, prop)
	}

	return &jsonschema.Schema{
		Version:              jsonschema.Version,
		Title:                title,
		Description:          s.kind.String(),
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func domainSchema(d *feature.Domain) *jsonschema.Schema {
	switch d.Kind() {
	case feature.Categorical:
		return &jsonschema.Schema{Type: "string", Enum: enumOf(d.Categories())}
	case feature.MultiCategorical:
		return &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string", Enum: enumOf(d.Categories())},
			UniqueItems: true,
		}
	case feature.Numeric:
		return &jsonschema.Schema{Type: "number"}
	case feature.MultiID:
		return &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			UniqueItems: true,
		}
	case feature.Composite:
		parts := d.Parts()
		items := make([]*jsonschema.Schema, len(parts))
		for i, p := range parts {
			items[i] = domainSchema(p.Domain)
			items[i].Title = p.ID
		}
		return &jsonschema.Schema{Type: "array", PrefixItems: items}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

func enumOf(categories []string) []any {
	out := make([]any, len(categories))
	for i, c := range categories {
		out[i] = c
	}
	return out
}
