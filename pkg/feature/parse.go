package feature

import (
	"strconv"
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
)

// UnknownToken is the textual form of the Unknown value.
const UnknownToken = "?"

// ParseValue decodes the textual form of a value of this domain, the inverse
// of Value.String for every kind except composite. The result is validated.
func (d *Domain) ParseValue(raw string) (Value, error) {
	if raw == UnknownToken {
		return UnknownValue, nil
	}

	var v Value
	switch d.kind {
	case Categorical:
		v = Categ(raw)
	case MultiCategorical:
		v = MultiCateg(splitList(raw))
	case Numeric:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, common.InvalidAssignmentf("%q is not a number", raw)
		}
		v = Num(n)
	case String:
		v = Str(raw)
	case MultiID:
		parts := splitList(raw)
		ids := make([]graphid.GraphItemID, 0, len(parts))
		for _, p := range parts {
			id, err := graphid.ParseGraphItemID(p)
			if err != nil {
				return nil, common.InvalidAssignmentf("%q is not a graph item id", p)
			}
			ids = append(ids, id)
		}
		v = MultiIDs(ids...)
	default:
		return nil, common.UnsupportedTypef("cannot parse %s values", d.kind)
	}

	if err := d.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
