package graphid

import (
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

// Parse decodes the canonical string form of either a GraphID (two segments)
// or a GraphItemID (four segments).
func Parse(raw string) (ID, error) {
	segments, err := split(raw)
	if err != nil {
		return nil, err
	}

	switch len(segments) {
	case 2:
		return GraphID{SchemaID: segments[0], ObjectID: segments[1]}, nil
	case 4:
		return GraphItemID{
			GraphID:  GraphID{SchemaID: segments[0], ObjectID: segments[1]},
			SchemaID: segments[2],
			ObjectID: segments[3],
		}, nil
	default:
		return nil, common.Configurationf("identifier %q has %d segments, want 2 or 4", raw, len(segments))
	}
}

// ParseGraphID decodes the canonical string form of a GraphID.
func ParseGraphID(raw string) (GraphID, error) {
	id, err := Parse(raw)
	if err != nil {
		return GraphID{}, err
	}
	gid, ok := id.(GraphID)
	if !ok {
		return GraphID{}, common.Configurationf("identifier %q is not a graph id", raw)
	}
	return gid, nil
}

// ParseGraphItemID decodes the canonical string form of a GraphItemID.
func ParseGraphItemID(raw string) (GraphItemID, error) {
	id, err := Parse(raw)
	if err != nil {
		return GraphItemID{}, err
	}
	iid, ok := id.(GraphItemID)
	if !ok {
		return GraphItemID{}, common.Configurationf("identifier %q is not a graph item id", raw)
	}
	return iid, nil
}

func split(raw string) ([]string, error) {
	if raw == "" {
		return nil, common.Configurationf("identifier cannot be empty")
	}
	segments := strings.Split(raw, Delimiter)
	for _, s := range segments {
		if s == "" {
			return nil, common.Configurationf("identifier %q contains an empty segment", raw)
		}
	}
	return segments, nil
}
