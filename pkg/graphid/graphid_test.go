package graphid

import (
	"errors"
	"strings"
	"testing"

	"github.com/linqs/GAIA-sub004/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphItemIDEquality(t *testing.T) {
	gid := MustGraphID("social", "g1")
	base := MustGraphItemID(gid, "people", "p1")

	testCases := []struct {
		name  string
		other GraphItemID
		equal bool
	}{
		{name: "identical", other: MustGraphItemID(MustGraphID("social", "g1"), "people", "p1"), equal: true},
		{name: "graph schema differs", other: MustGraphItemID(MustGraphID("web", "g1"), "people", "p1")},
		{name: "graph object differs", other: MustGraphItemID(MustGraphID("social", "g2"), "people", "p1")},
		{name: "item schema differs", other: MustGraphItemID(gid, "places", "p1")},
		{name: "item object differs", other: MustGraphItemID(gid, "people", "p2")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, base == tc.other)

			set := map[GraphItemID]bool{base: true}
			assert.Equal(t, tc.equal, set[tc.other])
		})
	}
}

func TestRoundTrip(t *testing.T) {
	gid := MustGraphID("social", "g1")
	iid := MustGraphItemID(gid, "people", "p_1-x")

	parsed, err := Parse(gid.String())
	require.NoError(t, err)
	assert.Equal(t, gid, parsed)

	parsedItem, err := ParseGraphItemID(iid.String())
	require.NoError(t, err)
	assert.Equal(t, iid, parsedItem)
	assert.Equal(t, "social.g1.people.p_1-x", iid.String())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "single segment", raw: "social"},
		{name: "three segments", raw: "a.b.c"},
		{name: "five segments", raw: "a.b.c.d.e"},
		{name: "empty segment", raw: "a..c.d"},
		{name: "trailing delimiter", raw: "a.b."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrConfiguration))
		})
	}
}

func TestParseKindMismatch(t *testing.T) {
	_, err := ParseGraphID("a.b.c.d")
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = ParseGraphItemID("a.b")
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestConstructorsRejectDelimiter(t *testing.T) {
	_, err := NewGraphID("so.cial", "g1")
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = NewGraphItemID(MustGraphID("social", "g1"), "people", "")
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestSortIsDeterministic(t *testing.T) {
	gid := MustGraphID("social", "g1")
	ids := []GraphItemID{
		MustGraphItemID(gid, "people", "p3"),
		MustGraphItemID(gid, "org", "o1"),
		MustGraphItemID(gid, "people", "p1"),
	}
	Sort(ids)

	assert.Equal(t, []GraphItemID{
		MustGraphItemID(gid, "org", "o1"),
		MustGraphItemID(gid, "people", "p1"),
		MustGraphItemID(gid, "people", "p3"),
	}, ids)
}

func TestNewObjectID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := NewObjectID()
		require.NoError(t, err)
		assert.Len(t, id, objectIDLength)
		assert.False(t, strings.Contains(id, Delimiter))
		assert.False(t, seen[id])
		seen[id] = true
	}
}
