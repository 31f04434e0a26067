package feature

import (
	"testing"

	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graphid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id graphid.GraphItemID
}

func (i testItem) ID() graphid.GraphItemID { return i.id }

func item(objectID string) testItem {
	return testItem{id: graphid.MustGraphItemID(graphid.MustGraphID("g", "1"), "people", objectID)}
}

func TestExplicitCategValidity(t *testing.T) {
	categories := []string{"red", "green", "blue"}
	f, err := NewExplicitCateg(categories)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		value Value
		valid bool
	}{
		{name: "unknown", value: UnknownValue, valid: true},
		{name: "nil", value: nil, valid: true},
		{name: "label only", value: Categ("green"), valid: true},
		{name: "label with full probs", value: Categ("red", 0.5, 0.25, 0.25), valid: true},
		{name: "probs too short", value: Categ("red", 0.5, 0.5)},
		{name: "probs too long", value: Categ("red", 0.25, 0.25, 0.25, 0.25)},
		{name: "empty probs", value: CategValue{Category: "red", Probs: []float64{}}},
		{name: "label not declared", value: Categ("purple")},
		{name: "wrong kind", value: Num(1)},
		{name: "multi categ for categ", value: MultiCateg([]string{"red"})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, f.IsValidValue(tc.value))
		})
	}
}

func TestEveryCategoryAccepted(t *testing.T) {
	categories := []string{"a", "b", "c", "d"}
	f, err := NewExplicitCateg(categories)
	require.NoError(t, err)

	for _, c := range categories {
		probs := make([]float64, len(categories))
		assert.True(t, f.IsValidValue(Categ(c, probs...)), c)
		assert.False(t, f.IsValidValue(Categ(c, probs[1:]...)), c)
	}
}

func TestCategoricalDeclarationErrors(t *testing.T) {
	_, err := NewExplicitCateg([]string{"a", "b", "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = NewExplicitCateg(nil)
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)

	_, err = NewExplicitMultiCateg([]string{"x", "x"})
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)
}

func TestMultiCategValidity(t *testing.T) {
	f, err := NewExplicitMultiCateg([]string{"x", "y", "z"})
	require.NoError(t, err)

	assert.True(t, f.IsValidValue(MultiCateg([]string{"z", "x"})))
	assert.True(t, f.IsValidValue(MultiCateg([]string{"x"}, 1, 0, 0)))
	assert.False(t, f.IsValidValue(MultiCateg([]string{"x"}, 1, 0)))
	assert.False(t, f.IsValidValue(MultiCateg([]string{"w"})))
}

func TestClosedDefault(t *testing.T) {
	f, err := NewExplicitCateg([]string{"yes", "no"}, WithClosedDefault(Categ("no")))
	require.NoError(t, err)
	assert.True(t, f.IsClosed())
	v, ok := f.ClosedDefault()
	assert.True(t, ok)
	assert.True(t, v.Equal(Categ("no")))

	_, err = NewExplicitCateg([]string{"yes", "no"}, WithClosedDefault(Categ("maybe")))
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)

	open, err := NewExplicitNum()
	require.NoError(t, err)
	assert.False(t, open.IsClosed())
}

func TestCompositeValidity(t *testing.T) {
	color, err := CategDomain([]string{"red", "blue"})
	require.NoError(t, err)
	domain, err := CompositeDomain(Part{ID: "color", Domain: color}, Part{ID: "size", Domain: NumDomain()})
	require.NoError(t, err)
	f, err := NewExplicit(domain)
	require.NoError(t, err)

	assert.True(t, f.IsValidValue(CompositeOf(Categ("red"), Num(3))))
	assert.True(t, f.IsValidValue(CompositeOf(UnknownValue, Num(3))))
	assert.False(t, f.IsValidValue(CompositeOf(Categ("green"), Num(3))))
	assert.False(t, f.IsValidValue(CompositeOf(Categ("red"))))

	_, err = CompositeDomain(Part{ID: "a", Domain: NumDomain()}, Part{ID: "a", Domain: NumDomain()})
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)
}

func TestValueEquality(t *testing.T) {
	gid := graphid.MustGraphID("g", "1")
	a := graphid.MustGraphItemID(gid, "people", "a")
	b := graphid.MustGraphItemID(gid, "people", "b")

	assert.True(t, Categ("x").Equal(Categ("x")))
	assert.False(t, Categ("x").Equal(Categ("x", 1)))
	assert.True(t, MultiCateg([]string{"b", "a", "a"}).Equal(MultiCateg([]string{"a", "b"})))
	assert.True(t, Num(1.5).Equal(Num(1.5)))
	assert.False(t, Num(1.5).Equal(Str("1.5")))
	assert.True(t, MultiIDs(b, a).Equal(MultiIDs(a, b, a)))
	assert.True(t, UnknownValue.Equal(nil))
	assert.True(t, CompositeOf(Str("a"), nil).Equal(CompositeOf(Str("a"), UnknownValue)))

	union := MultiIDs(a).Union(MultiIDs(b))
	assert.Equal(t, 2, union.Len())
	assert.True(t, union.Has(b))
}

func TestDerivedCachingLifecycle(t *testing.T) {
	calls := 0
	f, err := NewDerived(NumDomain(), func(it Item) (Value, error) {
		calls++
		return Num(float64(len(it.ID().ObjectID))), nil
	})
	require.NoError(t, err)
	p1 := item("p1")

	assert.False(t, f.IsCaching())
	assert.ErrorIs(t, f.ResetCache(), common.ErrInvalidOperation)
	assert.ErrorIs(t, f.ResetCacheFor(p1.ID()), common.ErrInvalidOperation)

	_, err = f.Value(p1)
	require.NoError(t, err)
	_, err = f.Value(p1)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	f.EnableCaching()
	assert.ErrorIs(t, f.ResetCacheFor(p1.ID()), common.ErrInvalidState)

	v, err := f.Value(p1)
	require.NoError(t, err)
	assert.True(t, v.Equal(Num(2)))
	_, err = f.Value(p1)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, f.IsCached(p1.ID()))
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, f.CacheStats())

	require.NoError(t, f.ResetCacheFor(p1.ID()))
	assert.False(t, f.IsCached(p1.ID()))

	_, err = f.Value(p1)
	require.NoError(t, err)
	require.NoError(t, f.ResetCache())
	assert.Equal(t, 0, f.CacheStats().Size)
	require.NoError(t, f.ResetCache())
	assert.Equal(t, 0, f.CacheStats().Size)

	f.DisableCaching()
	assert.False(t, f.IsCaching())
	assert.ErrorIs(t, f.ResetCache(), common.ErrInvalidOperation)
}

func TestDerivedCopyDoesNotShareCache(t *testing.T) {
	f, err := NewDerived(StringDomain(), func(it Item) (Value, error) {
		return Str(it.ID().ObjectID), nil
	}, WithCaching())
	require.NoError(t, err)

	c, ok := f.Copy().(*Derived)
	require.True(t, ok)
	assert.True(t, c.IsCaching())

	_, err = f.Value(item("p1"))
	require.NoError(t, err)
	assert.True(t, f.IsCached(item("p1").ID()))
	assert.False(t, c.IsCached(item("p1").ID()))

	_, err = c.Value(item("p2"))
	require.NoError(t, err)
	assert.False(t, f.IsCached(item("p2").ID()))
}

func TestDerivedRejectsInvalidComputedValue(t *testing.T) {
	f, err := NewDerived(NumDomain(), func(Item) (Value, error) {
		return Str("oops"), nil
	}, WithCaching())
	require.NoError(t, err)

	_, err = f.Value(item("p1"))
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)
	assert.False(t, f.IsCached(item("p1").ID()))
}

func TestParseValue(t *testing.T) {
	categ, err := CategDomain([]string{"a", "b"})
	require.NoError(t, err)

	v, err := categ.ParseValue("b")
	require.NoError(t, err)
	assert.True(t, v.Equal(Categ("b")))

	_, err = categ.ParseValue("c")
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)

	v, err = NumDomain().ParseValue("?")
	require.NoError(t, err)
	assert.True(t, IsUnknown(v))

	v, err = MultiIDDomain().ParseValue("g.1.people.a, g.1.people.b")
	require.NoError(t, err)
	assert.Equal(t, 2, v.(MultiIDValue).Len())
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, Tags(), []string{"categ", "multicateg", "num", "string", "multiid"})

	f, err := New("categ", util.Params{"categories": "m, f", "default": "f"})
	require.NoError(t, err)
	explicit, ok := f.(*Explicit)
	require.True(t, ok)
	assert.Equal(t, []string{"m", "f"}, explicit.Domain().Categories())
	assert.True(t, explicit.IsClosed())

	_, err = New("nope", nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = New("categ", util.Params{"categories": "a,a"})
	assert.ErrorIs(t, err, common.ErrInvalidAssignment)
}
