package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

func TestUnmarshalFlexible(t *testing.T) {
	type body struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	tests := []struct {
		name  string
		input string
	}{
		{"plain", `{"name": "people", "count": 2}`},
		{"double encoded", `"{\"name\": \"people\", \"count\": 2}"`},
		{"trailing comma", `{"name": "people", "count": 2,}`},
		{"duplicate brace", `{{"name": "people", "count": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got body
			require.NoError(t, UnmarshalFlexible([]byte(tt.input), &got))
			assert.Equal(t, body{Name: "people", Count: 2}, got)
		})
	}

	var got body
	assert.Error(t, UnmarshalFlexible([]byte("  "), &got))
}

func TestParams(t *testing.T) {
	p := Params{"sep": "|", "flag": "true", "bad": "nope", "w": "0.5", "list": " a, b ,c"}

	assert.Equal(t, "|", p.String("sep", " "))
	assert.Equal(t, " ", p.String("missing", " "))

	b, err := p.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = p.Bool("missing", true)
	require.NoError(t, err)
	assert.True(t, b)
	_, err = p.Bool("bad", false)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	f, err := p.Float("w", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)
	_, err = p.Float("bad", 0)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	assert.Equal(t, []string{"a", "b", "c"}, p.List("list"))
	assert.Nil(t, p.List("missing"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry[string]("greeter")
	r.Register("hello", func(p Params) (string, error) {
		return "hello " + p.String("name", "world"), nil
	})
	r.Register("broken", func(Params) (string, error) {
		return "", errors.New("boom")
	})

	got, err := r.New("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	_, err = r.New("missing", nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)
	_, err = r.New("broken", nil)
	assert.EqualError(t, err, `failed to build greeter "broken": boom`)

	assert.True(t, r.Has("hello"))
	assert.Equal(t, []string{"broken", "hello"}, r.Tags())
	assert.Panics(t, func() { r.Register("hello", nil) })
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("GAIA_TEST_PORT", "9090")
	t.Setenv("GAIA_TEST_DEBUG", "true")
	t.Setenv("GAIA_TEST_EMPTY", "")

	assert.Equal(t, "9090", GetEnv("GAIA_TEST_PORT"))
	assert.Equal(t, "fallback", GetEnvString("GAIA_TEST_EMPTY", "fallback"))
	assert.InDelta(t, 9090, GetEnvNumeric("GAIA_TEST_PORT", 1), 1e-9)
	assert.InDelta(t, 7, GetEnvNumeric("GAIA_TEST_MISSING", 7), 1e-9)
	assert.True(t, GetEnvBool("GAIA_TEST_DEBUG", false))
	assert.False(t, GetEnvBool("GAIA_TEST_MISSING", false))
}
