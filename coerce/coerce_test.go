package coerce

import (
	"net/url"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		typ  string
		raw  string
		want any
	}{
		{String, "hello", "hello"},
		{"string", "hello", "hello"},
		{Int, "42", 42},
		{Int, "-3", -3},
		{Int, "0x10", 16},
		{Float, "1.5", 1.5},
		{Bool, "yes", true},
		{Bool, "off", false},
		{Duration, "1m30s", 90 * time.Second},
		{Bytes, "10KB", uint64(10000)},
		{Bytes, "1KiB", uint64(1024)},
	}

	for _, tt := range tests {
		fn, err := r.Lookup(tt.typ)
		require.NoError(t, err, tt.typ)

		got, err := fn(tt.raw)
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.want, got, "%s(%s)", tt.typ, tt.raw)
	}
}

func TestRegistry_BuiltinsRich(t *testing.T) {
	r := NewRegistry()

	fn, err := r.Lookup(UUID)
	require.NoError(t, err)
	id := uuid.New()
	got, err := fn(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	fn, err = r.Lookup(Semver)
	require.NoError(t, err)
	got, err = fn("1.2.3")
	require.NoError(t, err)
	assert.True(t, got.(*semver.Version).Equal(semver.MustParse("1.2.3")))

	fn, err = r.Lookup(URL)
	require.NoError(t, err)
	got, err = fn("https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got.(*url.URL).Host)

	_, err = fn("no-scheme")
	assert.Error(t, err)
}

func TestRegistry_InvalidValues(t *testing.T) {
	r := NewRegistry()

	for typ, raw := range map[string]string{
		Int:      "abc",
		Float:    "1.2.3",
		Bool:     "maybe",
		Duration: "forever",
		UUID:     "not-a-uuid",
	} {
		fn, err := r.Lookup(typ)
		require.NoError(t, err)
		_, err = fn(raw)
		assert.Error(t, err, typ)
	}
}

func TestRegistry_Custom(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("upper")
	require.Error(t, err)

	r.Register("upper", func(s string) (any, error) {
		return s + "!", nil
	})
	fn, err := r.Lookup("upper")
	require.NoError(t, err)

	got, err := fn("a")
	require.NoError(t, err)
	assert.Equal(t, "a!", got)
	assert.Contains(t, r.Names(), "upper")
}

func TestParseLiterals(t *testing.T) {
	r := NewRegistry().RegisterChoices("colors", "red", "green")

	tests := []struct {
		expr string
		want []any
	}{
		{`'foo','bar',1,2`, []any{"foo", "bar", 1, 2}},
		{`"fwd", "rev"`, []any{"fwd", "rev"}},
		{`['a', 'b,c']`, []any{"a", "b,c"}},
		{`range(1,5)`, []any{1, 2, 3, 4}},
		{`range(3)`, []any{0, 1, 2}},
		{`range(10, 0, -5)`, []any{10, 5}},
		{`1.5, true`, []any{1.5, true}},
		{`colors, 'blue'`, []any{"red", "green", "blue"}},
	}

	for _, tt := range tests {
		got, err := r.ParseLiterals(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestParseLiterals_Errors(t *testing.T) {
	r := NewRegistry()

	for _, expr := range []string{
		``,
		`'open`,
		`os.system('x')`,
		`range(1, 1)`,
		`range(1, 5, 0)`,
		`(1, 2`,
	} {
		_, err := r.ParseLiterals(expr)
		assert.Error(t, err, expr)
	}
}

func TestSplitTopLevel(t *testing.T) {
	parts, err := SplitTopLevel(`Option | Choices['a|b', range(1,3)] | int`, '|')
	require.NoError(t, err)
	assert.Equal(t, []string{"Option ", " Choices['a|b', range(1,3)] ", " int"}, parts)
}
