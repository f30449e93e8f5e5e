package arg

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		name string
	}{
		{"--squared", Option, "squared"},
		{"-a", Flag, "a"},
		{"files", Positional, "files"},
		{"-", Positional, "-"},
		{"--", Positional, "--"},
	}

	for _, tt := range tests {
		kind, name := KindOf(tt.in)
		assert.Equal(t, tt.kind, kind, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func TestArity_Fixed(t *testing.T) {
	n, ok := Implicit.Fixed()
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = Exactly(3).Fixed()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = OneOrMore.Fixed()
	assert.False(t, ok)

	assert.True(t, ZeroOrMore.Open())
	assert.False(t, ZeroOrOne.Open())
	assert.Equal(t, 1, OneOrMore.Min())
	assert.True(t, Exactly(1).Multiple())
	assert.False(t, Implicit.Multiple())
}

func TestSpec_ConvertChoices(t *testing.T) {
	spec := &Spec{
		Name:    "value",
		Choices: []any{"foo", "bar", 1, 2},
	}

	v, err := spec.Convert("foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", v)

	v, err = spec.Convert("2")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = spec.Convert("baz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAChoice))
}

func TestSpec_ConvertCoerceFailure(t *testing.T) {
	spec := &Spec{
		Name: "count",
		Coerce: func(s string) (any, error) {
			return strconv.Atoi(s)
		},
	}

	_, err := spec.Convert("abc")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotAChoice))
}

func TestSpec_Labels(t *testing.T) {
	opt := &Spec{Name: "ignore", Kind: Option, Arity: Implicit}
	assert.Equal(t, []string{"IGNORE"}, opt.Labels())

	pair := &Spec{Name: "point", Kind: Option, Arity: Exactly(2), Metavars: []string{"X", "Y"}}
	assert.Equal(t, []string{"X", "Y"}, pair.Labels())

	sort := &Spec{Name: "sort", Kind: Option, Arity: Implicit, Choices: []any{"fwd", "rev"}}
	assert.Equal(t, []string{"{fwd,rev}"}, sort.Labels())

	files := &Spec{Name: "files", Arity: ZeroOrMore}
	assert.Equal(t, []string{"files"}, files.Labels())
}

func TestSpec_Names(t *testing.T) {
	spec := &Spec{Name: "sort", Kind: Option, Aliases: []string{"-s", "--order"}}
	assert.Equal(t, []string{"--sort", "-s", "--order"}, spec.Names())
	assert.Equal(t, Exactly(0), (&Spec{Kind: Flag, Action: ActionStoreTrue}).Values())
}
