package help

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwantia/argtree/coerce"
	"github.com/mwantia/argtree/compiler"
	"github.com/mwantia/argtree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T) *tree.Tree {
	t.Helper()

	tr := tree.New()
	insert := func(name string, aliases []string, doc string, params ...compiler.Param) {
		result, err := compiler.Compile(params, doc, coerce.NewRegistry(), compiler.Options{})
		require.NoError(t, err)
		_, err = tr.Insert(name, aliases, result.Help, result.Specs, name)
		require.NoError(t, err)
	}

	insert("add", []string{"sum"}, `
        Add up all the values
        :param values: numbers to add
        :param squared: square each value first
        :alias squared: -s
        :param secret: SUPPRESS`,
		compiler.Param{Name: "values", Annotation: "OneOrMore[float]"},
		compiler.Param{Name: "squared", Annotation: "Option", Default: false},
		compiler.Param{Name: "secret", Annotation: "Option", Default: "x"},
	)
	insert("led_on", nil, "Turn the led on",
		compiler.Param{Name: "level", Annotation: "RequiredOption | int"},
	)
	insert("led_off", nil, "Turn the led off")
	insert("copy", nil, ":metavar point: X, Y",
		compiler.Param{Name: "src"},
		compiler.Param{Name: "dst", Default: "."},
		compiler.Param{Name: "point", Annotation: "Option | Exactly2[int]"},
	)

	return tr
}

func TestRenderer_Usage(t *testing.T) {
	tr := build(t)
	r := &Renderer{Prog: "demo", Width: 80}

	tests := []struct {
		path []string
		want string
	}{
		{[]string{"add"}, "demo add [--squared] values [values ...]"},
		{[]string{"led", "on"}, "demo led on --level LEVEL"},
		{[]string{"led"}, "demo led {off,on} ..."},
		{[]string{"copy"}, "demo copy [--point X Y] src [dst]"},
	}

	for _, tt := range tests {
		node, ok := tr.Find(tt.path...)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, r.Usage(node))
	}
}

func TestRenderer_Command(t *testing.T) {
	tr := build(t)
	r := &Renderer{Prog: "demo", Width: 80}

	node, _ := tr.Find("add")
	var buf bytes.Buffer
	require.NoError(t, r.Command(&buf, node))

	out := buf.String()
	assert.Contains(t, out, "usage: demo add [--squared] values [values ...]")
	assert.Contains(t, out, "Add up all the values")
	assert.Contains(t, out, "aliases: sum")
	assert.Contains(t, out, "positional arguments:")
	assert.Contains(t, out, "numbers to add")
	assert.Contains(t, out, "--squared (-s)")
	assert.Contains(t, out, "square each value first")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderer_Group(t *testing.T) {
	tr := build(t)
	r := &Renderer{Prog: "demo", Width: 80}

	node, _ := tr.Find("led")
	var buf bytes.Buffer
	require.NoError(t, r.Command(&buf, node))

	out := buf.String()
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "Turn the led on")
	assert.Contains(t, out, "Turn the led off")
}

func TestRenderer_Overview(t *testing.T) {
	tr := build(t)
	r := &Renderer{Prog: "demo", Width: 80, Description: "A demo"}

	var buf bytes.Buffer
	require.NoError(t, r.Overview(&buf, tr.Root()))

	out := buf.String()
	assert.Contains(t, out, "usage: demo <command> [arguments]")
	assert.Contains(t, out, "A demo")
	assert.Contains(t, out, "add (sum)")
	assert.Contains(t, out, "led on")
	assert.Contains(t, out, "led off")
	assert.Less(t, strings.Index(out, "add (sum)"), strings.Index(out, "led off"))
}

func TestRenderer_Wrap(t *testing.T) {
	r := &Renderer{Width: 30}
	text := strings.Repeat("word ", 20)

	for _, line := range strings.Split(r.wrap(text), "\n") {
		assert.LessOrEqual(t, len(line), 30)
	}
}

func TestRenderer_Color(t *testing.T) {
	r := &Renderer{Color: true}
	assert.Contains(t, r.heading("usage:"), "\x1b[")
}
