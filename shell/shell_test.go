package shell_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/log"
	"github.com/mwantia/argtree/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T) *argtree.Dispatcher {
	t.Helper()

	d, err := argtree.New(argtree.WithProg("demo"), argtree.WithLogger(log.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, d.Close())
	})

	d.MustRegister(argtree.Command{
		Name:   "reverse",
		Params: []argtree.Param{{Name: "value"}},
		Handler: func(value string) string {
			runes := []rune(value)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return string(runes)
		},
	})
	d.MustRegister(argtree.Command{
		Name: "led_on",
		Params: []argtree.Param{
			{Name: "level", Annotation: "Option | int", Default: 1},
			{Name: "quiet", Annotation: "Flag", Default: false},
		},
		Doc:     "Switch the led on.\n:alias level: -l",
		Handler: func(level int, quiet bool) {},
	})
	d.MustRegister(argtree.Command{
		Name:    "led_off",
		Handler: func() {},
	})
	return d
}

func TestShell_Run(t *testing.T) {
	d := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	input := strings.NewReader("reverse abc\n\nnope\nreverse \"a b\"\nexit\nreverse never\n")

	s := shell.New(d,
		shell.WithStreams(&stdout, &stderr, input),
		shell.WithLogger(log.Discard()),
	)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, "cba\nb a\n", stdout.String())
	assert.Contains(t, stderr.String(), "unknown command 'nope'")
	assert.Contains(t, stderr.String(), "usage: demo {help,led,reverse} ...")

	entries, err := d.History().List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestShell_RunEndOfInput(t *testing.T) {
	d := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	s := shell.New(d,
		shell.WithStreams(&stdout, &stderr, strings.NewReader("led on --level x")),
		shell.WithInteractive(false),
		shell.WithLogger(log.Discard()),
	)
	require.NoError(t, s.Run(context.Background()))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "invalid value 'x'")
	assert.Contains(t, stderr.String(), "usage: demo led on")
}

func TestShell_Complete(t *testing.T) {
	d := newDispatcher(t)
	s := shell.New(d, shell.WithLogger(log.Discard()))

	tests := []struct {
		line string
		want []string
	}{
		{"re", []string{"reverse"}},
		{"", []string{"exit", "help", "led", "quit", "reverse"}},
		{"led ", []string{"led off", "led on"}},
		{"led o", []string{"led off", "led on"}},
		{"led on -", []string{"led on --level", "led on -l", "led on -quiet"}},
		{"led on --", []string{"led on --level"}},
		{"reverse x", nil},
		{`led "open`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Complete(tt.line))
		})
	}
}
