package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T) *argtree.Dispatcher {
	t.Helper()

	d, err := argtree.New(argtree.WithProg("argtree"), argtree.WithLogger(log.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, d.Close())
	})

	registerCommands(d)
	require.NoError(t, d.Err())
	return d
}

func TestCommands(t *testing.T) {
	d := newDemo(t)

	tests := []struct {
		args []string
		want any
		out  string
	}{
		{args: []string{"rev", "foobar"}, want: "raboof"},
		{args: []string{"add", "-s", "1", "2", "3", "4"}, want: 30.0},
		{args: []string{"led", "on", "--level", "3", "-c", "red"}, out: "led on: red at 3\n"},
		{args: []string{"led", "off"}, out: "led off\n"},
		{args: []string{"echo", "-n", "a", "b"}, out: "a b"},
		{args: []string{"semver", "compare", "1.2.0", "1.10.0"}, want: -1},
		{args: []string{"vercmp", "2.0.0", "2.0.0"}, want: 0},
		{args: []string{"sleep", "1ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			result, err := d.ExecuteArgs(context.Background(), tt.args, argtree.WithStdout(&out))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	d := newDemo(t)

	_, err := d.ExecuteArgs(context.Background(), []string{"led", "on", "--level", "11"})
	assert.ErrorIs(t, err, errors.ErrInvalidChoice)

	_, err = d.ExecuteArgs(context.Background(), []string{"semver", "compare", "one", "1.0.0"})
	assert.ErrorIs(t, err, errors.ErrInvalidValue)
}

func TestLs(t *testing.T) {
	d := newDemo(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "large.bin"), make([]byte, 4096), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	var out bytes.Buffer
	_, err := d.ExecuteArgs(context.Background(), []string{"ls", dir, "--min-size", "1KB"}, argtree.WithStdout(&out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "large.bin")
	assert.Contains(t, out.String(), "4.1 kB")
	assert.Contains(t, out.String(), "sub"+string(filepath.Separator))
	assert.NotContains(t, out.String(), "small.txt")
	assert.NotContains(t, out.String(), ".hidden")

	out.Reset()
	_, err = d.ExecuteArgs(context.Background(), []string{"ls", "-a", dir}, argtree.WithStdout(&out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), ".hidden")
	assert.Contains(t, out.String(), "small.txt")
}

func TestHistoryCommand(t *testing.T) {
	d := newDemo(t)

	_, err := d.Execute(context.Background(), "rev abc")
	require.NoError(t, err)
	_, err = d.Execute(context.Background(), "led on")
	require.Error(t, err)

	var out bytes.Buffer
	_, err = d.Execute(context.Background(), "history --limit 2", argtree.WithStdout(&out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "rev abc")
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "led on")
}
