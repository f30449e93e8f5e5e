package tree

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwantia/argtree/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Split(t *testing.T) {
	tr := New()

	tests := []struct {
		name string
		want []string
	}{
		{"reverse", []string{"reverse"}},
		{"led_on", []string{"led", "on"}},
		{"set__mode", []string{"set-mode"}},
		{"set__mode_fast__lane", []string{"set-mode", "fast-lane"}},
		{"led on", []string{"led", "on"}},
	}

	for _, tt := range tests {
		got, err := tr.Split(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	for _, name := range []string{"", "led_", "_on", "a__"} {
		_, err := tr.Split(name)
		assert.Error(t, err, name)
	}
}

func TestTree_CustomSeparators(t *testing.T) {
	tr := New(WithSeparator("."), WithHyphen("~"))

	got, err := tr.Split("net.set~mode")
	require.NoError(t, err)
	assert.Equal(t, []string{"net", "set-mode"}, got)
}

func TestTree_Insert(t *testing.T) {
	tr := New()

	on, err := tr.Insert("led_on", nil, "turn on", nil, "on")
	require.NoError(t, err)
	_, err = tr.Insert("led_off", nil, "turn off", nil, "off")
	require.NoError(t, err)

	assert.Equal(t, []string{"led", "on"}, on.Path())
	assert.Equal(t, "led on", on.Name())

	led, ok := tr.Find("led")
	require.True(t, ok)
	assert.False(t, led.HasHandler())
	assert.Equal(t, []string{"off", "on"}, led.Candidates())
	assert.Len(t, led.Children(), 2)
}

func TestTree_Conflicts(t *testing.T) {
	tr := New()

	_, err := tr.Insert("led_on", nil, "", nil, 1)
	require.NoError(t, err)

	_, err = tr.Insert("led on", nil, "", nil, 2)
	var conflict *errors.RegistrationConflict
	require.True(t, stderrors.As(err, &conflict))
	assert.Equal(t, "led on", conflict.Path)
	assert.False(t, conflict.Alias)

	_, err = tr.Insert("status", []string{"led_on"}, "", nil, 3)
	require.True(t, stderrors.As(err, &conflict))
	assert.True(t, conflict.Alias)

	_, err = tr.Insert("list", []string{"ls", "ls"}, "", nil, 4)
	require.True(t, stderrors.As(err, &conflict))
}

func TestTree_ConflictCreatesNothing(t *testing.T) {
	tr := New()

	_, err := tr.Insert("led_on", nil, "", nil, 1)
	require.NoError(t, err)
	before := tr.Completions()

	_, err = tr.Insert("net_up", []string{"led_on"}, "", nil, 2)
	require.Error(t, err)
	_, err = tr.Insert("disk_mount", []string{"dm", "dm_x"}, "", nil, 3)
	require.Error(t, err)
	_, err = tr.Insert("disk_mount", []string{"disk"}, "", nil, 4)
	require.Error(t, err)

	_, ok := tr.Find("net")
	assert.False(t, ok)
	_, ok = tr.Find("disk")
	assert.False(t, ok)
	assert.Equal(t, []string{"led"}, tr.root.Candidates())
	if diff := cmp.Diff(before, tr.Completions()); diff != "" {
		t.Errorf("Completions() changed (-before +after):\n%s", diff)
	}
}

func TestTree_Aliases(t *testing.T) {
	tr := New()

	node, err := tr.Insert("led_on", []string{"lon", "led_enable"}, "", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"lon"}, {"led", "enable"}}, node.Aliases)

	for _, path := range [][]string{{"lon"}, {"led", "enable"}, {"led", "on"}} {
		found, ok := tr.Find(path...)
		require.True(t, ok, path)
		assert.Same(t, node, found)
	}

	_, err = tr.Insert("lon", nil, "", nil, 2)
	var conflict *errors.RegistrationConflict
	require.True(t, stderrors.As(err, &conflict))
	assert.True(t, conflict.Alias)
}

func TestTree_Resolve(t *testing.T) {
	tr := New()
	_, err := tr.Insert("led_on", nil, "", nil, 1)
	require.NoError(t, err)

	node, matched, rest := tr.Resolve([]string{"led", "on", "--bright", "5"})
	assert.Equal(t, "led on", node.Name())
	assert.Equal(t, []string{"led", "on"}, matched)
	assert.Equal(t, []string{"--bright", "5"}, rest)

	node, matched, rest = tr.Resolve([]string{"led"})
	assert.False(t, node.HasHandler())
	assert.Equal(t, []string{"led"}, matched)
	assert.Empty(t, rest)

	node, _, rest = tr.Resolve([]string{"unknown"})
	assert.True(t, node.IsRoot())
	assert.Equal(t, []string{"unknown"}, rest)
}

func TestTree_Completions(t *testing.T) {
	tr := New()
	for _, name := range []string{"led_on", "led_off", "reverse"} {
		_, err := tr.Insert(name, nil, "", nil, name)
		require.NoError(t, err)
	}
	_, err := tr.Insert("add", []string{"sum"}, "", nil, "add")
	require.NoError(t, err)

	want := Completions{
		"add":     nil,
		"sum":     nil,
		"reverse": nil,
		"led": Completions{
			"on":  nil,
			"off": nil,
		},
	}
	if diff := cmp.Diff(want, tr.Completions()); diff != "" {
		t.Errorf("Completions() mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_Walk(t *testing.T) {
	tr := New()
	for _, name := range []string{"b_x", "a", "b_y"} {
		_, err := tr.Insert(name, nil, "", nil, name)
		require.NoError(t, err)
	}

	var visited []string
	tr.Root().Walk(func(n *Node) bool {
		if !n.IsRoot() {
			visited = append(visited, n.Name())
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "b x", "b y"}, visited)
}
