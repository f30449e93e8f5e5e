// Package tree assembles registered commands into one namespace of nested command nodes.
package tree

import (
	"fmt"
	"strings"

	"github.com/mwantia/argtree/arg"
	"github.com/mwantia/argtree/errors"
)

const (
	DefaultSeparator = "_"
	DefaultHyphen    = "__"
)

// Tree owns the root node. It is built during registration and only read afterwards.
type Tree struct {
	root      *Node
	separator string
	hyphen    string
}

type Option func(*Tree)

// WithSeparator sets the string that separates subcommands in a registered name.
func WithSeparator(separator string) Option {
	return func(t *Tree) {
		t.separator = separator
	}
}

// WithHyphen sets the string that stands for a literal hyphen in a registered name.
func WithHyphen(hyphen string) Option {
	return func(t *Tree) {
		t.hyphen = hyphen
	}
}

func New(opts ...Option) *Tree {
	t := &Tree{
		root:      newNode("", nil),
		separator: DefaultSeparator,
		hyphen:    DefaultHyphen,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) Root() *Node {
	return t.root
}

// Split turns a registered name into path segments: "led_on" is ["led", "on"] and
// "set__mode" is ["set-mode"]. Names containing spaces are taken as already split.
func (t *Tree) Split(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("command name must not be empty")
	}
	if strings.ContainsAny(name, " \t") {
		return strings.Fields(name), nil
	}

	pieces := []string{name}
	if t.hyphen != "" {
		pieces = strings.Split(name, t.hyphen)
	}

	var segments []string
	for i, piece := range pieces {
		parts := []string{piece}
		if t.separator != "" {
			parts = strings.Split(piece, t.separator)
		}
		if i > 0 {
			segments[len(segments)-1] += "-" + parts[0]
			parts = parts[1:]
		}
		segments = append(segments, parts...)
	}

	for _, segment := range segments {
		if segment == "" || strings.HasPrefix(segment, "-") || strings.HasSuffix(segment, "-") {
			return nil, fmt.Errorf("command name '%s' has an empty segment", name)
		}
	}
	return segments, nil
}

// Insert attaches a handler at the path derived from name, creating group nodes on the way.
// Each alias is a full path of its own that resolves to the same node.
func (t *Tree) Insert(name string, aliases []string, help string, specs []*arg.Spec, handler any) (*Node, error) {
	path, err := t.Split(name)
	if err != nil {
		return nil, errors.Compile("", "%v", err)
	}

	existing := t.root
	depth := 0
	for _, segment := range path {
		if _, ok := existing.aliases.Get(segment); ok {
			return nil, errors.Conflict(strings.Join(path, " "), true)
		}
		child, ok := existing.children.Get(segment)
		if !ok {
			break
		}
		existing = child
		depth++
	}
	if depth == len(path) && existing.HasHandler() {
		return nil, errors.Conflict(existing.Name(), false)
	}

	claimed := prefixes(path)
	seen := make(map[string]bool, len(aliases))
	aliasPaths := make([][]string, 0, len(aliases))
	for _, alias := range aliases {
		aliasPath, err := t.Split(alias)
		if err != nil {
			return nil, errors.Compile("", "alias: %v", err)
		}
		key := strings.Join(aliasPath, " ")
		if _, ok := t.Find(aliasPath...); ok || claimed[key] || seen[key] {
			return nil, errors.Conflict(key, true)
		}
		for i := 1; i < len(aliasPath); i++ {
			if seen[strings.Join(aliasPath[:i], " ")] {
				return nil, errors.Conflict(key, true)
			}
		}
		for prefix := range prefixes(aliasPath) {
			claimed[prefix] = true
		}
		seen[key] = true
		aliasPaths = append(aliasPaths, aliasPath)
	}

	// Nothing is created before every check passed.
	node := existing
	for _, segment := range path[depth:] {
		child := newNode(segment, node)
		node.children.Set(segment, child)
		node = child
	}

	node.Help = help
	node.Specs = specs
	node.Handler = handler

	for _, aliasPath := range aliasPaths {
		parent := t.root
		for _, segment := range aliasPath[:len(aliasPath)-1] {
			next, ok := parent.Child(segment)
			if !ok {
				next = newNode(segment, parent)
				parent.children.Set(segment, next)
			}
			parent = next
		}
		parent.aliases.Set(aliasPath[len(aliasPath)-1], node)
		node.Aliases = append(node.Aliases, aliasPath)
	}

	return node, nil
}

// prefixes returns every leading part of path, path itself included, joined by spaces.
func prefixes(path []string) map[string]bool {
	result := make(map[string]bool, len(path))
	for i := 1; i <= len(path); i++ {
		result[strings.Join(path[:i], " ")] = true
	}
	return result
}

// Find follows the exact path, aliases included.
func (t *Tree) Find(path ...string) (*Node, bool) {
	node := t.root
	for _, segment := range path {
		child, ok := node.Child(segment)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Resolve descends as deep as the leading tokens allow and returns the node reached,
// the matched segments and the remaining tokens.
func (t *Tree) Resolve(tokens []string) (*Node, []string, []string) {
	node := t.root
	matched := 0
	for _, token := range tokens {
		child, ok := node.Child(token)
		if !ok {
			break
		}
		node = child
		matched++
	}
	return node, tokens[:matched], tokens[matched:]
}

// Completions mirrors the command namespace as nested maps; leaves map to nil.
type Completions map[string]Completions

func (t *Tree) Completions() Completions {
	return completions(t.root)
}

func completions(node *Node) Completions {
	if node.children.Len() == 0 && node.aliases.Len() == 0 {
		return nil
	}

	result := make(Completions)
	node.children.Scan(func(segment string, child *Node) bool {
		result[segment] = completions(child)
		return true
	})
	node.aliases.Scan(func(segment string, target *Node) bool {
		result[segment] = completions(target)
		return true
	})
	return result
}
