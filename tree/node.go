package tree

import (
	"slices"
	"strings"

	"github.com/mwantia/argtree/arg"
	"github.com/tidwall/btree"
)

// Node is one command or command group. A node without a handler only groups its children.
type Node struct {
	Segment string
	Help    string
	Specs   []*arg.Spec
	Handler any
	// Aliases holds the alias paths that resolve to this node, in registration order.
	Aliases [][]string

	parent   *Node
	children *btree.Map[string, *Node]
	aliases  *btree.Map[string, *Node]
}

func newNode(segment string, parent *Node) *Node {
	return &Node{
		Segment:  segment,
		parent:   parent,
		children: btree.NewMap[string, *Node](0),
		aliases:  btree.NewMap[string, *Node](0),
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) IsRoot() bool {
	return n.parent == nil
}

func (n *Node) HasHandler() bool {
	return n.Handler != nil
}

// Path returns the segments from the root down to this node.
func (n *Node) Path() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.Segment)
}

// Name returns the path as it is typed on the command line.
func (n *Node) Name() string {
	return strings.Join(n.Path(), " ")
}

// Child looks up a direct child by segment, falling back to alias segments.
func (n *Node) Child(segment string) (*Node, bool) {
	if child, ok := n.children.Get(segment); ok {
		return child, true
	}
	return n.aliases.Get(segment)
}

// Children returns the direct children sorted by segment.
func (n *Node) Children() []*Node {
	return n.children.Values()
}

// Candidates lists every segment accepted below this node, aliases included, sorted.
func (n *Node) Candidates() []string {
	candidates := n.children.Keys()
	n.aliases.Scan(func(segment string, _ *Node) bool {
		candidates = append(candidates, segment)
		return true
	})
	slices.Sort(candidates)
	return candidates
}

// Walk visits this node and all descendants depth first in sorted order.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	n.children.Scan(func(_ string, child *Node) bool {
		child.Walk(fn)
		return true
	})
}

// Spec looks up an argument by name, flagged name or alias.
func (n *Node) Spec(name string) (*arg.Spec, bool) {
	for _, spec := range n.Specs {
		if spec.Name == name {
			return spec, true
		}
		for _, candidate := range spec.Names() {
			if candidate == name {
				return spec, true
			}
		}
	}
	return nil, false
}
