// Package moduletree implements the trie-keyed module tree: exact lookup,
// insertion, and nearest-ancestor lookup over dotted module paths.
//
// Grounded on the wrapper-over-a-trie idiom in golang-dep's
// gps/typed_radix.go (a typed wrapper around a prefix tree), generalized
// from byte-radix to segment-radix: a dotted path's components are only a
// prefix of another path at "." boundaries, which a generic byte-radix
// tree (github.com/armon/go-radix) cannot express, so the node walk below
// is hand-rolled instead of wrapping that library.
package moduletree

import (
	"fmt"
	"sort"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/modpath"
)

// Node is a trie node. Non-terminal nodes are routing stubs with no config;
// terminal nodes carry the module's configuration and interface members.
type Node struct {
	IsTerminal       bool
	FullPath         string
	Config           *config.ModuleConfig
	InterfaceMembers []string
	Children         map[string]*Node
}

func newNode(fullPath string) *Node {
	return &Node{FullPath: fullPath, Children: make(map[string]*Node)}
}

// Tree is the module tree. The zero value is not usable; use New.
type Tree struct {
	root *Node
}

// New returns an empty module tree. The implicit root node always exists
// but starts non-terminal.
func New() *Tree {
	return &Tree{root: newNode(modpath.Root)}
}

// Insert adds a module at path with the given config and interface members.
// It fails if path is empty or already inserted.
func (t *Tree) Insert(path string, cfg *config.ModuleConfig, interfaceMembers []string) error {
	node := t.root
	if !modpath.IsRoot(path) {
		for _, seg := range modpath.Segments(path) {
			child, ok := node.Children[seg]
			if !ok {
				full := seg
				if node.FullPath != modpath.Root {
					full = node.FullPath + "." + seg
				}
				child = newNode(full)
				node.Children[seg] = child
			}
			node = child
		}
	}
	if node.IsTerminal {
		return &config.ConfigurationError{Message: fmt.Sprintf("module %q is already configured", path)}
	}
	node.IsTerminal = true
	node.Config = cfg
	node.InterfaceMembers = interfaceMembers
	return nil
}

// Get returns the terminal node at exactly path, or nil.
func (t *Tree) Get(path string) *Node {
	node := t.walk(path)
	if node == nil || !node.IsTerminal {
		return nil
	}
	return node
}

// walk returns the node at exactly path (terminal or not), or nil if the
// path doesn't exist in the tree at all.
func (t *Tree) walk(path string) *Node {
	node := t.root
	if modpath.IsRoot(path) {
		return node
	}
	for _, seg := range modpath.Segments(path) {
		child, ok := node.Children[seg]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// FindNearest returns the deepest terminal node whose full path is a
// dotted-segment prefix of path, the root terminal if no deeper module
// applies, or nil if even the root is not terminal.
func (t *Tree) FindNearest(path string) *Node {
	node := t.root
	var nearest *Node
	if node.IsTerminal {
		nearest = node
	}
	if modpath.IsRoot(path) {
		return nearest
	}
	for _, seg := range modpath.Segments(path) {
		child, ok := node.Children[seg]
		if !ok {
			break
		}
		node = child
		if node.IsTerminal {
			nearest = node
		}
	}
	return nearest
}

// Walk performs a depth-first traversal yielding every terminal node, with
// children visited in lexical order of their segment, and calls fn on each.
// Stops early if fn returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	walkNode(t.root, fn)
}

func walkNode(n *Node, fn func(*Node) bool) bool {
	if n.IsTerminal {
		if !fn(n) {
			return false
		}
	}
	segs := make([]string, 0, len(n.Children))
	for seg := range n.Children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		if !walkNode(n.Children[seg], fn) {
			return false
		}
	}
	return true
}

// All returns every terminal node in deterministic (lexical-by-segment)
// depth-first order.
func (t *Tree) All() []*Node {
	var out []*Node
	t.Walk(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
