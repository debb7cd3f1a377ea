package rbtree

import (
	"time"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

// InsertEvent describes one completed insertion.
type InsertEvent struct {
	Label, Value int
	Rotations    int
	Recolors     int
	RootChanged  bool
	Duration     time.Duration
}

// Observer receives an event after every insertion made through a Tree.
type Observer interface {
	ObserveInsert(event InsertEvent)
}

// Stats accumulates the rebalancing work done by a Tree.
type Stats struct {
	Inserts     int
	Rotations   int
	Recolors    int
	RootChanges int
}

// Option configures a Tree.
type Option func(*Tree)

// WithObserver reports every insertion to obs.
func WithObserver(obs Observer) Option {
	return func(tree *Tree) {
		tree.observer = obs
	}
}

// Tree owns a red-black tree and tracks its root across insertions. It is
// not safe for concurrent use.
type Tree struct {
	allocator *bintree.Allocator
	root      bintree.Node
	count     int
	stats     Stats
	observer  Observer
}

// New creates an empty tree whose nodes are stored in allocator.
func New(allocator *bintree.Allocator, opts ...Option) *Tree {
	tree := &Tree{allocator: allocator}

	for _, opt := range opts {
		opt(tree)
	}

	return tree
}

// Root returns the current root handle, the zero Node when empty.
func (tree *Tree) Root() bintree.Node {
	return tree.root
}

// Allocator returns the bound node arena.
func (tree *Tree) Allocator() *bintree.Allocator {
	return tree.allocator
}

// Len returns the number of nodes in the tree.
func (tree *Tree) Len() int {
	return tree.count
}

// Stats returns the accumulated rebalancing counters.
func (tree *Tree) Stats() Stats {
	return tree.stats
}

// Insert adds a node with the given label and order value and returns it.
func (tree *Tree) Insert(label, value int) bintree.Node {
	start := time.Now()

	var (
		stats fixupStats
		leaf  bintree.Node
	)

	rootChanged := false

	if tree.root.IsNil() {
		tree.root = Make(tree.allocator, label, value)
		leaf = tree.root
	} else {
		var newRoot bintree.Node

		newRoot, leaf = insert(tree.root, label, value, &stats)
		rootChanged = !newRoot.Equal(tree.root)
		tree.root = newRoot
	}

	tree.count++
	tree.stats.Inserts++
	tree.stats.Rotations += stats.rotations
	tree.stats.Recolors += stats.recolors

	if rootChanged {
		tree.stats.RootChanges++
	}

	if tree.observer != nil {
		tree.observer.ObserveInsert(InsertEvent{
			Label:       label,
			Value:       value,
			Rotations:   stats.rotations,
			Recolors:    stats.recolors,
			RootChanged: rootChanged,
			Duration:    time.Since(start),
		})
	}

	return leaf
}

// Find returns the node holding value, or the zero Node.
func (tree *Tree) Find(value int) bintree.Node {
	return Find(tree.root, value)
}

// Validate checks the red-black invariants of the whole tree.
func (tree *Tree) Validate() error {
	return Validate(tree.root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (tree *Tree) Height() int {
	return bintree.Height(tree.root)
}

// Walk visits the nodes in order until fn returns false.
func (tree *Tree) Walk(fn func(bintree.Node) bool) {
	bintree.Walk(tree.root, fn)
}

// Hibernate compresses the node arena. The tree must be booted before use.
func (tree *Tree) Hibernate() {
	tree.allocator.Hibernate()
}

// Boot restores a hibernated arena.
func (tree *Tree) Boot() error {
	return tree.allocator.Boot()
}

// Close releases every node. The tree is empty afterwards and can be reused.
func (tree *Tree) Close() bintree.Released {
	released := Destroy(tree.root)

	tree.root = bintree.Node{}
	tree.count = 0

	return released
}
