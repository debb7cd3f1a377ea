// Package rbtree implements a red-black tree on top of the arena-backed
// binary search tree in pkg/bintree. Every node carries a color extension and
// each insertion is followed by a fix-up that restores the red-black
// properties through rotations and recolorings, walking upward from the new
// leaf.
//
// Trees are addressed by their root handle. Insert may promote another node
// to the root, so callers keep the handle it returns.
package rbtree

import (
	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

// Node colors.
const (
	Red   = bintree.Red
	Black = bintree.Black
)

// fixupStats counts the work done by one insertion.
type fixupStats struct {
	rotations int
	recolors  int
}

// Make creates a new tree made of a single black node.
func Make(allocator *bintree.Allocator, label, value int) bintree.Node {
	root := bintree.Make(allocator, label, value)
	root.SetColor(Black)

	return root
}

// Find returns the node holding value, or the zero Node.
func Find(tree bintree.Node, value int) bintree.Node {
	return bintree.Find(tree, value)
}

// Insert adds a node and rebalances the tree. Returns the root of the tree
// after rebalancing, which may differ from tree.
//
// Inserting into an empty tree panics; use Make for the first node.
func Insert(tree bintree.Node, label, value int) bintree.Node {
	root, _ := insert(tree, label, value, nil)

	return root
}

// Destroy releases every node of the tree together with its color.
func Destroy(tree bintree.Node) bintree.Released {
	return bintree.Destroy(tree)
}

// insert returns the new root and the inserted node.
func insert(tree bintree.Node, label, value int, stats *fixupStats) (bintree.Node, bintree.Node) {
	if stats == nil {
		stats = &fixupStats{}
	}

	leaf := bintree.Insert(tree, label, value)
	leaf.SetColor(Red)

	if leaf.Parent().Color() != Red {
		return tree, leaf
	}

	newRoot := rebalance(leaf, stats)
	if !newRoot.IsNil() {
		return newRoot, leaf
	}

	return tree, leaf
}

// rebalance resolves the conflict between a red target and its red parent.
// It returns the new root when the rotations reached the top of the tree,
// otherwise the zero Node.
//
// The choice between the straight and the bent case only looks at the shape
// formed by target, its parent and grandparent. The uncle's color is never
// consulted.
func rebalance(target bintree.Node, stats *fixupStats) bintree.Node {
	for {
		if aligned(target) {
			// Straight line: blacken target and lift its parent over the
			// grandparent.
			target.SetColor(Black)
			stats.recolors++

			target = target.Parent()
		} else {
			// Bent: straighten it by lifting target, then retry from the
			// node that is now below it.
			next := target.Parent()

			bintree.Rotate(target)
			stats.rotations++

			target = next

			continue
		}

		bintree.Rotate(target)
		stats.rotations++

		parent := target.Parent()
		if parent.IsNil() {
			target.SetColor(Black)
			stats.recolors++

			return target
		}

		if parent.Color() == Black && isBlack(target.Left()) && isBlack(target.Right()) {
			return bintree.Node{}
		}
	}
}

// aligned reports whether target and its parent are children on the same
// side, i.e. grandparent, parent and target form a straight line.
func aligned(target bintree.Node) bool {
	parent := target.Parent()

	return (target.IsLeft() && parent.IsLeft()) || (target.IsRight() && parent.IsRight())
}

// isBlack treats absent children as black leaves.
func isBlack(n bintree.Node) bool {
	return n.IsNil() || n.Color() == Black
}
