// Package bintree provides an unbalanced, parent-linked binary search tree
// whose nodes live in an index-addressed arena. It is the substrate the
// red-black tree in pkg/rbtree is built on.
//
// Equal order values are routed into the left subtree, so for every node
// left <= node < right.
package bintree

import "errors"

// ErrNilTree is the panic value for operations that require an existing tree.
// The first node of a tree is created with Make, never with Insert.
var ErrNilTree = errors.New("operation on a nil tree")

// ErrRotateRoot is the panic value for rotating a node that has no parent.
var ErrRotateRoot = errors.New("cannot rotate a root node")

// Released counts what Destroy gave back to the allocator.
type Released struct {
	// Nodes is the number of nodes released.
	Nodes int
	// Extensions is the number of color extensions released with them.
	Extensions int
}

// Make creates a single-node tree in the allocator.
func Make(allocator *Allocator, label, value int) Node {
	return Node{allocator: allocator, idx: allocator.malloc(label, value)}
}

// Find performs a binary search for value. Returns the zero Node when the
// value is absent or the tree is empty.
func Find(tree Node, value int) Node {
	if tree.IsNil() {
		return Node{}
	}

	tree.allocator.mustBeAwake()
	storage := tree.allocator.storage
	cursor := tree.idx

	for cursor != 0 {
		current := storage[cursor].value

		switch {
		case current == value:
			return Node{allocator: tree.allocator, idx: cursor}
		case current > value:
			cursor = storage[cursor].left
		default:
			cursor = storage[cursor].right
		}
	}

	return Node{}
}

// Insert allocates a new node and attaches it as a leaf. Values less than or
// equal to a node's value go left. Returns the new leaf; the root of an
// unbalanced tree never changes.
func Insert(tree Node, label, value int) Node {
	if tree.IsNil() {
		panic(ErrNilTree)
	}

	allocator := tree.allocator
	nodeIdx := allocator.malloc(label, value)
	// malloc may grow the slice, so it is read afterwards.
	storage := allocator.storage
	cursor := tree.idx

	for {
		if value <= storage[cursor].value {
			if storage[cursor].left == 0 {
				storage[cursor].left = nodeIdx

				break
			}

			cursor = storage[cursor].left
		} else {
			if storage[cursor].right == 0 {
				storage[cursor].right = nodeIdx

				break
			}

			cursor = storage[cursor].right
		}
	}

	storage[nodeIdx].parent = cursor

	return Node{allocator: allocator, idx: nodeIdx}
}

// Destroy releases every node of the tree without recursion or an auxiliary
// stack: it repeatedly descends to a leaf, unlinks and frees it, and resumes
// from the freed leaf's parent. It stops once the original root is freed.
//
// When tree is a subtree it is first unlinked from its parent. Destroying
// the zero Node does nothing.
func Destroy(tree Node) Released {
	var released Released

	if tree.IsNil() {
		return released
	}

	allocator := tree.allocator
	allocator.mustBeAwake()
	storage := allocator.storage

	if parent := storage[tree.idx].parent; parent != 0 {
		unlinkChild(storage, parent, tree.idx)
		storage[tree.idx].parent = 0
	}

	cursor := tree.idx

	for {
		current := &storage[cursor]

		if current.left != 0 {
			cursor = current.left

			continue
		}

		if current.right != 0 {
			cursor = current.right

			continue
		}

		parent := current.parent
		if parent != 0 {
			unlinkChild(storage, parent, cursor)
		}

		if current.color != NoColor {
			released.Extensions++
		}

		allocator.free(cursor)
		released.Nodes++

		if cursor == tree.idx {
			return released
		}

		cursor = parent
	}
}

// Rotate promotes x one level above its parent, which becomes x's child on
// the opposite side. A left child is rotated right, a right child left:
//
//	      P            X
//	    X   C  =>    A   P
//	  A   B            B   C
//
// The grandparent, if any, is repointed at x. In-order sequence is kept.
//
//nolint:dupword // ASCII art diagrams contain intentional repeated letters.
func Rotate(x Node) {
	if x.IsNil() {
		panic(ErrNilTree)
	}

	x.allocator.mustBeAwake()
	storage := x.allocator.storage
	pivot := x.idx
	parent := storage[pivot].parent

	if parent == 0 {
		panic(ErrRotateRoot)
	}

	grandparent := storage[parent].parent

	if storage[parent].left == pivot {
		inner := storage[pivot].right
		storage[parent].left = inner

		if inner != 0 {
			storage[inner].parent = parent
		}

		storage[pivot].right = parent
	} else {
		inner := storage[pivot].left
		storage[parent].right = inner

		if inner != 0 {
			storage[inner].parent = parent
		}

		storage[pivot].left = parent
	}

	if grandparent != 0 {
		if storage[grandparent].left == parent {
			storage[grandparent].left = pivot
		} else {
			storage[grandparent].right = pivot
		}
	}

	storage[parent].parent = pivot
	storage[pivot].parent = grandparent
}

func unlinkChild(storage []node, parent, child uint32) {
	if storage[parent].left == child {
		storage[parent].left = 0
	} else {
		storage[parent].right = 0
	}
}
