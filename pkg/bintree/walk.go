package bintree

// The traversals below navigate through parent links only, so their memory
// use does not depend on the tree height. None of them mutate the tree.

// Walk visits the nodes of tree in order (non-decreasing values) until fn
// returns false.
func Walk(tree Node, fn func(Node) bool) {
	if tree.IsNil() {
		return
	}

	storage := tree.allocator.storage

	for cursor := leftmost(storage, tree.idx); cursor != 0; cursor = successor(storage, cursor, tree.idx) {
		if !fn(Node{allocator: tree.allocator, idx: cursor}) {
			return
		}
	}
}

// WalkPreOrder visits a node before its left and right subtrees, passing the
// depth relative to tree (0 for tree itself), until fn returns false.
func WalkPreOrder(tree Node, fn func(n Node, depth int) bool) {
	if tree.IsNil() {
		return
	}

	storage := tree.allocator.storage
	cursor := tree.idx
	depth := 0

	for {
		if !fn(Node{allocator: tree.allocator, idx: cursor}, depth) {
			return
		}

		if storage[cursor].left != 0 {
			cursor = storage[cursor].left
			depth++

			continue
		}

		if storage[cursor].right != 0 {
			cursor = storage[cursor].right
			depth++

			continue
		}

		// Climb until we leave a left subtree whose parent has a right child.
		for {
			if cursor == tree.idx {
				return
			}

			parent := storage[cursor].parent
			depth--

			if storage[parent].left == cursor && storage[parent].right != 0 {
				cursor = storage[parent].right
				depth++

				break
			}

			cursor = parent
		}
	}
}

// Count returns the number of nodes in tree.
func Count(tree Node) int {
	total := 0

	WalkPreOrder(tree, func(Node, int) bool {
		total++

		return true
	})

	return total
}

// Height returns the number of nodes on the longest root-to-leaf path.
func Height(tree Node) int {
	height := 0

	WalkPreOrder(tree, func(_ Node, depth int) bool {
		height = max(height, depth+1)

		return true
	})

	return height
}

// Min returns the node with the smallest value.
func Min(tree Node) Node {
	if tree.IsNil() {
		return Node{}
	}

	return Node{allocator: tree.allocator, idx: leftmost(tree.allocator.storage, tree.idx)}
}

// Max returns the node with the largest value.
func Max(tree Node) Node {
	if tree.IsNil() {
		return Node{}
	}

	storage := tree.allocator.storage
	cursor := tree.idx

	for storage[cursor].right != 0 {
		cursor = storage[cursor].right
	}

	return Node{allocator: tree.allocator, idx: cursor}
}

func leftmost(storage []node, nodeIdx uint32) uint32 {
	for storage[nodeIdx].left != 0 {
		nodeIdx = storage[nodeIdx].left
	}

	return nodeIdx
}

// Return the in-order successor of nodeIdx without leaving the subtree rooted
// at top. Returns 0 past the last node.
func successor(storage []node, nodeIdx, top uint32) uint32 {
	if storage[nodeIdx].right != 0 {
		return leftmost(storage, storage[nodeIdx].right)
	}

	for nodeIdx != top {
		parent := storage[nodeIdx].parent
		if storage[parent].left == nodeIdx {
			return parent
		}

		nodeIdx = parent
	}

	return 0
}
