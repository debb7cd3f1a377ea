package bintree

// Color is the per-node extension carried by balanced trees built on this
// package. Nodes created here start without one.
type Color uint8

// Node colors.
const (
	NoColor Color = iota
	Red
	Black
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case NoColor:
		return "none"
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "invalid"
	}
}

// Node is a handle to a vertex stored in an Allocator. The zero Node is the
// empty tree; it is also what lookups return when nothing matches.
//
// Handles stay valid across insertions and rotations. They are invalidated
// when the node is released by Destroy.
type Node struct {
	allocator *Allocator
	idx       uint32
}

// IsNil reports whether the handle points at no node.
func (n Node) IsNil() bool {
	return n.idx == 0
}

// Equal checks that both handles point at the same node.
func (n Node) Equal(other Node) bool {
	return n.idx == other.idx && (n.idx == 0 || n.allocator == other.allocator)
}

// Allocator returns the arena the node lives in.
func (n Node) Allocator() *Allocator {
	return n.allocator
}

// In rebinds the handle to another allocator holding the same layout,
// typically a Clone.
func (n Node) In(allocator *Allocator) Node {
	return Node{allocator: allocator, idx: n.idx}
}

// Label returns the external identifier of the node.
func (n Node) Label() int {
	return n.rec().label
}

// Value returns the order value of the node.
func (n Node) Value() int {
	return n.rec().value
}

// Color returns the color extension, NoColor if none is attached.
func (n Node) Color() Color {
	return n.rec().color
}

// SetColor attaches or updates the color extension.
func (n Node) SetColor(c Color) {
	n.rec().color = c
}

// Parent returns the parent handle, nil for a root.
func (n Node) Parent() Node {
	return n.link(n.rec().parent)
}

// Left returns the left child handle.
func (n Node) Left() Node {
	return n.link(n.rec().left)
}

// Right returns the right child handle.
func (n Node) Right() Node {
	return n.link(n.rec().right)
}

// IsLeft determines whether the node is the left child of its parent.
func (n Node) IsLeft() bool {
	if n.IsNil() {
		return false
	}

	storage := n.allocator.storage
	parent := storage[n.idx].parent

	return parent != 0 && storage[parent].left == n.idx
}

// IsRight determines whether the node is the right child of its parent.
func (n Node) IsRight() bool {
	if n.IsNil() {
		return false
	}

	storage := n.allocator.storage
	parent := storage[n.idx].parent

	return parent != 0 && storage[parent].right == n.idx
}

func (n Node) link(idx uint32) Node {
	if idx == 0 {
		return Node{}
	}

	return Node{allocator: n.allocator, idx: idx}
}

func (n Node) rec() *node {
	if n.IsNil() {
		panic(ErrNilTree)
	}

	n.allocator.mustBeAwake()

	return &n.allocator.storage[n.idx]
}
