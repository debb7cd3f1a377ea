package rbtree

import (
	"errors"
	"fmt"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

// Invariant violations reported by Validate.
var (
	ErrUncolored    = errors.New("node has no color")
	ErrRootNotBlack = errors.New("root is not black")
	ErrRedRed       = errors.New("red node has a red parent")
	ErrBlackHeight  = errors.New("unequal black height")
	ErrOrder        = errors.New("binary search tree order violated")
	ErrBrokenLink   = errors.New("parent link does not match child link")
)

// bounds is the closed interval [lower, upper] a subtree's values must fall
// in. Rotations can move a duplicate to either side of its twin, so both ends
// are inclusive.
type bounds struct {
	lower, upper       int
	hasLower, hasUpper bool
}

func (b bounds) admits(value int) bool {
	return (!b.hasLower || value >= b.lower) && (!b.hasUpper || value <= b.upper)
}

// Validate checks the red-black and binary-search-tree properties of tree and
// returns the first violation found. An empty tree is valid.
func Validate(tree bintree.Node) error {
	_, err := BlackHeight(tree)

	return err
}

// BlackHeight returns the number of black nodes on every path from tree down
// to an absent child, counting the absent child itself. It fails if the tree
// violates any invariant checked by Validate.
func BlackHeight(tree bintree.Node) (int, error) {
	if tree.IsNil() {
		return 1, nil
	}

	if !tree.Parent().IsNil() {
		return 0, fmt.Errorf("%w: %d is not a root", ErrBrokenLink, tree.Value())
	}

	if tree.Color() != Black {
		return 0, fmt.Errorf("%w: %d is %s", ErrRootNotBlack, tree.Value(), tree.Color())
	}

	return check(tree, bounds{})
}

func check(n bintree.Node, limits bounds) (int, error) {
	if n.IsNil() {
		return 1, nil
	}

	value := n.Value()

	switch n.Color() {
	case Red, Black:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUncolored, value)
	}

	if !limits.admits(value) {
		return 0, fmt.Errorf("%w: %d is out of its subtree range", ErrOrder, value)
	}

	if n.Color() == Red && n.Parent().Color() == Red {
		return 0, fmt.Errorf("%w: %d under %d", ErrRedRed, value, n.Parent().Value())
	}

	left, right := n.Left(), n.Right()

	if !left.IsNil() && !left.Parent().Equal(n) {
		return 0, fmt.Errorf("%w: left child of %d", ErrBrokenLink, value)
	}

	if !right.IsNil() && !right.Parent().Equal(n) {
		return 0, fmt.Errorf("%w: right child of %d", ErrBrokenLink, value)
	}

	leftLimits := limits
	leftLimits.upper, leftLimits.hasUpper = value, true

	leftHeight, err := check(left, leftLimits)
	if err != nil {
		return 0, err
	}

	rightLimits := limits
	rightLimits.lower, rightLimits.hasLower = value, true

	rightHeight, err := check(right, rightLimits)
	if err != nil {
		return 0, err
	}

	if leftHeight != rightHeight {
		return 0, fmt.Errorf("%w: %d has %d on the left and %d on the right",
			ErrBlackHeight, value, leftHeight, rightHeight)
	}

	if n.Color() == Black {
		leftHeight++
	}

	return leftHeight, nil
}
