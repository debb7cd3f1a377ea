package rbtree //nolint:testpackage // order bounds are checked through the unexported walker.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

func TestValidateEmpty(t *testing.T) {
	t.Parallel()

	height, err := BlackHeight(bintree.Node{})
	require.NoError(t, err)
	assert.Equal(t, 1, height)
	assert.NoError(t, Validate(bintree.Node{}))
}

func TestBlackHeightOfDemo(t *testing.T) {
	t.Parallel()

	tree := New(bintree.NewAllocator())
	buildDemo(tree)

	height, err := BlackHeight(tree.Root())
	require.NoError(t, err)
	assert.Equal(t, 4, height)
}

func TestValidateRootNotBlack(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 1)
	root.SetColor(Red)

	assert.ErrorIs(t, Validate(root), ErrRootNotBlack)
}

func TestValidateUncolored(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 10)
	bintree.Insert(root, 1, 5)

	assert.ErrorIs(t, Validate(root), ErrUncolored)
}

func TestValidateRedRed(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 10)
	root = Insert(root, 1, 5)
	root = Insert(root, 2, 15)

	// Bypass the fix-up to leave a red child under a red parent.
	leaf := bintree.Insert(root, 3, 3)
	leaf.SetColor(Red)

	assert.ErrorIs(t, Validate(root), ErrRedRed)
}

func TestValidateBlackHeight(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 10)
	root = Insert(root, 1, 5)
	root.Left().SetColor(Black)

	assert.ErrorIs(t, Validate(root), ErrBlackHeight)
}

func TestValidateNonRoot(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 10)
	root = Insert(root, 1, 5)

	_, err := BlackHeight(root.Left())
	assert.ErrorIs(t, err, ErrBrokenLink)
}

func TestCheckOrder(t *testing.T) {
	t.Parallel()

	root := Make(bintree.NewAllocator(), 0, 5)

	_, err := check(root, bounds{lower: 100, hasLower: true})
	require.ErrorIs(t, err, ErrOrder)

	_, err = check(root, bounds{upper: 4, hasUpper: true})
	require.ErrorIs(t, err, ErrOrder)

	height, err := check(root, bounds{lower: 5, upper: 5, hasLower: true, hasUpper: true})
	require.NoError(t, err)
	assert.Equal(t, 2, height)
}
