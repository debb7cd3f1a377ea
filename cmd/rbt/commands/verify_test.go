package commands //nolint:testpackage // verify is unexported.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
)

func TestVerifyTagsViolations(t *testing.T) {
	t.Parallel()

	tree := rbtree.New(bintree.NewAllocator())
	for label, value := range demoValues {
		tree.Insert(label, value)
	}

	blackHeight, err := verify(tree)
	require.NoError(t, err)
	assert.Equal(t, 4, blackHeight)

	tree.Root().SetColor(rbtree.Red)

	_, err = verify(tree)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorIs(t, err, rbtree.ErrRootNotBlack)
}

func TestStressValuesAreReproducible(t *testing.T) {
	t.Parallel()

	first := (&stressCommand{count: 50, seed: 9}).values()
	second := (&stressCommand{count: 50, seed: 9}).values()
	assert.Equal(t, first, second)

	dups := (&stressCommand{count: 40, seed: 9, duplicates: true}).values()
	for _, value := range dups {
		assert.Less(t, value, 10)
	}
}
