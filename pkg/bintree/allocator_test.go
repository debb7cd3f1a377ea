package bintree //nolint:testpackage // tests inspect arena slots directly.

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotEntry struct {
	label, value int
	color        Color
	depth        int
}

func snapshot(tree Node) []snapshotEntry {
	var entries []snapshotEntry

	WalkPreOrder(tree, func(n Node, depth int) bool {
		entries = append(entries, snapshotEntry{n.Label(), n.Value(), n.Color(), depth})

		return true
	})

	return entries
}

func TestAllocatorReusesReleasedSlots(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	assert.Equal(t, 0, alloc.Used())
	assert.Equal(t, 0, alloc.Size())

	root := Make(alloc, 0, 10)
	Insert(root, 1, 5)
	Insert(root, 2, 15)

	assert.Equal(t, 3, alloc.Used())
	assert.Equal(t, 4, alloc.Size())

	Destroy(root)
	assert.Equal(t, 0, alloc.Used())

	root = Make(alloc, 0, 1)
	Insert(root, 1, 2)
	Insert(root, 2, 3)

	assert.Equal(t, 3, alloc.Used())
	assert.Equal(t, 4, alloc.Size(), "released slots are recycled")
	assert.Equal(t, []int{1, 2, 3}, inOrderValues(root))
}

func TestAllocatorDoubleReleasePanics(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	root := Make(alloc, 0, 1)
	idx := root.idx

	alloc.free(idx)

	assert.Panics(t, func() { alloc.free(idx) })
	assert.Panics(t, func() { alloc.free(0) })
}

func TestAllocatorSharedByTrees(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	first := Make(alloc, 0, 1)
	second := Make(alloc, 0, 100)

	for idx := 1; idx <= 10; idx++ {
		Insert(first, idx, idx)
		Insert(second, idx, 100+idx)
	}

	assert.Equal(t, 22, alloc.Used())
	assert.Equal(t, 11, Destroy(first).Nodes)
	assert.Equal(t, 11, alloc.Used())
	assert.Equal(t, 11, Count(second))
}

func TestHibernateBootRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	alloc := NewAllocator()
	root := Make(alloc, -1, 0)
	doomed := Insert(root, -2, -(1 << 40))

	for idx := range 3000 {
		leaf := Insert(root, idx, rng.Intn(1<<40)-(1<<39))
		leaf.SetColor(Color(idx%3) + Red - 1)
	}

	// Leave some gaps behind.
	require.Positive(t, Destroy(doomed).Nodes)

	before := snapshot(root)
	used := alloc.Used()
	size := alloc.Size()

	alloc.Hibernate()

	require.True(t, alloc.Hibernated())
	assert.Positive(t, alloc.HibernatedBytes())
	assert.Zero(t, alloc.ArenaBytes())
	assert.Panics(t, func() { alloc.Used() })
	assert.Panics(t, func() { root.Value() })
	assert.Panics(t, func() { alloc.Hibernate() })

	require.NoError(t, alloc.Boot())

	assert.False(t, alloc.Hibernated())
	assert.Zero(t, alloc.HibernatedBytes())
	assert.Equal(t, used, alloc.Used())
	assert.Equal(t, size, alloc.Size())
	assert.Equal(t, before, snapshot(root))

	// Gaps survive hibernation and are reused.
	Insert(root, 9999, 1)
	assert.Equal(t, size, alloc.Size())
}

func TestHibernateBelowThreshold(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	alloc.HibernationThreshold = 100
	root := Make(alloc, 0, 1)

	alloc.Hibernate()

	assert.False(t, alloc.Hibernated())
	assert.Equal(t, 1, root.Value())
	require.NoError(t, alloc.Boot(), "booting an awake allocator is a no-op")
}

func TestHibernateEmptyAllocator(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	alloc.Hibernate()

	require.True(t, alloc.Hibernated())
	require.NoError(t, alloc.Boot())

	assert.Equal(t, 0, alloc.Used())
	assert.Equal(t, 7, Make(alloc, 0, 7).Value())
}

func TestAllocatorClone(t *testing.T) {
	t.Parallel()

	alloc := NewAllocator()
	root := Make(alloc, 0, 10)
	Insert(root, 1, 5)

	clone := alloc.Clone()
	cloned := root.In(clone)

	Insert(cloned, 2, 20)

	assert.Equal(t, []int{5, 10}, inOrderValues(root))
	assert.Equal(t, []int{5, 10, 20}, inOrderValues(cloned))
	assert.Equal(t, 2, alloc.Used())
	assert.Equal(t, 3, clone.Used())
	assert.False(t, root.Equal(cloned))
}
