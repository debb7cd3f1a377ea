package rbtree_test

import (
	"math/rand"
	"testing"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
)

const benchNodes = 100000

func buildBench(b *testing.B, alloc *bintree.Allocator) *rbtree.Tree {
	b.Helper()

	tree := rbtree.New(alloc)
	for label, value := range rand.New(rand.NewSource(1)).Perm(benchNodes) {
		tree.Insert(label, value)
	}

	return tree
}

func BenchmarkInsert(b *testing.B) {
	tree := rbtree.New(bintree.NewAllocator())
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()

	for i := range b.N {
		tree.Insert(i, rng.Int())
	}
}

func BenchmarkFind(b *testing.B) {
	tree := buildBench(b, bintree.NewAllocator())

	b.ResetTimer()

	for i := range b.N {
		tree.Find(i % benchNodes)
	}
}

func BenchmarkDestroy(b *testing.B) {
	alloc := bintree.NewAllocator()

	for range b.N {
		b.StopTimer()

		tree := buildBench(b, alloc)

		b.StartTimer()

		tree.Close()
	}
}

// BenchmarkHibernateBoot reports the compressed size of the arena next to
// the time of a full round trip.
func BenchmarkHibernateBoot(b *testing.B) {
	alloc := bintree.NewAllocator()
	tree := buildBench(b, alloc)

	var packed uint64

	b.ResetTimer()

	for range b.N {
		tree.Hibernate()
		packed = alloc.HibernatedBytes()

		err := tree.Boot()
		if err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(alloc.ArenaBytes()), "arena-bytes")
	b.ReportMetric(float64(packed), "hibernated-bytes")
}
