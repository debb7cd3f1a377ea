package bintree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

func TestCompressDecompressUint32(t *testing.T) {
	t.Parallel()

	data := make([]uint32, 1000)
	for idx := range data {
		data[idx] = 7
	}

	packed := bintree.CompressSlice(data)
	require.NotEmpty(t, packed)
	assert.Less(t, len(packed), len(data)*4, "repetitive data should shrink")

	restored := make([]uint32, len(data))
	require.NoError(t, bintree.DecompressSlice(packed, restored))
	assert.Equal(t, data, restored)
}

func TestCompressDecompressIncompressible(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	data := make([]uint64, 64)

	for idx := range data {
		data[idx] = rng.Uint64()
	}

	packed := bintree.CompressSlice(data)
	require.NotEmpty(t, packed)

	restored := make([]uint64, len(data))
	require.NoError(t, bintree.DecompressSlice(packed, restored))
	assert.Equal(t, data, restored)
}

func TestCompressEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, bintree.CompressSlice([]uint32{}))
	assert.NoError(t, bintree.DecompressSlice(nil, []uint32{}))
}

func TestDecompressCorrupt(t *testing.T) {
	t.Parallel()

	packed := bintree.CompressSlice([]uint32{1, 2, 3})

	assert.ErrorIs(t, bintree.DecompressSlice(nil, make([]uint32, 3)), bintree.ErrCorruptColumn)
	assert.ErrorIs(t, bintree.DecompressSlice([]byte{42, 0}, make([]uint32, 3)), bintree.ErrCorruptColumn)
	assert.ErrorIs(t, bintree.DecompressSlice(packed, make([]uint32, 5)), bintree.ErrCorruptColumn)
}
