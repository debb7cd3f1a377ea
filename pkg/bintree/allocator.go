package bintree

import (
	"maps"
	"sync"
	"unsafe"

	"github.com/speckJ8/graph-algorithms/pkg/safeconv"
)

// growCapacityNumerator and growCapacityDenominator define the 3/2 growth factor
// used when storage is restored by Boot.
const (
	growCapacityNumerator   = 3
	growCapacityDenominator = 2
)

// Arena columns, in hibernation order. The gap set is stored after them.
const (
	colLabel = iota
	colValue
	colParent
	colLeft
	colRight
	colColor
	columnCount
)

// nodeSize is the in-memory footprint of one arena slot.
const nodeSize = uint64(unsafe.Sizeof(node{}))

// maxNodes bounds the arena; index 0 is reserved as the absent link.
const maxNodes = safeconv.MaxUint32 - 1

// node is the arena record behind a Node handle.
type node struct {
	label, value        int
	parent, left, right uint32
	color               Color
}

// Allocator owns the storage of every node created through it. Several trees
// may share one allocator.
type Allocator struct {
	storage              []node
	gaps                 map[uint32]bool
	hibernatedData       [columnCount + 1][]byte
	HibernationThreshold int
	hibernatedStorageLen int
	hibernatedGapsLen    int
}

// NewAllocator creates an empty node arena.
func NewAllocator() *Allocator {
	return &Allocator{
		storage: []node{},
		gaps:    map[uint32]bool{},
	}
}

// Size returns the number of slots, including released ones and the reserved
// slot zero.
func (allocator *Allocator) Size() int {
	return len(allocator.storage)
}

// Used returns the number of live nodes.
func (allocator *Allocator) Used() int {
	allocator.mustBeAwake()

	if len(allocator.storage) == 0 {
		return 0
	}

	return len(allocator.storage) - len(allocator.gaps) - 1
}

// Hibernated reports whether the storage is currently compressed.
func (allocator *Allocator) Hibernated() bool {
	return allocator.storage == nil
}

// ArenaBytes returns the memory reserved by the live storage.
func (allocator *Allocator) ArenaBytes() uint64 {
	return safeconv.MustIntToUint64(cap(allocator.storage)) * nodeSize
}

// HibernatedBytes returns the size of the compressed columns.
func (allocator *Allocator) HibernatedBytes() uint64 {
	var total uint64

	for _, data := range allocator.hibernatedData {
		total += safeconv.MustIntToUint64(len(data))
	}

	return total
}

// Clone copies the allocator. Handles into the original stay bound to it;
// use Node.In to address the same index in the clone.
func (allocator *Allocator) Clone() *Allocator {
	allocator.mustBeAwake()

	clone := &Allocator{
		HibernationThreshold: allocator.HibernationThreshold,
		storage:              make([]node, len(allocator.storage), cap(allocator.storage)),
		gaps:                 make(map[uint32]bool, len(allocator.gaps)),
	}
	copy(clone.storage, allocator.storage)
	maps.Copy(clone.gaps, allocator.gaps)

	return clone
}

// Hibernate compresses the arena column by column. Allocators smaller than
// HibernationThreshold are left untouched.
func (allocator *Allocator) Hibernate() {
	if allocator.Hibernated() {
		panic("cannot hibernate an already hibernated allocator")
	}

	if len(allocator.storage) < allocator.HibernationThreshold {
		return
	}

	count := len(allocator.storage)
	wide := [2][]uint64{make([]uint64, count), make([]uint64, count)}
	narrow := [4][]uint32{}

	for idx := range narrow {
		narrow[idx] = make([]uint32, count)
	}

	// Deinterleaving gives LZ4 long runs of similar values.
	for idx, nd := range allocator.storage {
		wide[0][idx] = uint64(nd.label)
		wide[1][idx] = uint64(nd.value)
		narrow[0][idx] = nd.parent
		narrow[1][idx] = nd.left
		narrow[2][idx] = nd.right
		narrow[3][idx] = uint32(nd.color)
	}

	gaps := make([]uint32, 0, len(allocator.gaps))
	for key := range allocator.gaps {
		gaps = append(gaps, key)
	}

	allocator.hibernatedStorageLen = count
	allocator.hibernatedGapsLen = len(gaps)
	allocator.storage = nil
	allocator.gaps = nil

	wg := &sync.WaitGroup{}
	wg.Add(len(wide) + len(narrow) + 1)

	for idx, buf := range wide {
		go func(col int, data []uint64) {
			defer wg.Done()

			allocator.hibernatedData[col] = CompressSlice(data)
		}(colLabel+idx, buf)
	}

	for idx, buf := range narrow {
		go func(col int, data []uint32) {
			defer wg.Done()

			allocator.hibernatedData[col] = CompressSlice(data)
		}(colParent+idx, buf)
	}

	go func() {
		defer wg.Done()

		allocator.hibernatedData[columnCount] = CompressSlice(gaps)
	}()

	wg.Wait()
}

// Boot restores storage compressed by Hibernate. Booting an awake allocator
// does nothing.
func (allocator *Allocator) Boot() error {
	if !allocator.Hibernated() {
		return nil
	}

	count := allocator.hibernatedStorageLen
	wide := [2][]uint64{make([]uint64, count), make([]uint64, count)}
	narrow := [4][]uint32{}

	for idx := range narrow {
		narrow[idx] = make([]uint32, count)
	}

	gaps := make([]uint32, allocator.hibernatedGapsLen)
	errs := make([]error, columnCount+1)

	wg := &sync.WaitGroup{}
	wg.Add(len(wide) + len(narrow) + 1)

	for idx := range wide {
		go func(col int) {
			defer wg.Done()

			errs[col] = DecompressSlice(allocator.hibernatedData[col], wide[col-colLabel])
		}(colLabel + idx)
	}

	for idx := range narrow {
		go func(col int) {
			defer wg.Done()

			errs[col] = DecompressSlice(allocator.hibernatedData[col], narrow[col-colParent])
		}(colParent + idx)
	}

	go func() {
		defer wg.Done()

		errs[columnCount] = DecompressSlice(allocator.hibernatedData[columnCount], gaps)
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	storage := make([]node, count, (count*growCapacityNumerator)/growCapacityDenominator)

	for idx := range storage {
		storage[idx] = node{
			label:  int(wide[0][idx]),
			value:  int(wide[1][idx]),
			parent: narrow[0][idx],
			left:   narrow[1][idx],
			right:  narrow[2][idx],
			color:  Color(narrow[3][idx]),
		}
	}

	allocator.gaps = make(map[uint32]bool, len(gaps))
	for _, key := range gaps {
		allocator.gaps[key] = true
	}

	allocator.storage = storage
	allocator.hibernatedData = [columnCount + 1][]byte{}
	allocator.hibernatedStorageLen = 0
	allocator.hibernatedGapsLen = 0

	return nil
}

func (allocator *Allocator) mustBeAwake() {
	if allocator.Hibernated() {
		panic("hibernated allocators cannot be used")
	}
}

func (allocator *Allocator) malloc(label, value int) uint32 {
	allocator.mustBeAwake()

	fresh := node{label: label, value: value}

	if len(allocator.gaps) > 0 {
		var key uint32

		for key = range allocator.gaps {
			break
		}

		delete(allocator.gaps, key)
		allocator.storage[key] = fresh

		return key
	}

	if len(allocator.storage) == 0 {
		// Zero is reserved.
		allocator.storage = append(allocator.storage, node{})
	}

	nodeLen := len(allocator.storage)
	if safeconv.MustIntToUint64(nodeLen) > uint64(maxNodes) {
		panic("node arena exhausted the uint32 index space")
	}

	allocator.storage = append(allocator.storage, fresh)

	return safeconv.MustIntToUint32(nodeLen)
}

func (allocator *Allocator) free(nodeIdx uint32) {
	allocator.mustBeAwake()

	if nodeIdx == 0 {
		panic("node #0 is reserved and cannot be released")
	}

	if allocator.gaps[nodeIdx] {
		panic("node released twice")
	}

	allocator.storage[nodeIdx] = node{}
	allocator.gaps[nodeIdx] = true
}
