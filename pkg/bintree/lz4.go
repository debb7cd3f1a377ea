package bintree

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// ErrCorruptColumn is returned when a compressed column cannot be restored.
var ErrCorruptColumn = errors.New("corrupt compressed column")

// Block tags. LZ4 reports incompressible input by writing nothing, in which
// case the column is kept verbatim.
const (
	blockRaw byte = iota
	blockLZ4
)

// column is the set of element types an arena column can be stored as.
type column interface {
	~uint32 | ~uint64
}

// CompressSlice packs a slice of fixed-width integers, LZ4-compressed when
// that makes it smaller. Returns nil for an empty slice.
func CompressSlice[T column](data []T) []byte {
	if len(data) == 0 {
		return nil
	}

	buf := new(bytes.Buffer)

	writeErr := binary.Write(buf, binary.LittleEndian, data)
	if writeErr != nil {
		return nil
	}

	raw := buf.Bytes()
	packed := make([]byte, 1+lz4.CompressBlockBound(len(raw)))

	written, err := lz4.CompressBlock(raw, packed[1:], nil)
	if err != nil || written == 0 {
		return append([]byte{blockRaw}, raw...)
	}

	packed[0] = blockLZ4

	return packed[:1+written]
}

// DecompressSlice restores a slice previously packed by CompressSlice.
// `result` must be preallocated with the original length.
func DecompressSlice[T column](data []byte, result []T) error {
	if len(result) == 0 {
		return nil
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: empty block", ErrCorruptColumn)
	}

	var zero T

	expected := len(result) * binary.Size(zero)
	payload := data[1:]

	var decoded []byte

	switch data[0] {
	case blockRaw:
		decoded = payload
	case blockLZ4:
		decoded = make([]byte, expected)

		read, err := lz4.UncompressBlock(payload, decoded)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptColumn, err)
		}

		decoded = decoded[:read]
	default:
		return fmt.Errorf("%w: unknown block tag %d", ErrCorruptColumn, data[0])
	}

	if len(decoded) != expected {
		return fmt.Errorf("%w: %d bytes instead of %d", ErrCorruptColumn, len(decoded), expected)
	}

	err := binary.Read(bytes.NewReader(decoded), binary.LittleEndian, result)
	if err != nil {
		return fmt.Errorf("decode column: %w", err)
	}

	return nil
}
