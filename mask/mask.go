// Package mask provides operations to extract and manipulate individual
// bits of a byte.
//
// All byte indices must be 1-indexed.

package mask

import (
	_bits "math/bits"
)

// A byteIndex provides compile-time safety when indexing into a byte.
type byteIndex byte

const (
	I1 byteIndex = iota + 1
	I2
	I3
	I4
	I5
	I6
	I7
	I8
)

// https://pkg.go.dev/golang.org/x/text/internal/gen/bitfield
// https://cs.opensource.google/go/x/text/+/refs/tags/v0.18.0:internal/gen/bitfield/bitfield_test.go;l=16

// IsSet reports whether the bit at pos is 1.
func IsSet(b byte, pos byteIndex) bool {
	return b&(1<<(8-pos)) != 0
}

// Set ORs new bits into b, with the highest set bit of bits placed at
// pos (1-indexed). Existing bits of b are never cleared.
//
// If the new bits are zero, b is returned unchanged: Set only ever turns
// bits on.
//
// If the new bits cannot fit at the desired pos, the new bits will be
// truncated.
func Set(b byte, pos byteIndex, bits byte) byte {
	if bits == 0 {
		return b
	}
	bitlen := byte(_bits.LeadingZeros8(bits))
	bits <<= bitlen
	bits >>= pos - 1
	return b | bits
}

// EvenParity reports whether b has an even number of set bits.
func EvenParity(b byte) bool {
	return _bits.OnesCount8(b)%2 == 0
}
