// Package offsets maps between UTF-16 code-unit offsets and UTF-8 byte
// offsets for a single subject string.
//
// Callers index subjects by UTF-16 code unit (one unit per rune in the basic
// plane, two units for a supplementary-plane rune), while the match engines
// operate on the UTF-8 byte encoding. A Map records the byte offset of every
// code unit and supports the reverse lookup for byte offsets reported by an
// engine.
//
// The strict lookups panic on out-of-range or unaligned offsets: engines
// contractually report offsets on code point boundaries only, so a violation
// indicates a broken engine, not a recoverable condition.
package offsets

import "sort"

// Map is the offset table for one subject. It is immutable after
// construction and safe for concurrent readers.
type Map struct {
	// unitToByte[i] is the byte offset of code unit i. Both units of a
	// surrogate pair record the starting byte offset of their rune. The
	// final entry is the total byte length of the subject.
	unitToByte []int
}

// NewMap builds the offset table for s in a single forward scan.
//
// Invalid UTF-8 bytes count as one code unit of one byte each, so the table
// stays consistent with the raw bytes handed to the engine.
func NewMap(s string) *Map {
	unitToByte := make([]int, 0, len(s)+1)
	for i, r := range s {
		unitToByte = append(unitToByte, i)
		if r > 0xFFFF {
			// Low surrogate shares the rune's starting byte offset.
			unitToByte = append(unitToByte, i)
		}
	}
	unitToByte = append(unitToByte, len(s))
	return &Map{unitToByte: unitToByte}
}

// Units returns the subject length in UTF-16 code units.
func (m *Map) Units() int {
	return len(m.unitToByte) - 1
}

// Bytes returns the subject length in bytes.
func (m *Map) Bytes() int {
	return m.unitToByte[len(m.unitToByte)-1]
}

// ByteOffset returns the byte offset of code unit i. The index m.Units() is
// valid and maps to the byte length, so half-open unit ranges convert
// directly to half-open byte ranges.
func (m *Map) ByteOffset(unit int) int {
	if unit < 0 || unit >= len(m.unitToByte) {
		panic("offsets: code unit index out of range")
	}
	return m.unitToByte[unit]
}

// UnitOffset returns the code unit index whose recorded byte offset equals
// byteOff. For a surrogate pair the high surrogate's index is returned, so
// the result never splits a pair. Panics if byteOff is not on a code point
// boundary.
func (m *Map) UnitOffset(byteOff int) int {
	i := sort.SearchInts(m.unitToByte, byteOff)
	if i == len(m.unitToByte) || m.unitToByte[i] != byteOff {
		panic("offsets: byte offset not on a code unit boundary")
	}
	return i
}

// UnitOffsetFloor returns the index of the code unit containing byteOff,
// clamped to [0, Units()]. Unlike UnitOffset it tolerates unaligned input;
// it exists for translating engine-reported pattern error offsets, which are
// not guaranteed to sit on a character boundary.
func (m *Map) UnitOffsetFloor(byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	if byteOff >= m.Bytes() {
		return m.Units()
	}
	i := sort.SearchInts(m.unitToByte, byteOff)
	if i < len(m.unitToByte) && m.unitToByte[i] == byteOff {
		return i
	}
	return i - 1
}
