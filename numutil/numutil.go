// Package numutil provides small overflow-checked integer helpers used by
// the database and runtime packages to validate section bounds, pool
// bounds and instance region sizes without silently wrapping on a
// corrupted archive.
package numutil

import "math/bits"

// Integer limit values, used when validating section sizes and indices
// read from an archive header.
const (
	MaxInt32  = 1<<31 - 1
	MaxUint32 = 1<<32 - 1
)

// SafeAdd returns x+y and whether the addition overflowed a uint64.
func SafeAdd(x, y uint64) (sum uint64, overflow bool) {
	sum, carryOut := bits.Add64(x, y, 0)
	return sum, carryOut != 0
}

// SafeMul returns x*y and whether the multiplication overflowed a uint64.
func SafeMul(x, y uint64) (product uint64, overflow bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi != 0
}

// InRangeU32 reports whether v fits in a uint32 (v <= MaxUint32).
// MaxUint32 itself counts as in range.
func InRangeU32(v uint64) bool {
	return v <= MaxUint32
}
