package samizdat

import (
	"fmt"
	"math/bits"
)

// Int is a 64-bit signed integer value (spec.md §4.4.6). Small integers
// are cached as process-wide singletons (spec.md §3.4).
type Int struct {
	Header
	v int64
}

func (n *Int) header() *Header { return &n.Header }

const smallIntMin, smallIntMax = -256, 255

var smallIntCache [smallIntMax - smallIntMin + 1]*Int

// IntFromZint ("zint" in the reference is its native word-sized signed
// integer) wraps a Go int64 as an Int, returning a cached singleton for
// values in the small-integer range.
func IntFromZint(v int64) *Int {
	if v >= smallIntMin && v <= smallIntMax {
		idx := v - smallIntMin
		if cached := smallIntCache[idx]; cached != nil {
			return cached
		}
		n := &Int{v: v}
		register(n, clsInt)
		Immortalize(n)
		smallIntCache[idx] = n
		return n
	}
	n := &Int{v: v}
	register(n, clsInt)
	return n
}

// ZintFromInt unwraps an Int to a Go int64.
func ZintFromInt(n *Int) int64 { return n.v }

func (n *Int) GCMark() {}

func (n *Int) TotalOrder(other Value) Ordering {
	o, ok := other.(*Int)
	if !ok {
		fatalf("Int.TotalOrder: not an int: %s", DebugString(other))
	}
	return orderInt64(n.v, o.v)
}

func (n *Int) DebugString() string { return fmt.Sprintf("%d", n.v) }

// Add returns n+other, fatal on signed 64-bit overflow (spec.md §4.4.6,
// §7: "arithmetic overflow" is a bad-operation fatal).
func (n *Int) Add(other *Int) *Int {
	result := n.v + other.v
	if (n.v > 0 && other.v > 0 && result < 0) || (n.v < 0 && other.v < 0 && result >= 0) {
		fatalf("integer overflow: %d + %d", n.v, other.v)
	}
	return IntFromZint(result)
}

func (n *Int) Sub(other *Int) *Int {
	result := n.v - other.v
	if (other.v < 0 && result < n.v) || (other.v > 0 && result > n.v) {
		fatalf("integer overflow: %d - %d", n.v, other.v)
	}
	return IntFromZint(result)
}

func (n *Int) Mul(other *Int) *Int {
	// absInt64(minInt64) can't be represented as a positive int64 (it
	// returns minInt64 unchanged), so that one case has to be caught
	// before relying on the magnitude check below.
	if (n.v == minInt64 && other.v == -1) || (n.v == -1 && other.v == minInt64) {
		fatalf("integer overflow: %d * %d", n.v, other.v)
	}
	hi, lo := bits.Mul64(uint64(absInt64(n.v)), uint64(absInt64(other.v)))
	// A magnitude of exactly 2^63 fits only as a negative result.
	if hi != 0 || lo > 1<<63 || (lo == 1<<63 && (n.v < 0) == (other.v < 0)) {
		fatalf("integer overflow: %d * %d", n.v, other.v)
	}
	return IntFromZint(n.v * other.v)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Neg is unary negation, fatal on overflow (the single value with no
// positive counterpart, math.MinInt64).
func (n *Int) Neg() *Int {
	if n.v == minInt64 {
		fatalf("integer overflow: -(%d)", n.v)
	}
	return IntFromZint(-n.v)
}

const minInt64 = -1 << 63

// Abs is the absolute value, fatal on overflow for math.MinInt64.
func (n *Int) Abs() *Int {
	if n.v < 0 {
		return n.Neg()
	}
	return n
}

// Sign returns -1, 0, or 1.
func (n *Int) Sign() int {
	switch {
	case n.v < 0:
		return -1
	case n.v > 0:
		return 1
	default:
		return 0
	}
}

// EuDiv and EuMod implement Euclidean division: the remainder is always
// non-negative (spec.md §4.4.6).
func (n *Int) EuDiv(other *Int) *Int {
	if other.v == 0 {
		fatalf("division by zero")
	}
	q := n.v / other.v
	r := n.v % other.v
	if r < 0 {
		if other.v > 0 {
			q--
		} else {
			q++
		}
	}
	return IntFromZint(q)
}

func (n *Int) EuMod(other *Int) *Int {
	if other.v == 0 {
		fatalf("division by zero")
	}
	r := n.v % other.v
	if r < 0 {
		if other.v > 0 {
			r += other.v
		} else {
			r -= other.v
		}
	}
	return IntFromZint(r)
}

// Bitwise operations (original_source/samex-naif/dat/Bitwise.c), named
// explicitly in spec.md §4.4.6.
func (n *Int) And(other *Int) *Int { return IntFromZint(n.v & other.v) }
func (n *Int) Or(other *Int) *Int  { return IntFromZint(n.v | other.v) }
func (n *Int) Xor(other *Int) *Int { return IntFromZint(n.v ^ other.v) }
func (n *Int) Not() *Int           { return IntFromZint(^n.v) }

func (n *Int) Shl(bits int) *Int {
	if bits < 0 {
		return n.Shr(-bits)
	}
	if bits >= 64 {
		return IntFromZint(0)
	}
	return IntFromZint(n.v << uint(bits))
}

func (n *Int) Shr(bits int) *Int {
	if bits < 0 {
		return n.Shl(-bits)
	}
	if bits >= 64 {
		if n.v < 0 {
			return IntFromZint(-1)
		}
		return IntFromZint(0)
	}
	return IntFromZint(n.v >> uint(bits))
}

// IntToCodePointString converts a single-character Int code point into a
// one-character String, fatal on an out-of-range code point (spec.md
// §4.4.6: "Conversion to/from single-character strings").
func (n *Int) IntToCodePointString() *String {
	if n.v < 0 || n.v > 0x10FFFF {
		fatalf("invalid code point: %d", n.v)
	}
	return StringFromCodePoints([]rune{rune(n.v)})
}
