package samizdat

// Value is the capability every heap-allocated Samizdat datum implements.
// The source's open-ended class-plus-method-table pattern is mapped onto
// this interface for the handful of operations the interpreter needs to
// invoke without going through full symbol dispatch (gcMark, ordering,
// equality, debug printing); method calls proper are routed through the
// class's method table (see class.go), not through Go interface dispatch.
type Value interface {
	header() *Header

	// GCMark is invoked by the collector on every value reached from a
	// root. Implementations must mark every Value they own.
	GCMark()

	// TotalOrder compares this value against another of the *same*
	// class. Cross-class comparisons are resolved by the package-level
	// TotalOrder (via Class.TotalOrder) before this is ever called.
	TotalOrder(other Value) Ordering

	// DebugString renders a short diagnostic form, analogous to the
	// reference's debugString method.
	DebugString() string
}

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	OrderLess    Ordering = -1
	OrderEqual   Ordering = 0
	OrderGreater Ordering = 1
)

func orderInt(a, b int) Ordering {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

func orderInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

// ClassOf returns v's class. Every live value has a non-nil class (§3.1).
func ClassOf(v Value) *Class {
	if v == nil {
		return nil
	}
	return v.header().class
}

// HasClass reports whether c appears in v's class chain. hasClass(v, Value)
// is always true per the testable property in spec.md §8 — every built-in
// class we define ultimately descends from clsValue.
func HasClass(v Value, c *Class) bool {
	for cur := ClassOf(v); cur != nil; cur = cur.parent {
		if cur == c {
			return true
		}
	}
	return false
}

// TotalOrder is the universal cross-type ordering (spec.md §3.4, §8): void
// sorts before everything, then by class order, then by the class's own
// TotalOrder for same-class pairs.
func TotalOrder(a, b Value) Ordering {
	if a == nil && b == nil {
		return OrderEqual
	}
	if a == nil {
		return OrderLess
	}
	if b == nil {
		return OrderGreater
	}
	ca, cb := ClassOf(a), ClassOf(b)
	if ca != cb {
		return ca.TotalOrder(cb)
	}
	return a.TotalOrder(b)
}

// TotalEq is totalOrder(a, b) == OrderEqual, spelled out because it is used
// pervasively and benefits from not allocating an Ordering at call sites.
func TotalEq(a, b Value) bool {
	return TotalOrder(a, b) == OrderEqual
}

// DebugString renders v for diagnostics, treating void (nil) specially
// since it has no class to dispatch on.
func DebugString(v Value) string {
	if v == nil {
		return "void"
	}
	return v.DebugString()
}

// Sequence is implemented by the core's two sequential containers, List
// and String, mirroring original_source's Sequence.c capability shared by
// both. size(v) and nth(v, i) dispatch through this instead of a method
// table, per the "tagged sum the interpreter short-circuits" design note.
type Sequence interface {
	Value
	Size() int
	// Nth returns the element at index i, or nil (void) if i is out of
	// bounds — nth(s, i) is void iff i < 0 || i >= size(s) (spec.md §8).
	Nth(i int) Value
}

// Size dispatches size(v) for any container class the core defines.
func Size(v Value) int {
	switch t := v.(type) {
	case Sequence:
		return t.Size()
	case *Map:
		return t.Size()
	case *SymbolTable:
		return t.Size()
	default:
		fatalf("size: value has no size: %s", DebugString(v))
		return 0
	}
}

// Nth dispatches nth(v, i) for the sequential container classes.
func Nth(v Value, i int) Value {
	seq, ok := v.(Sequence)
	if !ok {
		fatalf("nth: not a sequence: %s", DebugString(v))
	}
	return seq.Nth(i)
}

// Get dispatches get(v, k) for the associative container classes.
func Get(v Value, k Value) Value {
	switch t := v.(type) {
	case *Map:
		return t.Get(k)
	case *SymbolTable:
		sym, ok := k.(*Symbol)
		if !ok {
			fatalf("get: SymbolTable key must be a Symbol, got %s", DebugString(k))
		}
		return t.Get(sym)
	case *Record:
		sym, ok := k.(*Symbol)
		if !ok {
			fatalf("get: Record key must be a Symbol, got %s", DebugString(k))
		}
		return t.payload.Get(sym)
	default:
		fatalf("get: value is not associative: %s", DebugString(v))
		return nil
	}
}
