package samizdat

import "fmt"

// boxKind distinguishes the three Box subclasses, which otherwise share a
// single (value, canStore) payload (spec.md §4.5).
type boxKind int

const (
	boxKindCell boxKind = iota
	boxKindPromise
	boxKindResult
)

// Box is the shared representation of Cell, Promise, and Result: a single
// mutable (value, canStore) slot. Mutability here is the one deliberate
// exception to the "all non-identity types are immutable" rule (spec.md
// §3.4) — boxes are identity values, compared and ordered by pointer.
type Box struct {
	Header
	kind       boxKind
	value      Value
	canStore   bool
	nextServed bool
	thunk      func() Value
}

func (b *Box) header() *Header { return &b.Header }

// MakeCell returns a new, empty Cell: store always succeeds.
func MakeCell() *Box {
	b := &Box{kind: boxKindCell, canStore: true}
	register(b, clsCell)
	return b
}

// MakePromise returns a new, empty Promise: exactly one store succeeds.
func MakePromise() *Box {
	b := &Box{kind: boxKindPromise, canStore: true}
	register(b, clsPromise)
	return b
}

// MakeResult returns a Result already holding value: store always fails.
func MakeResult(value Value) *Box {
	b := &Box{kind: boxKindResult, value: value, canStore: false}
	register(b, clsResult)
	return b
}

// MakeLazy returns a Promise box whose value is computed by thunk the
// first time it is fetched, then frozen — the `lazy` @varDef box mode
// (spec.md §4.6.4) reuses Promise's single-assignment storage rather
// than adding a fourth Box subclass.
func MakeLazy(thunk func() Value) *Box {
	b := &Box{kind: boxKindPromise, canStore: true, thunk: thunk}
	register(b, clsPromise)
	return b
}

// Fetch returns the box's current payload (void before a Cell/Promise is
// ever stored to), forcing a lazy box's thunk on first read.
func (b *Box) Fetch() Value {
	if b.thunk != nil {
		t := b.thunk
		b.thunk = nil
		b.Store(t())
	}
	return b.value
}

// Store writes value into the box, per the per-kind rule (spec.md §4.5):
// Cell always accepts; Promise accepts exactly once; Result never does.
func (b *Box) Store(value Value) {
	switch b.kind {
	case boxKindCell:
		b.value = value
	case boxKindPromise:
		if !b.canStore {
			fatalf("store to promise that was already set")
		}
		b.value = value
		b.canStore = false
	case boxKindResult:
		fatalf("store to result")
	}
}

// NextValue implements the generator protocol's single-value read: it
// yields the box's payload once (forcing a lazy box's thunk, as Fetch
// does), then voids forever after.
func (b *Box) NextValue() Value {
	if b.nextServed {
		return nil
	}
	b.nextServed = true
	return b.Fetch()
}

func (b *Box) GCMark() {
	if b.value != nil {
		Mark(b.value)
	}
}

// TotalOrder for boxes is identity (spec.md §3.4 table): equal only to
// themselves, ordered by allocation-stable pointer identity otherwise so
// that TotalOrder remains a valid total order.
func (b *Box) TotalOrder(other Value) Ordering {
	o, ok := other.(*Box)
	if !ok {
		fatalf("Box.TotalOrder: not a box: %s", DebugString(other))
	}
	if b == o {
		return OrderEqual
	}
	return orderInt64(int64(ptrOf(b)), int64(ptrOf(o)))
}

func (b *Box) DebugString() string {
	name := map[boxKind]string{boxKindCell: "Cell", boxKindPromise: "Promise", boxKindResult: "Result"}[b.kind]
	return fmt.Sprintf("%s{%s}", name, DebugString(b.value))
}
