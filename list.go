package samizdat

import (
	"strings"

	"golang.org/x/exp/slices"
)

// List is a flat, immutable array of values (spec.md §4.4.1). Every
// operation returns a new List; nothing mutates an existing one.
type List struct {
	Header
	items []Value
}

func (l *List) header() *Header { return &l.Header }

var emptyList *List

func initListSingletons() {
	emptyList = &List{}
	register(emptyList, clsList)
	Immortalize(emptyList)
}

func newListFromSlice(items []Value) *List {
	if len(items) == 0 {
		return emptyList
	}
	l := &List{items: items}
	register(l, clsList)
	return l
}

// ListFromArray copies items into a new List.
func ListFromArray(items []Value) *List {
	if len(items) == 0 {
		return emptyList
	}
	return newListFromSlice(slices.Clone(items))
}

// ArrayOfList returns a copy of l's backing array, for the round-trip
// property `listFromArray(arrayOfList(l)) == l` (spec.md §8).
func ArrayOfList(l *List) []Value {
	return slices.Clone(l.items)
}

func (l *List) Size() int { return len(l.items) }

func (l *List) Nth(i int) Value {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Put returns a new list with index i set to v: a replacement if i is an
// existing index, an append if i == size(l) (spec.md §4.4.1).
func (l *List) Put(i int, v Value) *List {
	switch {
	case i >= 0 && i < len(l.items):
		next := slices.Clone(l.items)
		next[i] = v
		return newListFromSlice(next)
	case i == len(l.items):
		next := make([]Value, len(l.items)+1)
		copy(next, l.items)
		next[i] = v
		return newListFromSlice(next)
	default:
		fatalf("list put: index %d out of range for size %d", i, len(l.items))
		return nil
	}
}

// Del returns a new list with the element at index i removed.
func (l *List) Del(i int) *List {
	if i < 0 || i >= len(l.items) {
		fatalf("list del: index %d out of range for size %d", i, len(l.items))
	}
	next := slices.Delete(slices.Clone(l.items), i, i+1)
	return newListFromSlice(next)
}

func (l *List) SliceExclusive(start, end int) *List {
	if start < 0 {
		start = 0
	}
	if end > len(l.items) {
		end = len(l.items)
	}
	if start >= end {
		return emptyList
	}
	return newListFromSlice(slices.Clone(l.items[start:end]))
}

func (l *List) SliceInclusive(start, end int) *List {
	return l.SliceExclusive(start, end+1)
}

func (l *List) Reverse() *List {
	if len(l.items) == 0 {
		return emptyList
	}
	rev := make([]Value, len(l.items))
	for i, v := range l.items {
		rev[len(l.items)-1-i] = v
	}
	return newListFromSlice(rev)
}

// Cat concatenates two lists.
func (l *List) Cat(other *List) *List {
	if len(l.items) == 0 {
		return other
	}
	if len(other.items) == 0 {
		return l
	}
	combined := make([]Value, 0, len(l.items)+len(other.items))
	combined = append(combined, l.items...)
	combined = append(combined, other.items...)
	return newListFromSlice(combined)
}

// Collect applies fn to every element, dropping elements for which fn
// returns void (nil) — the filter-map operation from spec.md §4.4.1.
func (l *List) Collect(fn func(Value) Value) *List {
	result := make([]Value, 0, len(l.items))
	for _, v := range l.items {
		if mapped := fn(v); mapped != nil {
			result = append(result, mapped)
		}
	}
	return newListFromSlice(result)
}

func (l *List) GCMark() {
	for _, v := range l.items {
		Mark(v)
	}
}

// TotalOrder is pairwise comparison with the shorter prefix winning —
// lexicographic order, same shape as String.TotalOrder (spec.md §4.4.1).
func (l *List) TotalOrder(other Value) Ordering {
	o, ok := other.(*List)
	if !ok {
		fatalf("List.TotalOrder: not a list: %s", DebugString(other))
	}
	n := len(l.items)
	if len(o.items) < n {
		n = len(o.items)
	}
	for i := 0; i < n; i++ {
		if ord := TotalOrder(l.items[i], o.items[i]); ord != OrderEqual {
			return ord
		}
	}
	return orderInt(len(l.items), len(o.items))
}

func (l *List) DebugString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(DebugString(v))
	}
	b.WriteByte(']')
	return b.String()
}
