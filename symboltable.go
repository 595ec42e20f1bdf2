package samizdat

import (
	"sort"
	"strings"
)

// SymbolTable is an immutable open-addressed hash table mapping Symbol to
// Value, per original_source/samex-naif/dat/SymbolTable.c: linear probing
// with a small max-probe budget, reallocating on overflow rather than
// probing forever (spec.md §4.4.3). We probe on the symbol's own interned
// index — already a dense, unique small integer — rather than hashing it
// again, matching the reference's literal `index mod arraySize` scheme.
type SymbolTable struct {
	Header
	slots []symtabSlot // sparse, arraySize long
	count int
}

type symtabSlot struct {
	key   *Symbol
	value Value
	used  bool
}

func (t *SymbolTable) header() *Header { return &t.Header }

var emptySymbolTable *SymbolTable

func initSymbolTableSingletons() {
	emptySymbolTable = &SymbolTable{}
	register(emptySymbolTable, clsSymbolTable)
	Immortalize(emptySymbolTable)
}

func symtabMinSize() int     { return NewConfig().SymbolTableMinSize }
func symtabScaleFactor() int { return NewConfig().SymbolTableScaleFactor }
func symtabMaxProbe() int    { return NewConfig().SymbolTableMaxProbe }

// arraySizeFor mirrors the reference's construction-time sizing formula:
// minSize + size*scaleFactor (spec.md §4.4.3).
func arraySizeFor(size int) int {
	return symtabMinSize() + size*symtabScaleFactor()
}

func newEmptySymbolTable(arraySize int) *SymbolTable {
	t := &SymbolTable{slots: make([]symtabSlot, arraySize)}
	register(t, clsSymbolTable)
	return t
}

// probe finds key's slot, linear-probing from its index modulo the array
// size up to the configured max-probe budget. ok is false if the budget
// is exhausted without finding key or an empty slot (the caller must then
// grow and reinsert).
func (t *SymbolTable) probe(key *Symbol) (slot int, found, ok bool) {
	n := len(t.slots)
	if n == 0 {
		return 0, false, false
	}
	start := key.index % n
	limit := symtabMaxProbe()
	if limit > n {
		limit = n
	}
	for i := 0; i < limit; i++ {
		idx := (start + i) % n
		s := &t.slots[idx]
		if !s.used {
			return idx, false, true
		}
		if s.key == key {
			return idx, true, true
		}
	}
	return 0, false, false
}

// SymbolTableFromArray builds a table from (key, value) pairs, last write
// wins for duplicate keys.
func SymbolTableFromArray(keys []*Symbol, values []Value) *SymbolTable {
	if len(keys) != len(values) {
		fatalf("symbolTableFromArray: mismatched key/value counts (%d, %d)", len(keys), len(values))
	}
	if len(keys) == 0 {
		return emptySymbolTable
	}
	t := newEmptySymbolTable(arraySizeFor(len(keys)))
	for i, k := range keys {
		t.insert(k, values[i])
	}
	return t
}

// insert is only ever called on a freshly allocated, not-yet-published
// table during construction — SymbolTable is otherwise immutable.
func (t *SymbolTable) insert(key *Symbol, value Value) {
	for {
		idx, found, ok := t.probe(key)
		if !ok {
			t.grow()
			continue
		}
		if !found {
			t.count++
		}
		t.slots[idx] = symtabSlot{key: key, value: value, used: true}
		return
	}
}

func (t *SymbolTable) grow() {
	next := make([]symtabSlot, len(t.slots)*symtabScaleFactor())
	old := t.slots
	t.slots = next
	t.count = 0
	for _, s := range old {
		if s.used {
			t.insert(s.key, s.value)
		}
	}
}

func (t *SymbolTable) Size() int { return t.count }

// Get returns the value bound to key, or void (nil) if absent.
func (t *SymbolTable) Get(key *Symbol) Value {
	idx, found, ok := t.probe(key)
	if !ok || !found {
		return nil
	}
	return t.slots[idx].value
}

// Put returns a new table with key bound to value.
func (t *SymbolTable) Put(key *Symbol, value Value) *SymbolTable {
	keys, values := t.sortedEntries()
	keys = append(keys, key)
	values = append(values, value)
	return SymbolTableFromArray(keys, values)
}

// Del returns a new table with key removed, a no-op if absent.
func (t *SymbolTable) Del(key *Symbol) *SymbolTable {
	if t.Get(key) == nil {
		return t
	}
	keys, values := t.sortedEntries()
	next := make([]*Symbol, 0, len(keys))
	nextVals := make([]Value, 0, len(values))
	for i, k := range keys {
		if k != key {
			next = append(next, k)
			nextVals = append(nextVals, values[i])
		}
	}
	return SymbolTableFromArray(next, nextVals)
}

// Cat merges other into t, with other's bindings winning on collision.
func (t *SymbolTable) Cat(other *SymbolTable) *SymbolTable {
	keys, values := t.sortedEntries()
	okeys, ovalues := other.sortedEntries()
	keys = append(keys, okeys...)
	values = append(values, ovalues...)
	return SymbolTableFromArray(keys, values)
}

// sortedEntries returns the table's (key, value) pairs ordered by
// Symbol.TotalOrder (interned before anonymous, then name, then index),
// used for TotalOrder, debug printing, and as the base
// for Put/Del/Cat's rebuild-from-scratch approach (tables are small and
// rebuilding avoids ever mutating a published table).
func (t *SymbolTable) sortedEntries() ([]*Symbol, []Value) {
	keys := make([]*Symbol, 0, t.count)
	values := make([]Value, 0, t.count)
	for _, s := range t.slots {
		if s.used {
			keys = append(keys, s.key)
			values = append(values, s.value)
		}
	}
	sort.Sort(&symtabSortHelper{keys, values})
	return keys, values
}

type symtabSortHelper struct {
	keys   []*Symbol
	values []Value
}

func (h *symtabSortHelper) Len() int { return len(h.keys) }
func (h *symtabSortHelper) Less(i, j int) bool {
	return TotalOrder(h.keys[i], h.keys[j]) == OrderLess
}
func (h *symtabSortHelper) Swap(i, j int) {
	h.keys[i], h.keys[j] = h.keys[j], h.keys[i]
	h.values[i], h.values[j] = h.values[j], h.values[i]
}

// Keys returns the sorted key list.
func (t *SymbolTable) Keys() *List {
	keys, _ := t.sortedEntries()
	vals := make([]Value, len(keys))
	for i, k := range keys {
		vals[i] = k
	}
	return ListFromArray(vals)
}

func (t *SymbolTable) Values() *List {
	_, values := t.sortedEntries()
	return ListFromArray(values)
}

func (t *SymbolTable) GCMark() {
	for _, s := range t.slots {
		if s.used {
			Mark(s.key)
			Mark(s.value)
		}
	}
}

// TotalOrder is size, then sorted key-list, then corresponding values
// (spec.md §4.4.3).
func (t *SymbolTable) TotalOrder(other Value) Ordering {
	o, ok := other.(*SymbolTable)
	if !ok {
		fatalf("SymbolTable.TotalOrder: not a symbol table: %s", DebugString(other))
	}
	if ord := orderInt(t.count, o.count); ord != OrderEqual {
		return ord
	}
	if ord := TotalOrder(t.Keys(), o.Keys()); ord != OrderEqual {
		return ord
	}
	return TotalOrder(t.Values(), o.Values())
}

func (t *SymbolTable) DebugString() string {
	keys, values := t.sortedEntries()
	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(DebugString(k))
		b.WriteString(": ")
		b.WriteString(DebugString(values[i]))
	}
	b.WriteString("}")
	return b.String()
}
