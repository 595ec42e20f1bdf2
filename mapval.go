package samizdat

import (
	"sort"
	"strings"
)

// mapping is one (key, value) pair in a Map's sorted backing array.
type mapping struct {
	key, value Value
}

// Map is a sorted array of (key, value) mappings (spec.md §4.4.2). Lookup
// uses binary search; a process-wide lookup cache accelerates repeats.
type Map struct {
	Header
	entries []mapping
}

func (m *Map) header() *Header { return &m.Header }

var emptyMap *Map

func initMapSingletons() {
	emptyMap = &Map{}
	register(emptyMap, clsMap)
	Immortalize(emptyMap)
}

func newMapFromSorted(entries []mapping) *Map {
	if len(entries) == 0 {
		return emptyMap
	}
	m := &Map{entries: entries}
	register(m, clsMap)
	return m
}

// MapFromArray builds a Map from arbitrary mappings: sorts stably by key
// and collapses duplicate keys, keeping the last value for each
// (spec.md §4.4.2).
func MapFromArray(mappings []mapping) *Map {
	if len(mappings) == 0 {
		return emptyMap
	}
	sorted := make([]mapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return TotalOrder(sorted[i].key, sorted[j].key) == OrderLess
	})

	collapsed := make([]mapping, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		// Within a run of equal keys, the last one (in original
		// relative order, preserved by the stable sort) wins.
		j := i
		for j+1 < len(sorted) && TotalEq(sorted[j+1].key, sorted[i].key) {
			j++
		}
		collapsed = append(collapsed, sorted[j])
		i = j
	}
	return newMapFromSorted(collapsed)
}

// MapFromPairs builds a Map from parallel key/value slices — the
// externally usable analog of MapFromArray for callers outside this
// package, which cannot construct the unexported mapping type directly.
func MapFromPairs(keys, values []Value) *Map {
	if len(keys) != len(values) {
		fatalf("mapFromPairs: mismatched key/value counts (%d, %d)", len(keys), len(values))
	}
	pairs := make([]mapping, len(keys))
	for i := range keys {
		pairs[i] = mapping{keys[i], values[i]}
	}
	return MapFromArray(pairs)
}

func (m *Map) Size() int { return len(m.entries) }

func (m *Map) findIndex(k Value) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return TotalOrder(m.entries[i].key, k) != OrderLess
	})
	if i < len(m.entries) && TotalEq(m.entries[i].key, k) {
		return i, true
	}
	return i, false
}

// Get returns the value last written for k, or void (nil) if never
// written (spec.md §8).
func (m *Map) Get(k Value) Value {
	if v, ok := mapCacheLookup(m, k); ok {
		return v
	}
	i, found := m.findIndex(k)
	if !found {
		return nil
	}
	v := m.entries[i].value
	mapCacheStore(m, k, v)
	return v
}

// Put returns a new map with k bound to v.
func (m *Map) Put(k, v Value) *Map {
	i, found := m.findIndex(k)
	next := make([]mapping, len(m.entries), len(m.entries)+1)
	copy(next, m.entries)
	if found {
		next[i] = mapping{k, v}
		return newMapFromSorted(next)
	}
	next = append(next, mapping{})
	copy(next[i+1:], next[i:len(next)-1])
	next[i] = mapping{k, v}
	return newMapFromSorted(next)
}

// Del returns a new map with k removed, a no-op if k was not present.
func (m *Map) Del(k Value) *Map {
	i, found := m.findIndex(k)
	if !found {
		return m
	}
	next := make([]mapping, 0, len(m.entries)-1)
	next = append(next, m.entries[:i]...)
	next = append(next, m.entries[i+1:]...)
	return newMapFromSorted(next)
}

// Cat merges other into m, with other's values winning on key collision.
func (m *Map) Cat(other *Map) *Map {
	if len(other.entries) == 0 {
		return m
	}
	if len(m.entries) == 0 {
		return other
	}
	combined := make([]mapping, 0, len(m.entries)+len(other.entries))
	combined = append(combined, m.entries...)
	combined = append(combined, other.entries...)
	return MapFromArray(combined)
}

// Keys returns the sorted key list, used by TotalOrder/TotalEq and by
// debug printing.
func (m *Map) Keys() *List {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return ListFromArray(keys)
}

func (m *Map) Values() *List {
	values := make([]Value, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.value
	}
	return ListFromArray(values)
}

func (m *Map) GCMark() {
	for _, e := range m.entries {
		Mark(e.key)
		Mark(e.value)
	}
}

// TotalOrder is (size, then key-list lexicographic, then value-list
// lexicographic), per spec.md §4.4.2.
func (m *Map) TotalOrder(other Value) Ordering {
	o, ok := other.(*Map)
	if !ok {
		fatalf("Map.TotalOrder: not a map: %s", DebugString(other))
	}
	if ord := orderInt(len(m.entries), len(o.entries)); ord != OrderEqual {
		return ord
	}
	if ord := TotalOrder(m.Keys(), o.Keys()); ord != OrderEqual {
		return ord
	}
	return TotalOrder(m.Values(), o.Values())
}

func (m *Map) DebugString() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(DebugString(e.key))
		b.WriteString(": ")
		b.WriteString(DebugString(e.value))
	}
	b.WriteByte('}')
	return b.String()
}
