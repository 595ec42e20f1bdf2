package samizdat

import (
	"encoding/binary"
	"unsafe"

	"github.com/dchest/siphash"
)

// The map lookup cache accelerates repeated get(m, k) calls with a
// fixed-size, direct-mapped table hashed on the pair (map pointer, key
// pointer), exactly as original_source/samex-naif/dat/LookupCache.c does.
// It is best-effort: a collision simply evicts the older entry, and a
// miss falls back to binary search (spec.md §4.4.2, §7).
type mapCacheEntry struct {
	mapPtr, keyPtr uintptr
	value          Value
	valid          bool
}

var mapLookupCache []mapCacheEntry

// siphash keys: arbitrary fixed constants, not a secret — this cache is a
// performance accelerator, not a security boundary.
const cacheHashKey0, cacheHashKey1 = 0x73616d697a646174, 0x6c6f6f6b75706361

func initMapCache() {
	mapLookupCache = make([]mapCacheEntry, NewConfig().MapCacheSize)
}

// ptrOf returns a hashable identity for a heap value. The resulting
// uintptr feeds the cache hash, is stored in cache entries (the whole
// cache is cleared on every collection), and serves as the identity
// order of boxes, builtins, closures, and jumps.
func ptrOf(v Value) uintptr {
	return uintptr(unsafe.Pointer(v.header()))
}

func mapCacheSlot(m *Map, k Value) *mapCacheEntry {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(ptrOf(m)))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(ptrOf(k)))
	h := siphash.Hash(cacheHashKey0, cacheHashKey1, buf[:])
	return &mapLookupCache[h%uint64(len(mapLookupCache))]
}

func mapCacheLookup(m *Map, k Value) (Value, bool) {
	e := mapCacheSlot(m, k)
	if e.valid && e.mapPtr == ptrOf(m) && e.keyPtr == ptrOf(k) {
		return e.value, true
	}
	return nil, false
}

func mapCacheStore(m *Map, k, v Value) {
	e := mapCacheSlot(m, k)
	*e = mapCacheEntry{mapPtr: ptrOf(m), keyPtr: ptrOf(k), value: v, valid: true}
}

func clearMapLookupCache() {
	for i := range mapLookupCache {
		mapLookupCache[i] = mapCacheEntry{}
	}
}

// lookupCacheSingleton is a content-free immortal value whose sole
// purpose is to have its GCMark invoked on every collection; we use that
// as the trigger to invalidate the whole cache, since pointers we might
// have cached could otherwise refer to since-collected values (spec.md
// §4.1, §5). This mirrors LookupCache.c's gcMark-as-side-effect trick
// exactly.
type lookupCacheSingleton struct {
	Header
}

func (l *lookupCacheSingleton) header() *Header { return &l.Header }
func (l *lookupCacheSingleton) GCMark()         { clearMapLookupCache() }
func (l *lookupCacheSingleton) TotalOrder(other Value) Ordering {
	if _, ok := other.(*lookupCacheSingleton); ok {
		return OrderEqual
	}
	fatalf("lookupCacheSingleton.TotalOrder: not a lookup cache: %s", DebugString(other))
	return OrderEqual
}
func (l *lookupCacheSingleton) DebugString() string { return "@@LookupCache{}" }

func initLookupCacheSingleton() {
	s := &lookupCacheSingleton{}
	register(s, clsLookupCache)
	Immortalize(s)
}
