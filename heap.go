package samizdat

// headerMagic marks a live Header for heap-corruption sanity checks
// (spec.md §3.1: "heap validation detects ... wrong magic").
const headerMagic = 0x53414d5a // "SAMZ"

// Header is the fixed-size prefix every heap value embeds. It links the
// value into exactly one of the heap's two lists (live or doomed),
// carries the GC mark bit, and points at the value's class.
type Header struct {
	magic      uint32
	valid      bool
	marked     bool
	prev, next *Header
	owner      Value
	class      *Class
}

func (h *Header) checkValid() {
	if h == nil || h.magic != headerMagic || !h.valid {
		fatalf("corrupt or freed value header")
	}
}

// listInsertAfter splices h into the list immediately after sentinel.
func listInsertAfter(sentinel, h *Header) {
	h.next = sentinel.next
	h.prev = sentinel
	sentinel.next.prev = h
	sentinel.next = h
}

// listRemove unlinks h from whatever list it currently belongs to.
func listRemove(h *Header) {
	h.prev.next = h.next
	h.next.prev = h.prev
	h.prev, h.next = nil, nil
}

func newListSentinel() *Header {
	s := &Header{}
	s.next = s
	s.prev = s
	return s
}

// heap owns the live/doomed lists, the immortal set, and the thread-local
// (single-threaded, per spec.md §5) root stack used to safepoint
// temporaries across allocating operations.
type heap struct {
	live, doomed   *Header
	allocCount     int
	allocThreshold int
	maxImmortals   int
	maxStackDepth  int
	immortals      []Value
	stack          []Value
}

func newHeap(cfg *Config) *heap {
	return &heap{
		live:           newListSentinel(),
		doomed:         newListSentinel(),
		allocThreshold: cfg.GCAllocThreshold,
		maxImmortals:   cfg.GCMaxImmortals,
		maxStackDepth:  cfg.GCMaxStackDepth,
	}
}

// theHeap is the single process-wide heap (spec.md §5: "all state ... is
// process-local," single execution thread, no locking).
var theHeap = newHeap(NewConfig())

// register links a freshly constructed value into the live list, roots it
// on the stack (so an immediately-following allocation cannot collect it,
// per the ordering guarantee in spec.md §4.1), and triggers a collection
// if the allocation counter has crossed the configured threshold.
func register(v Value, class *Class) {
	hdr := v.header()
	hdr.magic = headerMagic
	hdr.valid = true
	hdr.owner = v
	hdr.class = class
	listInsertAfter(theHeap.live, hdr)

	pushRoot(v)

	theHeap.allocCount++
	if theHeap.allocCount >= theHeap.allocThreshold {
		CollectGarbage()
	}
}

func pushRoot(v Value) {
	if len(theHeap.stack) >= theHeap.maxStackDepth {
		fatalf("value stack depth exceeded (max %d)", theHeap.maxStackDepth)
	}
	theHeap.stack = append(theHeap.stack, v)
}

// FrameStart returns the current root-stack depth, to be passed to a later
// FrameReturn. Embedding code (and the closure call machinery) brackets
// potentially-allocating work with FrameStart/FrameReturn so intermediate
// temporaries don't outlive their usefulness as roots.
func FrameStart() int {
	return len(theHeap.stack)
}

// FrameReturn pops the root stack back to saved, then re-pushes result (if
// non-nil) so it survives as a rooted temporary in the caller, mirroring
// the reference's frameReturn contract exactly (spec.md §4.1).
func FrameReturn(saved int, result Value) Value {
	theHeap.stack = theHeap.stack[:saved]
	if result != nil {
		pushRoot(result)
	}
	return result
}

// Immortalize adds v to the permanent root set. Immortals are never
// collected; classes, cached singletons, and module-global constants are
// immortalized once at bootstrap.
func Immortalize(v Value) {
	if len(theHeap.immortals) >= theHeap.maxImmortals {
		fatalf("too many immortal values (max %d)", theHeap.maxImmortals)
	}
	theHeap.immortals = append(theHeap.immortals, v)
}

// Mark sets v's mark bit, moves it (back) onto the live list, and asks it
// to mark the values it owns. It is a no-op on an already-marked value, a
// void (nil) value, or an immortal/other root revisited during the same
// collection.
func Mark(v Value) {
	if v == nil {
		return
	}
	hdr := v.header()
	if hdr.marked {
		return
	}
	hdr.marked = true
	listRemove(hdr)
	listInsertAfter(theHeap.live, hdr)
	v.GCMark()
}

// CollectGarbage runs one stop-the-world mark-sweep cycle, per the
// four-step algorithm in spec.md §4.1. It is exported so embedders (and
// tests asserting GC liveness, scenario F) can force a cycle instead of
// waiting for the allocation counter.
func CollectGarbage() {
	h := theHeap

	// 1. Splice live into doomed; live becomes empty.
	if h.live.next != h.live {
		first, last := h.live.next, h.live.prev
		first.prev = h.doomed
		last.next = h.doomed.next
		h.doomed.next.prev = last
		h.doomed.next = first
	}
	h.live.next = h.live
	h.live.prev = h.live

	// 2. Mark every immortal and every stack root.
	for _, v := range h.immortals {
		Mark(v)
	}
	for _, v := range h.stack {
		Mark(v)
	}

	// 3. Deallocate whatever is left in doomed.
	for cur := h.doomed.next; cur != h.doomed; {
		next := cur.next
		cur.valid = false
		cur.magic = 0
		cur.owner = nil
		cur.class = nil
		cur.prev, cur.next = nil, nil
		cur = next
	}
	h.doomed.next = h.doomed
	h.doomed.prev = h.doomed

	// 4. Clear mark bits on the survivors.
	for cur := h.live.next; cur != h.live; cur = cur.next {
		cur.marked = false
	}

	h.allocCount = 0
}

// liveCount walks the live list and counts its members; used by tests that
// want to observe collection without relying on allocator address reuse.
func liveCount() int {
	n := 0
	for cur := theHeap.live.next; cur != theHeap.live; cur = cur.next {
		n++
	}
	return n
}

// LiveCount exposes liveCount to embedders (the `gc-stats` demo
// subcommand and any host wanting to watch heap pressure).
func LiveCount() int { return liveCount() }

// ImmortalCount reports how many values are pinned in the root set.
func ImmortalCount() int { return len(theHeap.immortals) }
