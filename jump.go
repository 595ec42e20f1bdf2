package samizdat

// Jump is a first-class, callable nonlocal-exit value (spec.md §3.4,
// §4.6). The reference arms one with setjmp and fires it with longjmp;
// Go's idiomatic analog of that pair is panic/recover unwinding back to a
// deferred recover at the point the Jump was created, so MakeJump,
// JumpScope, and Jump.Call are built on top of that instead of reaching
// for goroutines or channels.
type Jump struct {
	Header
	valid  bool
	result Value
}

func (j *Jump) header() *Header { return &j.Header }

// jumpSignal is the panic payload a Jump call produces; JumpScope's
// deferred recover matches on this type specifically so an unrelated
// panic (a genuine bug) still propagates instead of being swallowed.
type jumpSignal struct {
	jump   *Jump
	result Value
}

// MakeJump returns a new, valid Jump. It is only safe to invoke while the
// JumpScope call that produced it is still on the Go call stack — calling
// an invalidated (already-returned-through) Jump is a bad-operation fatal
// (spec.md §7: "out-of-scope jump").
func MakeJump() *Jump {
	j := &Jump{valid: true}
	register(j, clsJump)
	return j
}

// Call fires the jump: it panics with a jumpSignal that unwinds the Go
// stack up to the matching JumpScope's deferred recover. It never
// returns normally.
func (j *Jump) Call(args []Value) Value {
	if !j.valid {
		fatalf("call to jump that is no longer in scope")
	}
	if len(args) > 1 {
		fatalf("jump call takes at most 1 argument, got %d", len(args))
	}
	var result Value
	if len(args) > 0 {
		result = args[0]
	}
	panic(jumpSignal{jump: j, result: result})
}

func (j *Jump) MinArgs() int { return 0 }
func (j *Jump) MaxArgs() int { return 1 }

// JumpScope runs body with a freshly made Jump, catching a call to
// exactly that jump and returning its result; the jump is invalidated the
// moment JumpScope returns, by any path. A closure that declares a
// yieldDef (its nonlocal-exit binding) runs its body inside this
// (spec.md §4.6).
func JumpScope(body func(j *Jump) Value) (result Value) {
	j := MakeJump()
	defer func() { j.valid = false }()
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(jumpSignal)
			if !ok || sig.jump != j {
				panic(r)
			}
			result = sig.result
		}
	}()
	return body(j)
}

func (j *Jump) GCMark() {
	if j.result != nil {
		Mark(j.result)
	}
}

// TotalOrder for jumps is identity (spec.md §3.4 table).
func (j *Jump) TotalOrder(other Value) Ordering {
	o, ok := other.(*Jump)
	if !ok {
		fatalf("Jump.TotalOrder: not a jump: %s", DebugString(other))
	}
	if j == o {
		return OrderEqual
	}
	return orderInt64(int64(ptrOf(j)), int64(ptrOf(o)))
}

func (j *Jump) DebugString() string {
	if j.valid {
		return "Jump{valid}"
	}
	return "Jump{expired}"
}
