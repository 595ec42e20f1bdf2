package samizdat

import "fmt"

// Builtin wraps a Go function as a callable value (spec.md §3.4:
// "min/max arity, C function, optional state"). State lets a builtin
// close over configuration without every such function needing its own
// Go closure allocation tracked outside the heap.
type Builtin struct {
	Header
	minArgs, maxArgs int
	fn               func(state Value, args []Value) Value
	state            Value
	name             string
}

func (b *Builtin) header() *Header { return &b.Header }

// MakeBuiltin constructs a Builtin (spec.md §6: "makeBuiltin(minArgs,
// maxArgs, cFn, state, name)"). maxArgs of -1 means unbounded.
func MakeBuiltin(minArgs, maxArgs int, fn func(state Value, args []Value) Value, state Value, name string) *Builtin {
	b := &Builtin{minArgs: minArgs, maxArgs: maxArgs, fn: fn, state: state, name: name}
	register(b, clsBuiltin)
	return b
}

func (b *Builtin) MinArgs() int { return b.minArgs }
func (b *Builtin) MaxArgs() int { return b.maxArgs }

func (b *Builtin) checkArity(n int) {
	if n < b.minArgs || (b.maxArgs >= 0 && n > b.maxArgs) {
		fatalf("wrong argument count for builtin %s: got %d, want [%d, %d]", b.name, n, b.minArgs, b.maxArgs)
	}
}

func (b *Builtin) invoke(args []Value) Value {
	b.checkArity(len(args))
	return b.fn(b.state, args)
}

func (b *Builtin) GCMark() {
	if b.state != nil {
		Mark(b.state)
	}
}

// TotalOrder for builtins is identity (spec.md §3.4 table).
func (b *Builtin) TotalOrder(other Value) Ordering {
	o, ok := other.(*Builtin)
	if !ok {
		fatalf("Builtin.TotalOrder: not a builtin: %s", DebugString(other))
	}
	if b == o {
		return OrderEqual
	}
	return orderInt64(int64(ptrOf(b)), int64(ptrOf(o)))
}

func (b *Builtin) DebugString() string {
	return fmt.Sprintf("Builtin{%s}", b.name)
}
