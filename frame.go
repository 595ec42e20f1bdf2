package samizdat

// Frame is one level of a closure's lexical environment: a mapping from
// symbol to box, plus a parent frame pointer and the closure that
// constructed it, if any (spec.md §3.5). Frames are ordinary Go-heap
// structs, not Samizdat Values — nothing in the language evaluates a
// frame as data, so it does not need a Header or class.
type Frame struct {
	parent   *Frame
	closure  *Closure
	bindings map[*Symbol]*Box
}

// NewFrame returns a fresh frame parented to parent (nil for the
// outermost, module-level frame).
func NewFrame(parent *Frame, closure *Closure) *Frame {
	return &Frame{parent: parent, closure: closure, bindings: map[*Symbol]*Box{}}
}

// Define binds name to box in this frame. Shadowing an existing name at
// the same frame level is a bad-operation fatal (spec.md §4.6.4).
func (f *Frame) Define(name *Symbol, box *Box) {
	if _, exists := f.bindings[name]; exists {
		fatalf("duplicate variable definition: %s", name.name)
	}
	f.bindings[name] = box
}

// Lookup walks frames outward for name's box, fatal (undefined variable,
// a bad-input error per spec.md §7) if no frame defines it.
func (f *Frame) Lookup(name *Symbol) *Box {
	for cur := f; cur != nil; cur = cur.parent {
		if box, ok := cur.bindings[name]; ok {
			return box
		}
	}
	fatalf("undefined variable: %s", name.name)
	return nil
}
