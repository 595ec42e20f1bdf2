package samizdat

import "fmt"

// methodFn is a bound method: a receiver plus already-evaluated arguments
// in, a result out. Builtins, closures, and the translator all eventually
// produce one of these to put in a method table slot.
type methodFn func(receiver Value, args []Value) Value

// Class is itself a heap Value (clsClass is its own class, per spec.md
// §3.1: "the class Class has class Class"). Method dispatch walks parent
// pointers; the method table is a slice indexed by symbol index rather
// than a literal [MaxSymbols]methodFn array (which would reserve the full
// symbol space per class) while preserving the same O(1)-index dispatch
// the reference's design notes call for.
type Class struct {
	Header
	parent  *Class
	name    *Symbol
	secret  *Uniqlet // nil for core classes; non-nil for opaque derived-data classes (MakeClass)
	id      int
	methods []methodFn
}

func (c *Class) header() *Header { return &c.Header }

var nextClassID = 0

// makeClass creates a new class. Classes are immortal: created once at
// bootstrap, or on first reference for derived-data classes, and never
// collected (spec.md §3.2).
func makeClass(name *Symbol, parent *Class, secret *Uniqlet) *Class {
	c := &Class{parent: parent, name: name, secret: secret, id: nextClassID}
	nextClassID++
	register(c, clsClass)
	Immortalize(c)
	return c
}

// bindMethod installs fn under selector's index in c's own method table.
// Per spec.md §4.2, inheritance is a parent walk at dispatch time, not a
// static copy, so a later bind on a parent is visible to existing
// children.
func (c *Class) bindMethod(selector *Symbol, fn methodFn) {
	idx := selector.index
	if idx >= len(c.methods) {
		grown := make([]methodFn, idx+1)
		copy(grown, c.methods)
		c.methods = grown
	}
	c.methods[idx] = fn
}

func (c *Class) bindMethods(pairs map[*Symbol]methodFn) {
	for sel, fn := range pairs {
		c.bindMethod(sel, fn)
	}
}

// lookupMethod walks c and its ancestors looking for a binding at
// selector's index, per spec.md §4.2's dispatch algorithm.
func (c *Class) lookupMethod(selector *Symbol) methodFn {
	for cur := c; cur != nil; cur = cur.parent {
		if selector.index < len(cur.methods) {
			if fn := cur.methods[selector.index]; fn != nil {
				return fn
			}
		}
	}
	return nil
}

// GCMark marks the class's owned references: its name, its secret, and
// its parent. Bound methods are Go closures, not values, so they need no
// marking.
func (c *Class) GCMark() {
	Mark(c.name)
	if c.secret != nil {
		Mark(c.secret)
	}
	if c.parent != nil {
		Mark(c.parent)
	}
}

// TotalOrder implements both same-class Class-to-Class comparison and
// (via value.go's cross-class dispatch) the universal cross-class value
// order: derived classes sort after core, then by name, then — for two
// opaque derived classes sharing a name — by secret identity (spec.md
// §3.2).
func (c *Class) TotalOrder(other Value) Ordering {
	oc, ok := other.(*Class)
	if !ok {
		fatalf("Class.TotalOrder: not a class: %s", DebugString(other))
	}
	if c == oc {
		return OrderEqual
	}
	cCore, ocCore := c.secret == nil, oc.secret == nil
	if cCore != ocCore {
		if cCore {
			return OrderLess
		}
		return OrderGreater
	}
	if c.name.name != oc.name.name {
		if c.name.name < oc.name.name {
			return OrderLess
		}
		return OrderGreater
	}
	// Same name, both opaque derived classes: disambiguate by secret
	// identity (insertion order of the class itself, which is unique).
	return orderInt(c.id, oc.id)
}

func (c *Class) DebugString() string {
	return fmt.Sprintf("class %s", c.name.name)
}

// Call is the primary call entry point (spec.md §4.2). Builtin, Jump,
// Symbol, and Closure take a direct path; anything else is treated as a
// first-class callable user value by prepending it as the receiver of a
// `call` method dispatch.
func Call(callee Value, args []Value) Value {
	saved := FrameStart()
	// A Jump never returns through the switch below — it panics straight
	// to its JumpScope's recover — so without this defer, every Call
	// frame on the unwind path would leave its root-stack entries behind.
	defer func() {
		if r := recover(); r != nil {
			theHeap.stack = theHeap.stack[:saved]
			panic(r)
		}
	}()
	var result Value
	switch t := callee.(type) {
	case *Symbol:
		result = t.invoke(args)
	case *Builtin:
		result = t.invoke(args)
	case *Jump:
		result = t.Call(args)
	case *Closure:
		result = t.invoke(args)
	default:
		result = MethodCall(callee, symCall, args)
	}
	return FrameReturn(saved, result)
}

// MakeClass creates a new opaque derived-data class parented to parent,
// for embedding code that wants to extend the class tree at runtime
// (a parser's own node-tag classes, a stdlib's collection wrappers,
// and so on). Its secret is a fresh Uniqlet, so two classes created
// with the same name never compare equal. classMethods and
// instanceMethods are both installed on the new class's own method
// table: this core keeps one table per class rather than a separate
// metaclass side-table, so class-side and instance-side selectors
// simply share an index space.
func MakeClass(name string, parent *Class, classMethods, instanceMethods map[*Symbol]methodFn) *Class {
	c := makeClass(symbolFromString(name), parent, MakeUniqlet())
	c.bindMethods(classMethods)
	c.bindMethods(instanceMethods)
	return c
}

// MethodCall is direct symbol-indexed dispatch, used throughout the
// runtime (spec.md §4.2).
func MethodCall(receiver Value, selector *Symbol, args []Value) Value {
	cls := ClassOf(receiver)
	fn := cls.lookupMethod(selector)
	if fn == nil {
		fatalf("unresolved method %s on class %s", selector.name, cls.name.name)
	}
	return fn(receiver, args)
}

// Apply is like Call, but the trailing list (if non-nil) is spread into
// trailing positional arguments (spec.md §4.6.5, the `@apply` node shape).
func Apply(callee Value, args []Value, trailing *List) Value {
	full := args
	if trailing != nil {
		full = make([]Value, 0, len(args)+trailing.Size())
		full = append(full, args...)
		full = append(full, trailing.items...)
	}
	return Call(callee, full)
}
