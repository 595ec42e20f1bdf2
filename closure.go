package samizdat

import "fmt"

// Closure is a callable value carrying a captured lexical frame plus a
// translated body (spec.md §3.4, §4.6). Frame is a plain Go struct, not
// a Value, so GCMark has to walk it by hand instead of via Mark's usual
// recursion into another Value's own GCMark.
type Closure struct {
	Header
	capturedFrame *Frame
	node          *closureNode
}

func (c *Closure) header() *Header { return &c.Header }

// MakeClosure materializes a closure over the current frame, the shape
// @closure(...) produces at evaluation time (spec.md §4.6.5).
func MakeClosure(capturedFrame *Frame, node *closureNode) *Closure {
	c := &Closure{capturedFrame: capturedFrame, node: node}
	register(c, clsClosure)
	return c
}

func (c *Closure) MinArgs() int { min, _ := c.node.minMaxArgs(); return min }
func (c *Closure) MaxArgs() int { _, max := c.node.minMaxArgs(); return max }

// invoke implements frame construction for a call (spec.md §4.6.3):
// bind formals, arm a yieldDef jump if declared, run statements in
// order, then evaluate the yield expression (or return void).
func (c *Closure) invoke(args []Value) Value {
	min, max := c.node.minMaxArgs()
	if len(args) < min || (max >= 0 && len(args) > max) {
		fatalf("wrong argument count for closure %s: got %d, want [%d, %d]", c.debugName(), len(args), min, max)
	}

	frame := NewFrame(c.capturedFrame, c)
	c.bindFormals(frame, args)

	run := func(j *Jump) Value {
		if c.node.yieldDef != nil {
			frame.Define(c.node.yieldDef, MakeResult(j))
		}
		for _, stmt := range c.node.statements {
			evalNode(frame, stmt)
		}
		if c.node.yield == nil {
			return nil
		}
		return evalNode(frame, c.node.yield)
	}

	if c.node.yieldDef != nil {
		return JumpScope(run)
	}
	return run(nil)
}

// bindFormals binds args to the closure's formals in order, greedily
// reserving enough trailing arguments for the formals that still need
// them (spec.md §4.6.2). `?` binds a one- or zero-element list, the same
// shape as `*`/`+`, resolving the spec's documented open question by
// picking one consistent model (recorded in the design ledger).
func (c *Closure) bindFormals(frame *Frame, args []Value) {
	formals := c.node.formals
	sufMin := make([]int, len(formals)+1)
	for i := len(formals) - 1; i >= 0; i-- {
		need := 0
		if formals[i].repeat == repeatNormal || formals[i].repeat == repeatPlus {
			need = 1
		}
		sufMin[i] = sufMin[i+1] + need
	}

	pos := 0
	for i, f := range formals {
		remaining := len(args) - pos
		reserve := sufMin[i+1]
		switch f.repeat {
		case repeatNormal:
			v := args[pos]
			pos++
			if f.name != nil {
				frame.Define(f.name, MakeResult(v))
			}
		case repeatOptional:
			var list []Value
			if remaining-reserve > 0 {
				list = append(list, args[pos])
				pos++
			}
			if f.name != nil {
				frame.Define(f.name, MakeResult(ListFromArray(list)))
			}
		case repeatStar, repeatPlus:
			take := remaining - reserve
			if take < 0 {
				take = 0
			}
			list := args[pos : pos+take]
			pos += take
			if f.name != nil {
				frame.Define(f.name, MakeResult(ListFromArray(list)))
			}
		}
	}
}

func (c *Closure) debugName() string {
	if c.node.debugName != "" {
		return c.node.debugName
	}
	return "(anonymous)"
}

func (c *Closure) GCMark() {
	markFrame(c.capturedFrame)
}

// markFrame marks every box reachable from f's bindings chain, and the
// constructing closure of each frame, stopping recursion the moment Mark
// finds something already marked.
func markFrame(f *Frame) {
	for cur := f; cur != nil; cur = cur.parent {
		for _, box := range cur.bindings {
			Mark(box)
		}
		if cur.closure != nil {
			Mark(cur.closure)
		}
	}
}

// TotalOrder for closures is identity (spec.md §3.4 table).
func (c *Closure) TotalOrder(other Value) Ordering {
	o, ok := other.(*Closure)
	if !ok {
		fatalf("Closure.TotalOrder: not a closure: %s", DebugString(other))
	}
	if c == o {
		return OrderEqual
	}
	return orderInt64(int64(ptrOf(c)), int64(ptrOf(o)))
}

func (c *Closure) DebugString() string {
	return fmt.Sprintf("Closure{%s}", c.debugName())
}
