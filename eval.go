package samizdat

// ExecNode is the public handle to a translated executable node, the
// output of Translate and the input to Eval (spec.md §4.6.1, §6).
type ExecNode = execNode

// Translate converts a source record tree into an executable node,
// recursively translating sub-nodes and closure bodies (spec.md §4.6.1).
func Translate(rec *Record) *ExecNode { return translate(rec) }

// Eval interprets node in a fresh top-level frame seeded from
// environment: every environment binding is wrapped in a Result box so
// that downstream `@varRef`/`@fetch` lookups see a uniform box shape
// regardless of where a name came from (spec.md §6).
func Eval(environment *SymbolTable, node *ExecNode) Value {
	frame := NewFrame(nil, nil)
	if environment != nil {
		keys, values := environment.sortedEntries()
		for i, k := range keys {
			frame.Define(k, MakeResult(values[i]))
		}
	}
	return evalNode(frame, node)
}

// evalNode interprets one executable node against frame, per the
// statement shapes in spec.md §4.6.5.
func evalNode(frame *Frame, node *execNode) Value {
	switch node.kind {
	case nodeLiteral:
		return node.literal

	case nodeVarRef:
		return frame.Lookup(node.name).Fetch()

	case nodeVarDef:
		evalVarDef(frame, node)
		return nil

	case nodeFetch:
		return evalTarget(frame, node.target).Fetch()

	case nodeStore:
		box := evalTarget(frame, node.target)
		value := evalNode(frame, node.value)
		box.Store(value)
		return value

	case nodeCall:
		target := evalNode(frame, node.target)
		args := evalArgs(frame, node.args)
		if node.selector != nil {
			return MethodCall(target, node.selector, args)
		}
		return Call(target, args)

	case nodeApply:
		return evalApply(frame, node)

	case nodeMaybe:
		return evalNode(frame, node.value)

	case nodeNoYield:
		evalNode(frame, node.value)
		fatalf("reached an @noYield node")
		return nil

	case nodeClosureLit:
		return MakeClosure(frame, node.closure)

	case nodeVoid:
		return nil

	default:
		fatalf("malformed executable node: unrecognized kind %d", node.kind)
		return nil
	}
}

func evalVarDef(frame *Frame, node *execNode) {
	var box *Box
	switch node.boxKind {
	case boxSpecCell:
		box = MakeCell()
		box.Store(evalNode(frame, node.value))
	case boxSpecPromise:
		box = MakePromise()
		box.Store(evalNode(frame, node.value))
	case boxSpecResult:
		box = MakeResult(evalNode(frame, node.value))
	case boxSpecLazy:
		valueNode := node.value
		box = MakeLazy(func() Value { return evalNode(frame, valueNode) })
	}
	frame.Define(node.name, box)
}

// evalTarget resolves a `@fetch`/`@store` target to its box. A `@varRef`
// target resolves directly to the named box via frame lookup, without
// going through evalNode's value-yielding interpretation of `@varRef`
// (see the design ledger for why those two differ); any other target
// node must evaluate to a box value on its own (spec.md §4.6.5).
func evalTarget(frame *Frame, node *execNode) *Box {
	if node.kind == nodeVarRef {
		return frame.Lookup(node.name)
	}
	return asBox(evalNode(frame, node))
}

func evalArgs(frame *Frame, nodes []*execNode) []Value {
	args := make([]Value, len(nodes))
	for i, n := range nodes {
		args[i] = evalNode(frame, n)
	}
	return args
}

// evalApply implements `@apply`: like call, but the last value node must
// evaluate to a list, spread into trailing positional arguments (spec.md
// §4.6.5).
func evalApply(frame *Frame, node *execNode) Value {
	if len(node.args) == 0 {
		fatalf("malformed executable node: @apply requires a trailing list argument")
	}
	target := evalNode(frame, node.target)
	leading := evalArgs(frame, node.args[:len(node.args)-1])
	trailing := asList(evalNode(frame, node.args[len(node.args)-1]))
	if node.selector != nil {
		full := make([]Value, 0, len(leading)+trailing.Size())
		full = append(full, leading...)
		full = append(full, trailing.items...)
		return MethodCall(target, node.selector, full)
	}
	return Apply(target, leading, trailing)
}
