package samizdat

// translate converts one source record (spec.md §4.6.1) into an
// executable node. It runs once, at closure-construction time — never
// repeated during evaluation, which is the entire reason the translated
// form exists.
func translate(rec *Record) *execNode {
	switch rec.name.name {
	case "literal":
		return &execNode{kind: nodeLiteral, literal: getField(rec, "value")}
	case "varRef":
		return &execNode{kind: nodeVarRef, name: getSymbolField(rec, "name")}
	case "varDef":
		return translateVarDef(rec)
	case "fetch":
		return &execNode{kind: nodeFetch, target: translate(getRecordField(rec, "target"))}
	case "store":
		return &execNode{
			kind:   nodeStore,
			target: translate(getRecordField(rec, "target")),
			value:  translate(getRecordField(rec, "value")),
		}
	case "call":
		return translateCallLike(rec, nodeCall)
	case "apply":
		return translateCallLike(rec, nodeApply)
	case "maybe":
		return &execNode{kind: nodeMaybe, value: translate(getRecordField(rec, "value"))}
	case "noYield":
		return &execNode{kind: nodeNoYield, value: translate(getRecordField(rec, "value"))}
	case "closure":
		return &execNode{kind: nodeClosureLit, closure: translateClosure(rec)}
	case "void":
		return &execNode{kind: nodeVoid}
	default:
		fatalf("malformed executable node: unrecognized tag %s", rec.name.name)
		return nil
	}
}

func translateVarDef(rec *Record) *execNode {
	boxSym := getSymbolField(rec, "box")
	var bk boxKindSpec
	switch boxSym.name {
	case "cell":
		bk = boxSpecCell
	case "promise":
		bk = boxSpecPromise
	case "result":
		bk = boxSpecResult
	case "lazy":
		bk = boxSpecLazy
	default:
		fatalf("malformed executable node: unrecognized varDef box kind %s", boxSym.name)
	}
	return &execNode{
		kind:    nodeVarDef,
		name:    getSymbolField(rec, "name"),
		boxKind: bk,
		value:   translate(getRecordField(rec, "value")),
	}
}

func translateCallLike(rec *Record, kind nodeKind) *execNode {
	target := translate(getRecordField(rec, "target"))
	var selector *Symbol
	if nameVal := rec.payload.Get(symbolFromString("name")); nameVal != nil {
		selector = asSymbol(nameVal)
	}
	valuesList := asList(getField(rec, "values"))
	args := make([]*execNode, valuesList.Size())
	for i := 0; i < valuesList.Size(); i++ {
		args[i] = translate(asRecord(valuesList.Nth(i)))
	}
	return &execNode{kind: kind, target: target, selector: selector, args: args}
}

func translateClosure(rec *Record) *closureNode {
	formalsList := asList(getField(rec, "formals"))
	formals := make([]formal, formalsList.Size())
	for i := 0; i < formalsList.Size(); i++ {
		formals[i] = translateFormal(asRecord(formalsList.Nth(i)))
	}
	stmtsList := asList(getField(rec, "statements"))
	statements := make([]*execNode, stmtsList.Size())
	for i := 0; i < stmtsList.Size(); i++ {
		statements[i] = translate(asRecord(stmtsList.Nth(i)))
	}
	var yield *execNode
	if yieldRec := rec.payload.Get(symbolFromString("yield")); yieldRec != nil {
		yield = translate(asRecord(yieldRec))
	}
	var yieldDef *Symbol
	if v := rec.payload.Get(symbolFromString("yieldDef")); v != nil {
		yieldDef = asSymbol(v)
	}
	debugName := ""
	if v := rec.payload.Get(symbolFromString("name")); v != nil {
		debugName = asString(v)
	}
	return &closureNode{
		formals:    formals,
		statements: statements,
		yield:      yield,
		yieldDef:   yieldDef,
		debugName:  debugName,
	}
}

func translateFormal(rec *Record) formal {
	var name *Symbol
	if v := rec.payload.Get(symbolFromString("name")); v != nil {
		name = asSymbol(v)
	}
	repeat := repeatNormal
	if v := rec.payload.Get(symbolFromString("repeat")); v != nil {
		sym := asSymbol(v)
		switch sym.name {
		case "optional":
			repeat = repeatOptional
		case "star":
			repeat = repeatStar
		case "plus":
			repeat = repeatPlus
		default:
			fatalf("malformed executable node: unrecognized formal repeat %s", sym.name)
		}
	}
	return formal{name: name, repeat: repeat}
}

func getField(rec *Record, name string) Value {
	return rec.payload.Get(symbolFromString(name))
}

func getRecordField(rec *Record, name string) *Record {
	return asRecord(getField(rec, name))
}

func getSymbolField(rec *Record, name string) *Symbol {
	return asSymbol(getField(rec, name))
}

func asRecord(v Value) *Record {
	r, ok := v.(*Record)
	if !ok {
		fatalf("malformed executable node: expected record, got %s", DebugString(v))
	}
	return r
}

func asSymbol(v Value) *Symbol {
	s, ok := v.(*Symbol)
	if !ok {
		fatalf("malformed executable node: expected symbol, got %s", DebugString(v))
	}
	return s
}

func asList(v Value) *List {
	l, ok := v.(*List)
	if !ok {
		fatalf("malformed executable node: expected list, got %s", DebugString(v))
	}
	return l
}

func asString(v Value) string {
	s, ok := v.(*String)
	if !ok {
		fatalf("malformed executable node: expected string, got %s", DebugString(v))
	}
	return string(s.Runes())
}

func asBox(v Value) *Box {
	b, ok := v.(*Box)
	if !ok {
		fatalf("expected a box, got %s", DebugString(v))
	}
	return b
}
