package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRecord is a small builder shared by the scenario tests below, for
// constructing the same source-record shapes translate.go expects
// (spec.md §4.6.1's node tags) without repeating SymbolTableFromArray
// boilerplate at every call site.
func testRecord(tag string, fields map[string]Value) *Record {
	keys := make([]*Symbol, 0, len(fields))
	values := make([]Value, 0, len(fields))
	for k, v := range fields {
		keys = append(keys, symbolFromString(k))
		values = append(values, v)
	}
	return MakeRecord(symbolFromString(tag), SymbolTableFromArray(keys, values))
}

func testVarRef(name *Symbol) *Record {
	return testRecord("varRef", map[string]Value{"name": name})
}

func testFormal(name *Symbol, repeat string) *Record {
	fields := map[string]Value{"name": name}
	if repeat != "" {
		fields["repeat"] = symbolFromString(repeat)
	}
	return testRecord("formal", fields)
}

func testClosure(formals []Value, statements []Value, yield Value, yieldDef *Symbol) *Record {
	fields := map[string]Value{
		"formals":    ListFromArray(formals),
		"statements": ListFromArray(statements),
	}
	if yield != nil {
		fields["yield"] = yield
	}
	if yieldDef != nil {
		fields["yieldDef"] = yieldDef
	}
	return testRecord("closure", fields)
}

func testCall(target Value, args []Value) *Record {
	return testRecord("call", map[string]Value{
		"target": target,
		"values":  ListFromArray(args),
	})
}

// Scenario A: a one-formal identity closure applied to a single Int
// yields that Int, via `@varRef`'s value-yielding evaluation.
func TestScenarioA_identityClosure(t *testing.T) {
	Bootstrap()
	x := symbolFromString("scenarioA_x")
	closureRec := testClosure(
		[]Value{testFormal(x, "")},
		nil,
		testVarRef(x),
		nil,
	)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	result := Call(closureVal, []Value{IntFromZint(5)})
	assert.Equal(t, IntFromZint(5), result)
}

// Scenario B: a single `*` rest formal collects every argument into a
// list (spec.md §4.6.2).
func TestScenarioB_restFormalCollectsArgs(t *testing.T) {
	Bootstrap()
	xs := symbolFromString("scenarioB_xs")
	closureRec := testClosure(
		[]Value{testFormal(xs, "star")},
		nil,
		testVarRef(xs),
		nil,
	)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	result := Call(closureVal, []Value{IntFromZint(1), IntFromZint(2), IntFromZint(3)})
	assert.True(t, TotalEq(ListFromArray([]Value{IntFromZint(1), IntFromZint(2), IntFromZint(3)}), result))
}

// Scenario C: calling the nonlocal-exit binding short-circuits the
// closure body, skipping its yield expression entirely.
func TestScenarioC_nonlocalExitSkipsYield(t *testing.T) {
	Bootstrap()
	out := symbolFromString("scenarioC_out")
	callOut := testCall(testVarRef(out), []Value{
		testRecord("literal", map[string]Value{"value": IntFromZint(42)}),
	})
	closureRec := testClosure(
		nil,
		[]Value{callOut},
		testRecord("literal", map[string]Value{"value": IntFromZint(0)}),
		out,
	)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	result := Call(closureVal, nil)
	assert.Equal(t, IntFromZint(42), result)
}

func TestEval_varDefCellThenStoreThenFetch(t *testing.T) {
	Bootstrap()
	v := symbolFromString("evalCellVar")
	varDef := testRecord("varDef", map[string]Value{
		"name":  v,
		"box":   symbolFromString("cell"),
		"value": testRecord("literal", map[string]Value{"value": IntFromZint(1)}),
	})
	store := testRecord("store", map[string]Value{
		"target": testVarRef(v),
		"value":  testRecord("literal", map[string]Value{"value": IntFromZint(2)}),
	})
	closureRec := testClosure(nil, []Value{varDef, store}, testVarRef(v), nil)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	result := Call(closureVal, nil)
	assert.Equal(t, IntFromZint(2), result)
}

func TestEval_varDefResultRejectsStore(t *testing.T) {
	Bootstrap()
	v := symbolFromString("evalResultVar")
	varDef := testRecord("varDef", map[string]Value{
		"name":  v,
		"box":   symbolFromString("result"),
		"value": testRecord("literal", map[string]Value{"value": IntFromZint(1)}),
	})
	store := testRecord("store", map[string]Value{
		"target": testVarRef(v),
		"value":  testRecord("literal", map[string]Value{"value": IntFromZint(2)}),
	})
	closureRec := testClosure(nil, []Value{varDef, store}, nil, nil)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	assert.Panics(t, func() { Call(closureVal, nil) })
}

func TestEval_arityMismatchIsFatal(t *testing.T) {
	Bootstrap()
	x := symbolFromString("evalArityX")
	closureRec := testClosure([]Value{testFormal(x, "")}, nil, testVarRef(x), nil)
	node := Translate(closureRec)
	closureVal := Eval(nil, node)
	assert.Panics(t, func() { Call(closureVal, nil) })
	assert.Panics(t, func() { Call(closureVal, []Value{IntFromZint(1), IntFromZint(2)}) })
}

func TestEval_environmentSeedsTopLevelFrame(t *testing.T) {
	Bootstrap()
	g := symbolFromString("evalGlobal")
	env := SymbolTableFromArray([]*Symbol{g}, []Value{IntFromZint(99)})
	node := Translate(testVarRef(g))
	result := Eval(env, node)
	assert.Equal(t, IntFromZint(99), result)
}

func TestTranslate_malformedTagIsFatal(t *testing.T) {
	Bootstrap()
	bad := MakeRecord(symbolFromString("notARealNodeTag"), nil)
	assert.Panics(t, func() { Translate(bad) })
}

func TestClosure_minMaxArgs(t *testing.T) {
	Bootstrap()
	x, ys := symbolFromString("mmaX"), symbolFromString("mmaYs")
	closureRec := testClosure([]Value{testFormal(x, ""), testFormal(ys, "star")}, nil, nil, nil)
	node := Translate(closureRec)
	closureVal := Eval(nil, node).(*Closure)
	require.Equal(t, 1, closureVal.MinArgs())
	require.Equal(t, -1, closureVal.MaxArgs())
}

// A star formal that isn't last must still leave max unbounded: a later
// normal formal must not turn -1 back into a small finite count.
func TestClosure_minMaxArgs_starBeforeNormalStaysUnbounded(t *testing.T) {
	Bootstrap()
	xs, y := symbolFromString("mmaXs"), symbolFromString("mmaY")
	closureRec := testClosure([]Value{testFormal(xs, "star"), testFormal(y, "")}, nil, nil, nil)
	node := Translate(closureRec)
	closureVal := Eval(nil, node).(*Closure)
	require.Equal(t, 1, closureVal.MinArgs())
	require.Equal(t, -1, closureVal.MaxArgs())
}
