package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_nilPayloadDefaultsToEmpty(t *testing.T) {
	Bootstrap()
	r := MakeRecord(symbolFromString("tag"), nil)
	assert.Same(t, emptySymbolTable, r.Payload())
}

func TestRecord_nameAndPayloadAccessors(t *testing.T) {
	Bootstrap()
	name := symbolFromString("point")
	x, y := symbolFromString("x"), symbolFromString("y")
	payload := SymbolTableFromArray([]*Symbol{x, y}, []Value{IntFromZint(1), IntFromZint(2)})
	r := MakeRecord(name, payload)
	assert.Same(t, name, r.Name())
	assert.Same(t, payload, r.Payload())
}

func TestRecord_totalOrderByNameThenPayload(t *testing.T) {
	Bootstrap()
	a := MakeRecord(symbolFromString("aName"), nil)
	b := MakeRecord(symbolFromString("bName"), nil)
	assert.Equal(t, OrderLess, TotalOrder(a, b))
}

func TestRecGetN_destructuresInOrder(t *testing.T) {
	Bootstrap()
	x, y := symbolFromString("recGetX"), symbolFromString("recGetY")
	payload := SymbolTableFromArray([]*Symbol{x, y}, []Value{IntFromZint(1), IntFromZint(2)})
	r := MakeRecord(symbolFromString("point"), payload)

	var xv, yv Value
	ok := recGetN(r, []*Symbol{x, y}, []*Value{&xv, &yv})
	require.True(t, ok)
	assert.Equal(t, IntFromZint(1), xv)
	assert.Equal(t, IntFromZint(2), yv)
}

func TestRecGetN_falseOnMissingKeyLeavesOutUntouched(t *testing.T) {
	Bootstrap()
	x := symbolFromString("recGetPresent")
	missing := symbolFromString("recGetMissing")
	payload := SymbolTableFromArray([]*Symbol{x}, []Value{IntFromZint(1)})
	r := MakeRecord(symbolFromString("partial"), payload)

	sentinel := IntFromZint(-1)
	second := sentinel
	ok := recGetN(r, []*Symbol{x, missing}, []*Value{new(Value), &second})
	assert.False(t, ok)
	assert.Equal(t, sentinel, second, "out must be untouched when any key is missing")
}
