package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol_internedIsUnique(t *testing.T) {
	Bootstrap()
	assert.Same(t, symbolFromString("uniqueName"), symbolFromString("uniqueName"))
}

func TestSymbol_anonymousAlwaysDistinct(t *testing.T) {
	Bootstrap()
	a := makeAnonymous("dup")
	b := makeAnonymous("dup")
	assert.NotSame(t, a, b)
	assert.False(t, TotalEq(a, b))
}

func TestSymbol_internedSortsBeforeAnonymous(t *testing.T) {
	Bootstrap()
	interned := symbolFromString("zzz-interned")
	anon := makeAnonymous("aaa-anon")
	assert.Equal(t, OrderLess, TotalOrder(interned, anon))
}

func TestSymbol_invokeDispatchesOnFirstArgAsReceiver(t *testing.T) {
	Bootstrap()
	// symCall is already bound on clsClosure/clsBuiltin/clsJump in
	// bindCoreMethods; dispatching debugString this way exercises the
	// same path a `@call` node with no target selector override would.
	receiver := IntFromZint(5)
	result := symDebugString.invoke([]Value{receiver})
	str, ok := result.(*String)
	assert.True(t, ok)
	assert.Equal(t, "5", string(Utf8Of(str)))
}

func TestSymbol_invokeRequiresAtLeastOneArg(t *testing.T) {
	Bootstrap()
	assert.Panics(t, func() { symDebugString.invoke(nil) })
}

func TestSymbol_indexIsStableAndDistinctAcrossInterning(t *testing.T) {
	Bootstrap()
	a := symbolFromString("testIndexStableA")
	b := symbolFromString("testIndexStableB")
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Equal(t, a.Index(), symbolFromString("testIndexStableA").Index())
}
