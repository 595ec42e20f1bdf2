package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable_emptyIsSingleton(t *testing.T) {
	Bootstrap()
	assert.Same(t, emptySymbolTable, SymbolTableFromArray(nil, nil))
}

func TestSymbolTable_getMissingIsVoid(t *testing.T) {
	Bootstrap()
	a, b := symbolFromString("a"), symbolFromString("b")
	st := SymbolTableFromArray([]*Symbol{a}, []Value{IntFromZint(1)})
	assert.Equal(t, IntFromZint(1), st.Get(a))
	assert.Nil(t, st.Get(b))
}

func TestSymbolTable_duplicateKeyLastWriteWins(t *testing.T) {
	Bootstrap()
	a := symbolFromString("dup")
	st := SymbolTableFromArray([]*Symbol{a, a}, []Value{IntFromZint(1), IntFromZint(2)})
	assert.Equal(t, 1, st.Size())
	assert.Equal(t, IntFromZint(2), st.Get(a))
}

func TestSymbolTable_growsPastMaxProbeBudget(t *testing.T) {
	Bootstrap()
	// The first nine keys all have an index that is a multiple of the
	// construction-time array size, so they all probe from slot 0 and the
	// ninth runs past the max-probe budget of 8, forcing a grow.
	size := arraySizeFor(64)
	keys := make([]*Symbol, 0, 64)
	values := make([]Value, 0, 64)
	for len(keys) < 9 {
		if s := makeAnonymous("grow"); s.index%size == 0 {
			keys = append(keys, s)
		}
	}
	for len(keys) < 64 {
		keys = append(keys, makeAnonymous("grow"))
	}
	for i := range keys {
		values = append(values, IntFromZint(int64(i)))
	}
	st := SymbolTableFromArray(keys, values)
	require.Equal(t, 64, st.Size())
	assert.Greater(t, len(st.slots), size, "the table must have grown past its construction-time size")
	for i, k := range keys {
		assert.Equal(t, values[i], st.Get(k))
	}
}

func TestSymbolTable_putDelCat(t *testing.T) {
	Bootstrap()
	a, b := symbolFromString("pdcA"), symbolFromString("pdcB")
	st := SymbolTableFromArray([]*Symbol{a}, []Value{IntFromZint(1)})

	st2 := st.Put(b, IntFromZint(2))
	assert.Equal(t, 1, st.Size(), "put must not mutate the receiver")
	assert.Equal(t, 2, st2.Size())

	st3 := st2.Del(a)
	assert.Equal(t, 1, st3.Size())
	assert.Nil(t, st3.Get(a))

	other := SymbolTableFromArray([]*Symbol{b}, []Value{IntFromZint(200)})
	merged := st2.Cat(other)
	assert.Equal(t, IntFromZint(200), merged.Get(b), "cat's argument wins on collision")
}

func TestSymbolTable_equalityIndependentOfInsertionOrder(t *testing.T) {
	Bootstrap()
	a, b := symbolFromString("eqA"), symbolFromString("eqB")
	t1 := SymbolTableFromArray([]*Symbol{a, b}, []Value{IntFromZint(1), IntFromZint(2)})
	t2 := SymbolTableFromArray([]*Symbol{b, a}, []Value{IntFromZint(2), IntFromZint(1)})
	assert.True(t, TotalEq(t1, t2))
}
