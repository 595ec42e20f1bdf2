package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_emptyIsSingleton(t *testing.T) {
	Bootstrap()
	assert.Same(t, emptyMap, MapFromPairs(nil, nil))
}

func TestMap_getMissingIsVoid(t *testing.T) {
	Bootstrap()
	m := MapFromPairs([]Value{IntFromZint(1)}, []Value{StringFromUtf8([]byte("one"))})
	assert.Nil(t, m.Get(IntFromZint(2)))
	assert.Equal(t, StringFromUtf8([]byte("one")), m.Get(IntFromZint(1)))
}

func TestMap_duplicateKeysKeepLastValue(t *testing.T) {
	Bootstrap()
	m := MapFromPairs(
		[]Value{IntFromZint(1), IntFromZint(1)},
		[]Value{StringFromUtf8([]byte("first")), StringFromUtf8([]byte("second"))},
	)
	require.Equal(t, 1, m.Size())
	assert.Equal(t, StringFromUtf8([]byte("second")), m.Get(IntFromZint(1)))
}

func TestMap_putAndDel(t *testing.T) {
	Bootstrap()
	m := MapFromPairs([]Value{IntFromZint(1)}, []Value{IntFromZint(10)})
	m2 := m.Put(IntFromZint(2), IntFromZint(20))
	assert.Equal(t, 1, m.Size(), "put must not mutate the receiver")
	assert.Equal(t, 2, m2.Size())
	assert.Equal(t, IntFromZint(20), m2.Get(IntFromZint(2)))

	m3 := m2.Del(IntFromZint(1))
	assert.Equal(t, 1, m3.Size())
	assert.Nil(t, m3.Get(IntFromZint(1)))

	assert.Same(t, m, m.Del(IntFromZint(999)), "deleting an absent key is a no-op")
}

func TestMap_catOtherWins(t *testing.T) {
	Bootstrap()
	a := MapFromPairs([]Value{IntFromZint(1), IntFromZint(2)}, []Value{IntFromZint(1), IntFromZint(2)})
	b := MapFromPairs([]Value{IntFromZint(2)}, []Value{IntFromZint(200)})
	c := a.Cat(b)
	assert.Equal(t, IntFromZint(1), c.Get(IntFromZint(1)))
	assert.Equal(t, IntFromZint(200), c.Get(IntFromZint(2)))
}

func TestMap_equalityIndependentOfInsertionOrder(t *testing.T) {
	Bootstrap()
	a := MapFromPairs([]Value{IntFromZint(1), IntFromZint(2)}, []Value{IntFromZint(10), IntFromZint(20)})
	b := MapFromPairs([]Value{IntFromZint(2), IntFromZint(1)}, []Value{IntFromZint(20), IntFromZint(10)})
	assert.True(t, TotalEq(a, b))
}

func TestMap_lookupCacheDoesNotChangeObservedValue(t *testing.T) {
	Bootstrap()
	m := MapFromPairs([]Value{IntFromZint(7)}, []Value{StringFromUtf8([]byte("seven"))})
	first := m.Get(IntFromZint(7))
	second := m.Get(IntFromZint(7))
	assert.Equal(t, first, second)
}

func TestMap_keysAndValuesAreSorted(t *testing.T) {
	Bootstrap()
	m := MapFromPairs(
		[]Value{IntFromZint(3), IntFromZint(1), IntFromZint(2)},
		[]Value{IntFromZint(30), IntFromZint(10), IntFromZint(20)},
	)
	keys := m.Keys()
	require.Equal(t, 3, keys.Size())
	assert.Equal(t, IntFromZint(1), keys.Nth(0))
	assert.Equal(t, IntFromZint(2), keys.Nth(1))
	assert.Equal(t, IntFromZint(3), keys.Nth(2))

	values := m.Values()
	require.Equal(t, 3, values.Size())
	assert.Equal(t, IntFromZint(10), values.Nth(0))
	assert.Equal(t, IntFromZint(20), values.Nth(1))
	assert.Equal(t, IntFromZint(30), values.Nth(2))
}
