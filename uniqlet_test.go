package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqlet_distinctUniqletsAreNeverEqual(t *testing.T) {
	Bootstrap()
	a := MakeUniqlet()
	b := MakeUniqlet()
	assert.False(t, TotalEq(a, b))
	assert.True(t, TotalEq(a, a))
}

func TestUniqlet_totalOrderIsAStableTotalOrder(t *testing.T) {
	Bootstrap()
	a := MakeUniqlet()
	b := MakeUniqlet()
	forward := TotalOrder(a, b)
	assert.NotEqual(t, OrderEqual, forward)
	if forward == OrderLess {
		assert.Equal(t, OrderGreater, TotalOrder(b, a))
	} else {
		assert.Equal(t, OrderLess, TotalOrder(b, a))
	}
}
