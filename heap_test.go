package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeap_collectGarbageReclaimsUnrootedValues(t *testing.T) {
	Bootstrap()
	// The loop's small ints are cached immortals; create them up front so
	// that only the lists are temporaries when the live counts are compared.
	for i := 0; i < 100; i++ {
		IntFromZint(int64(i))
	}
	CollectGarbage()
	before := LiveCount()

	saved := FrameStart()
	for i := 0; i < 100; i++ {
		ListFromArray([]Value{IntFromZint(int64(i))})
	}
	FrameReturn(saved, nil)

	CollectGarbage()
	after := LiveCount()
	assert.Equal(t, before, after, "unrooted temporaries must not survive a collection")
}

func TestHeap_frameReturnRootsItsResult(t *testing.T) {
	Bootstrap()
	CollectGarbage()

	saved := FrameStart()
	var kept Value
	for i := 0; i < 100; i++ {
		v := ListFromArray([]Value{IntFromZint(int64(i))})
		if i == 50 {
			kept = v
		}
	}
	kept = FrameReturn(saved, kept)

	CollectGarbage()
	// The sweep invalidates the header of every value it frees, so a
	// still-valid header shows that kept stayed rooted.
	assert.True(t, kept.header().valid, "FrameReturn's result must survive the collection")
	assert.Equal(t, "[50]", DebugString(kept))
}

func TestHeap_immortalizedValuesSurviveCollection(t *testing.T) {
	Bootstrap()
	beforeImmortal := ImmortalCount()
	assert.True(t, beforeImmortal > 0, "bootstrap immortalizes classes and singletons")
	CollectGarbage()
	assert.Equal(t, beforeImmortal, ImmortalCount())
}
