package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_utf8RoundTrip(t *testing.T) {
	Bootstrap()
	original := "héllo, 世界"
	s := StringFromUtf8([]byte(original))
	assert.Equal(t, original, string(Utf8Of(s)))
}

func TestString_emptyIsSingleton(t *testing.T) {
	Bootstrap()
	assert.Same(t, StringFromCodePoints(nil), StringFromUtf8(nil))
}

func TestString_invalidUtf8IsFatal(t *testing.T) {
	Bootstrap()
	assert.Panics(t, func() { StringFromUtf8([]byte{0xff, 0xfe}) })
}

func TestString_nthReturnsSingleCharacterString(t *testing.T) {
	Bootstrap()
	s := StringFromUtf8([]byte("abc"))
	nth := s.Nth(1)
	require.NotNil(t, nth)
	asStr, ok := nth.(*String)
	require.True(t, ok)
	assert.Equal(t, []rune{'b'}, asStr.Runes())
	assert.Nil(t, s.Nth(-1))
	assert.Nil(t, s.Nth(10))
}

func TestString_singleCharCacheIsSingleton(t *testing.T) {
	Bootstrap()
	assert.Same(t, singleCharString('x'), singleCharString('x'))
}

func TestString_sliceRetainsContentForLongSlices(t *testing.T) {
	Bootstrap()
	long := make([]rune, indirectionThreshold*2)
	for i := range long {
		long[i] = rune('a' + i%26)
	}
	s := StringFromCodePoints(long)
	sub := s.SliceExclusive(5, 5+indirectionThreshold)
	assert.Equal(t, long[5:5+indirectionThreshold], sub.Runes())
	assert.Same(t, s, sub.retain, "a long slice keeps a back-pointer to its content string")
}

func TestString_sliceInclusive(t *testing.T) {
	Bootstrap()
	s := StringFromUtf8([]byte("abcdef"))
	assert.Equal(t, []rune("bcd"), s.SliceInclusive(1, 3).Runes())
}

func TestString_reverse(t *testing.T) {
	Bootstrap()
	s := StringFromUtf8([]byte("abc"))
	assert.Equal(t, []rune("cba"), s.Reverse().Runes())
}

func TestString_cat(t *testing.T) {
	Bootstrap()
	a := StringFromUtf8([]byte("foo"))
	b := StringFromUtf8([]byte("bar"))
	assert.Equal(t, "foobar", string(Utf8Of(a.Cat(b))))
}

func TestString_totalOrderLexicographicByCodePoint(t *testing.T) {
	Bootstrap()
	assert.Equal(t, OrderLess, TotalOrder(StringFromUtf8([]byte("abc")), StringFromUtf8([]byte("abd"))))
	assert.Equal(t, OrderLess, TotalOrder(StringFromUtf8([]byte("ab")), StringFromUtf8([]byte("abc"))),
		"shared prefix: shorter string sorts first")
	assert.Equal(t, OrderEqual, TotalOrder(StringFromUtf8([]byte("x")), StringFromUtf8([]byte("x"))))
}

func TestString_debugStringEscapesQuotesAndBackslashes(t *testing.T) {
	Bootstrap()
	s := StringFromUtf8([]byte(`a"b\c`))
	assert.Equal(t, `"a\"b\\c"`, s.DebugString())
}
