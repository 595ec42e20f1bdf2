package samizdat

import (
	"strings"
	"unicode/utf8"
)

// String is an immutable UTF-32 (code-point) sequence (spec.md §4.4.5). A
// long sliced or prefixed string can alias a longer content string's
// backing array instead of copying — retain keeps that content string
// reachable for our heap's purposes even though Go's own GC would already
// keep the backing array alive via the slice itself.
type String struct {
	Header
	runes  []rune
	retain *String
}

func (s *String) header() *Header { return &s.Header }

// indirectionThreshold: slices shorter than this just copy; only "long"
// slices retain a back-pointer into their content string, mirroring the
// reference's stated trade-off (spec.md §4.4.5).
const indirectionThreshold = 32

var emptyString *String

func newStringFromRunes(runes []rune, retain *String) *String {
	if len(runes) == 0 {
		return emptyString
	}
	s := &String{runes: runes, retain: retain}
	register(s, clsString)
	return s
}

// StringFromCodePoints copies code points into a fresh String.
func StringFromCodePoints(runes []rune) *String {
	if len(runes) == 0 {
		return emptyString
	}
	copied := make([]rune, len(runes))
	copy(copied, runes)
	return newStringFromRunes(copied, nil)
}

// StringFromUtf8 decodes UTF-8 bytes into a String.
func StringFromUtf8(b []byte) *String {
	runes := make([]rune, 0, utf8.RuneCount(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			fatalf("invalid UTF-8 input")
		}
		runes = append(runes, r)
		b = b[size:]
	}
	return StringFromCodePoints(runes)
}

// Utf8Of encodes s back to UTF-8 bytes.
func Utf8Of(s *String) []byte {
	var b strings.Builder
	for _, r := range s.Runes() {
		b.WriteRune(r)
	}
	return []byte(b.String())
}

// Runes returns s's code points, resolving through content indirection.
func (s *String) Runes() []rune { return s.runes }

func (s *String) Size() int { return len(s.runes) }

// Nth returns the single-character String at index i, or nil (void) if
// out of bounds.
func (s *String) Nth(i int) Value {
	if i < 0 || i >= len(s.runes) {
		return nil
	}
	return singleCharString(s.runes[i])
}

const charCacheMax = 127

var charCache [charCacheMax + 1]*String

func singleCharString(r rune) *String {
	if r >= 0 && r <= charCacheMax {
		if cached := charCache[r]; cached != nil {
			return cached
		}
		s := newStringFromRunes([]rune{r}, nil)
		Immortalize(s)
		charCache[r] = s
		return s
	}
	return newStringFromRunes([]rune{r}, nil)
}

// SliceExclusive returns s[start:end), aliasing s's backing array (via a
// retain back-pointer) when the result is long enough to be worth not
// copying.
func (s *String) SliceExclusive(start, end int) *String {
	if start < 0 {
		start = 0
	}
	if end > len(s.runes) {
		end = len(s.runes)
	}
	if start >= end {
		return emptyString
	}
	sub := s.runes[start:end]
	if len(sub) >= indirectionThreshold {
		root := s
		if s.retain != nil {
			root = s.retain
		}
		return newStringFromRunes(sub, root)
	}
	return StringFromCodePoints(sub)
}

func (s *String) SliceInclusive(start, end int) *String {
	return s.SliceExclusive(start, end+1)
}

func (s *String) Reverse() *String {
	rev := make([]rune, len(s.runes))
	for i, r := range s.runes {
		rev[len(s.runes)-1-i] = r
	}
	return newStringFromRunes(rev, nil)
}

// Cat concatenates two strings into a new one.
func (s *String) Cat(other *String) *String {
	if len(s.runes) == 0 {
		return other
	}
	if len(other.runes) == 0 {
		return s
	}
	combined := make([]rune, 0, len(s.runes)+len(other.runes))
	combined = append(combined, s.runes...)
	combined = append(combined, other.runes...)
	return newStringFromRunes(combined, nil)
}

func (s *String) GCMark() {
	if s.retain != nil {
		Mark(s.retain)
	}
}

func (s *String) TotalOrder(other Value) Ordering {
	o, ok := other.(*String)
	if !ok {
		fatalf("String.TotalOrder: not a string: %s", DebugString(other))
	}
	a, b := s.runes, o.runes
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return orderInt(int(a[i]), int(b[i]))
		}
	}
	return orderInt(len(a), len(b))
}

func (s *String) DebugString() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.runes {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// initStringSingletons is invoked once by the bootstrap module graph,
// after clsString exists (spec.md §3.4: "an empty string ... [is a]
// process-wide singleton").
func initStringSingletons() {
	emptyString = &String{}
	register(emptyString, clsString)
	Immortalize(emptyString)
}
