package samizdat

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"
)

// Symbol is an interned or anonymous atom used both as a method selector
// and a record-field key (spec.md §3.3). Equality for interned symbols is
// pointer equality; Go's native `==` on *Symbol already gives us that, so
// no separate identity field is needed.
type Symbol struct {
	Header
	name     string
	interned bool
	index    int
}

func (s *Symbol) header() *Header { return &s.Header }

var symbolTableState = struct {
	byInsertion []*Symbol // interned symbols in creation order; anonymous symbols also take indices, so a position here need not equal Symbol.index
	sorted      []*Symbol // lazily rebuilt, sorted by name
	sortedValid bool
	nextIndex   int
	maxSymbols  int
}{maxSymbols: -1}

func maxSymbolCount() int {
	if symbolTableState.maxSymbols < 0 {
		symbolTableState.maxSymbols = NewConfig().SymbolMaxSymbols
	}
	return symbolTableState.maxSymbols
}

func nextSymbolIndex() int {
	if symbolTableState.nextIndex >= maxSymbolCount() {
		fatalf("too many symbols (max %d)", maxSymbolCount())
	}
	idx := symbolTableState.nextIndex
	symbolTableState.nextIndex++
	return idx
}

// symbolFromString returns the unique interned Symbol for name, creating
// and immortalizing it on first reference. The interned set is kept as a
// sorted-on-demand array searched with binary search, per spec.md §4.3.
func symbolFromString(name string) *Symbol {
	if sym := findInterned(name); sym != nil {
		return sym
	}
	sym := &Symbol{name: name, interned: true, index: nextSymbolIndex()}
	register(sym, clsSymbol)
	Immortalize(sym)
	symbolTableState.byInsertion = append(symbolTableState.byInsertion, sym)
	symbolTableState.sortedValid = false
	return sym
}

// SymbolFromString is the public constructor for interned symbols
// (spec.md §6's `symbolFromString` accessor).
func SymbolFromString(name string) *Symbol { return symbolFromString(name) }

// MakeAnonymous is the public constructor for non-interned symbols
// (spec.md §6's `makeAnonymous` accessor).
func MakeAnonymous(name string) *Symbol { return makeAnonymous(name) }

// makeAnonymous always allocates a fresh, non-interned symbol: two
// anonymous symbols with the same name are distinct and unordered with
// respect to each other beyond name-then-insertion-order (spec.md §3.3).
func makeAnonymous(name string) *Symbol {
	sym := &Symbol{name: name, interned: false, index: nextSymbolIndex()}
	register(sym, clsSymbol)
	Immortalize(sym)
	return sym
}

func findInterned(name string) *Symbol {
	ensureSortedSymbols()
	sorted := symbolTableState.sorted
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].name >= name })
	if i < len(sorted) && sorted[i].name == name {
		return sorted[i]
	}
	return nil
}

func ensureSortedSymbols() {
	if symbolTableState.sortedValid {
		return
	}
	symbolTableState.sorted = slices.Clone(symbolTableState.byInsertion)
	slices.SortFunc(symbolTableState.sorted, func(a, b *Symbol) bool {
		return a.name < b.name
	})
	symbolTableState.sortedValid = true
}

func (s *Symbol) GCMark() {}

// TotalOrder: interned symbols sort before anonymous ones, then by name,
// then (for ties among anonymous symbols with the same name) by index —
// an arbitrary but stable tiebreak, since spec.md §3.3 only requires that
// such symbols be "unordered with respect to each other" in the sense of
// sharing no canonical identity, not that comparison itself be undefined.
func (s *Symbol) TotalOrder(other Value) Ordering {
	o, ok := other.(*Symbol)
	if !ok {
		fatalf("Symbol.TotalOrder: not a symbol: %s", DebugString(other))
	}
	if s == o {
		return OrderEqual
	}
	if s.interned != o.interned {
		if s.interned {
			return OrderLess
		}
		return OrderGreater
	}
	if s.name != o.name {
		if s.name < o.name {
			return OrderLess
		}
		return OrderGreater
	}
	return orderInt(s.index, o.index)
}

func (s *Symbol) DebugString() string {
	if s.interned {
		return fmt.Sprintf("%s", s.name)
	}
	return fmt.Sprintf("(anonymous %s)", s.name)
}

// invoke implements symbolCall: the symbol treats its first argument as
// the receiver and dispatches itself, as a selector, on it (spec.md
// §4.3).
func (s *Symbol) invoke(args []Value) Value {
	if len(args) < 1 {
		fatalf("symbol call requires at least one argument (the receiver)")
	}
	return MethodCall(args[0], s, args[1:])
}

// Index returns s's assigned slot in the method-table index space
// (spec.md §6's `zsymbolIndex` accessor), stable for the life of the
// process once the symbol has been created.
func (s *Symbol) Index() int { return s.index }

func (s *Symbol) MinArgs() int { return 1 }
func (s *Symbol) MaxArgs() int { return -1 }
