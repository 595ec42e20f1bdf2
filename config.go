package samizdat

// Config holds every tunable limit the runtime reads at bootstrap: GC
// thresholds, symbol-table sizing, and map-cache sizing (spec.md §4).
// Every one of these is a fixed int known at compile time, nothing here
// is ever loaded from a file or a flag, so there's no need for the
// grammar-transform's dotted-path, runtime-typed settings map — a plain
// struct gives the same thing (grouped, named limits with defaults) and
// turns a typo'd setting name into a compile error instead of a panic.
type Config struct {
	GCAllocThreshold int
	GCMaxImmortals   int
	GCMaxStackDepth  int

	SymbolMaxSymbols int

	SymbolTableMinSize     int
	SymbolTableScaleFactor int
	SymbolTableMaxProbe    int

	MapCacheSize int
}

// NewConfig returns a configuration primed with every default the core
// needs.
func NewConfig() *Config {
	return &Config{
		GCAllocThreshold: 4096,
		GCMaxImmortals:   16384,
		GCMaxStackDepth:  1_000_000,

		SymbolMaxSymbols: 65536,

		SymbolTableMinSize:     4,
		SymbolTableScaleFactor: 4,
		SymbolTableMaxProbe:    8,

		MapCacheSize: 4093, // prime, per original_source/dat/LookupCache.c
	}
}
