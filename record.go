package samizdat

import "strings"

// Record pairs a name symbol with a SymbolTable payload (spec.md §4.4.4).
// Executable-node translation decodes parser output almost entirely
// through Records: a node's "name" tags its shape (@call, @varRef, ...)
// and its payload carries the operands.
type Record struct {
	Header
	name    *Symbol
	payload *SymbolTable
}

func (r *Record) header() *Header { return &r.Header }

// MakeRecord constructs a record from a name and payload. A nil payload
// is treated as the empty symbol table.
func MakeRecord(name *Symbol, payload *SymbolTable) *Record {
	if payload == nil {
		payload = emptySymbolTable
	}
	r := &Record{name: name, payload: payload}
	register(r, clsRecord)
	return r
}

func (r *Record) Name() *Symbol       { return r.name }
func (r *Record) Payload() *SymbolTable { return r.payload }

func (r *Record) GCMark() {
	Mark(r.name)
	Mark(r.payload)
}

// TotalOrder is name, then payload (spec.md §3.4 table).
func (r *Record) TotalOrder(other Value) Ordering {
	o, ok := other.(*Record)
	if !ok {
		fatalf("Record.TotalOrder: not a record: %s", DebugString(other))
	}
	if ord := TotalOrder(r.name, o.name); ord != OrderEqual {
		return ord
	}
	return TotalOrder(r.payload, o.payload)
}

func (r *Record) DebugString() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(DebugString(r.name))
	b.WriteString(r.payload.DebugString())
	return b.String()
}

// recGetN destructures rec, checking that every key in keys is present
// in its payload and writing the corresponding values to out, in order.
// It returns false (without writing to out) if any key is missing,
// mirroring the reference's recGetN used pervasively by the translator
// to decode executable-tree nodes (spec.md §4.4.4).
func recGetN(rec *Record, keys []*Symbol, out []*Value) bool {
	if len(keys) != len(out) {
		fatalf("recGetN: mismatched keys/out counts (%d, %d)", len(keys), len(out))
	}
	values := make([]Value, len(keys))
	for i, k := range keys {
		v := rec.payload.Get(k)
		if v == nil {
			return false
		}
		values[i] = v
	}
	for i, v := range values {
		*out[i] = v
	}
	return true
}

// RecGetN is the exported form of recGetN, for embedders outside this
// package.
func RecGetN(rec *Record, keys []*Symbol, out []*Value) bool { return recGetN(rec, keys, out) }
