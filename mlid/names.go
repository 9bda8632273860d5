package mlid

import "fmt"

// Kind identifies an element kind for the purposes of auto-naming and
// per-kind monotonic counters (spec §4.1).
type Kind int

// element kinds
const (
	KindPoint Kind = iota
	KindEdge
	KindFace
	KindString
	KindSheet
	KindModel
	KindLinkage
	KindGeneric
)

var prefixes = map[Kind]string{
	KindPoint:   "ml_point",
	KindEdge:    "ml_edge",
	KindFace:    "ml_face",
	KindString:  "ml_string",
	KindSheet:   "ml_sheet",
	KindModel:   "ml_model",
	KindLinkage: "ml_linkage",
	KindGeneric: "ml_elem",
}

// NameGenerator assigns deterministic, unique names to elements that
// were not given an explicit name. One NameGenerator is owned per
// façade (not process-wide -- spec §5/§9 calls out process globals as
// an anti-pattern to avoid in the port), with one monotonic counter per
// Kind that persists across inserts and removes (spec §3 "Auto-generated
// names").
type NameGenerator struct {
	counters map[Kind]int64
}

// NewNameGenerator returns a ready-to-use generator with all counters at
// zero.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{counters: make(map[Kind]int64)}
}

// Next returns the next deterministic name for kind, e.g. "ml_edge-42",
// and advances that kind's counter. Counters never rewind on removal, so
// repeated parses of the same input produce the same sequence of names
// as long as insertion order is the same (spec §4.1 "reproducible given
// identical insertion order").
func (g *NameGenerator) Next(kind Kind) string {
	n := g.counters[kind]
	g.counters[kind] = n + 1
	prefix, ok := prefixes[kind]
	if !ok {
		prefix = prefixes[KindGeneric]
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}

// Count returns the current counter value for kind, without advancing
// it.
func (g *NameGenerator) Count(kind Kind) int64 { return g.counters[kind] }
