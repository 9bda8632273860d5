package meshelem

import (
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// Common carries the fields every mesh element kind shares (spec §3
// "Each element additionally carries").
type Common struct {
	Mid     mlid.Mid // mlid.InvalidMid if unset
	Aref    mlid.AttId
	Gref    mlid.Gid
	Name    string
	Order   int64 // monotonic creation-order counter, per container
	Key     Key
	Ref     string // raw reference string, set only for by-reference elements
}

// MeshPoint is a 0-cell, by-index (single index I1) or by-reference
// (Ref), carrying at most one ParamVertex (spec §3).
type MeshPoint struct {
	Common
	I1 int64 // meaningful only when Key.Form == ByIndex
	PV *paramvertex.ParamVertex // optional; nil if unset
}

// Indices returns the point's index tuple, meaningful only in by-index
// form.
func (p *MeshPoint) Indices() [1]int64 { return [1]int64{p.I1} }

// CommonOf implements the Elem interface.
func (p *MeshPoint) CommonOf() *Common { return &p.Common }
