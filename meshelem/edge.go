package meshelem

import "github.com/cpmech/meshlink/paramvertex"

// MeshEdge is a 1-cell: two indices (I1, I2) or a reference, carrying up
// to two ParamVertex copies (spec §3). PVs[0] corresponds to I1, PVs[1]
// to I2, when present.
type MeshEdge struct {
	Common
	I1, I2 int64
	PVs    [2]*paramvertex.ParamVertex
}

// Indices returns the edge's two indices, meaningful only in by-index
// form.
func (e *MeshEdge) Indices() [2]int64 { return [2]int64{e.I1, e.I2} }

// CommonOf implements the Elem interface.
func (e *MeshEdge) CommonOf() *Common { return &e.Common }
