package meshelem

import (
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// MeshFace is a 2-cell: three (Tri3) or four (Quad4) indices, or a
// reference, carrying up to four ParamVertex copies (spec §3). I4 ==
// mlid.UNUSED marks a triangular face.
type MeshFace struct {
	Common
	I1, I2, I3, I4 int64
	PVs            [4]*paramvertex.ParamVertex
}

// IsTriangle reports whether the face is triangular (I4 == UNUSED).
func (f *MeshFace) IsTriangle() bool { return f.I4 == mlid.UNUSED }

// Indices returns the face's index tuple, meaningful only in by-index
// form. For a triangle, Indices()[3] == mlid.UNUSED.
func (f *MeshFace) Indices() [4]int64 { return [4]int64{f.I1, f.I2, f.I3, f.I4} }

// EdgeIndexPairs returns the (unordered) vertex-index pairs of the
// face's bounding edges, used by MeshSheet to register face-edges as a
// side effect of adding a face (spec §4.5 "cascade").
func (f *MeshFace) EdgeIndexPairs() [][2]int64 {
	if f.IsTriangle() {
		return [][2]int64{{f.I1, f.I2}, {f.I2, f.I3}, {f.I3, f.I1}}
	}
	return [][2]int64{{f.I1, f.I2}, {f.I2, f.I3}, {f.I3, f.I4}, {f.I4, f.I1}}
}

// CommonOf implements the Elem interface.
func (f *MeshFace) CommonOf() *Common { return &f.Common }
