package meshtopo

import (
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// MeshString is a 1D topology container: it owns its edges and the
// string-level ParamVertex table (spec §3).
type MeshString struct {
	TopoCommon
	Edges *meshelem.Index[*meshelem.MeshEdge]
	PVs   *paramvertex.Table
}

// NewMeshString returns an empty, named MeshString.
func NewMeshString(name string, gref mlid.Gid, aref mlid.AttId) *MeshString {
	return &MeshString{
		TopoCommon: TopoCommon{TKind: KindString, Mid: mlid.InvalidMid, Name: name, Gref: gref, Aref: aref},
		Edges:      meshelem.NewIndex[*meshelem.MeshEdge](),
		PVs:        paramvertex.NewTable(),
	}
}

// AddEdge inserts edge into the string's own edge index (owner insert;
// idempotent for index-form duplicates, per spec §4.4).
func (s *MeshString) AddEdge(edge *meshelem.MeshEdge) (*meshelem.MeshEdge, bool, error) {
	return s.Edges.Add(edge)
}

// GetEdgeByInds looks up an edge by its (unordered) index pair within
// this string's own scope.
func (s *MeshString) GetEdgeByInds(i1, i2 int64) (*meshelem.MeshEdge, bool) {
	return s.Edges.GetByHash(mlid.HashEdge(i1, i2))
}

// GetEdges returns the string's edges sorted by creation order (spec
// §4.5 enumeration guarantee).
func (s *MeshString) GetEdges() []*meshelem.MeshEdge { return s.Edges.Sorted() }

// AddParamVertex inserts pv into the string-level ParamVertex table.
func (s *MeshString) AddParamVertex(pv *paramvertex.ParamVertex) error {
	return s.PVs.Add(pv)
}
