package meshtopo

import (
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// MeshSheet is a 2D topology container: it owns its faces and the
// face-edges created as a side effect of adding a face, plus the
// sheet-level ParamVertex table (spec §3).
type MeshSheet struct {
	TopoCommon
	Faces     *meshelem.Index[*meshelem.MeshFace]
	FaceEdges *meshelem.Index[*meshelem.MeshEdge]
	PVs       *paramvertex.Table
}

// NewMeshSheet returns an empty, named MeshSheet.
func NewMeshSheet(name string, gref mlid.Gid, aref mlid.AttId) *MeshSheet {
	return &MeshSheet{
		TopoCommon: TopoCommon{TKind: KindSheet, Mid: mlid.InvalidMid, Name: name, Gref: gref, Aref: aref},
		Faces:      meshelem.NewIndex[*meshelem.MeshFace](),
		FaceEdges:  meshelem.NewIndex[*meshelem.MeshEdge](),
		PVs:        paramvertex.NewTable(),
	}
}

// AddFace inserts face into the sheet's face index and cascades: each
// of the face's bounding edges is registered as a face-edge in this
// sheet, carrying a ParamVertex copy propagated from the face's own
// vertices where present (spec §4.5 "cascade", §8 property 6). The
// newly-registered (or matched, if already present) face-edges are
// returned so the caller (MeshModel) can further cascade their
// endpoints into the model-level face-edge-point cache.
func (s *MeshSheet) AddFace(face *meshelem.MeshFace) (*meshelem.MeshFace, bool, []*meshelem.MeshEdge, error) {
	got, inserted, err := s.Faces.Add(face)
	if err != nil {
		return nil, false, nil, err
	}
	if !inserted {
		// idempotent add: face-edges were already cascaded the first time.
		return got, false, nil, nil
	}
	pairs := face.EdgeIndexPairs()
	edges := make([]*meshelem.MeshEdge, 0, len(pairs))
	for i, pair := range pairs {
		pv1c := facePVforLocalVertex(face, i)
		pv2c := facePVforLocalVertex(face, (i+1)%len(pairs))
		edge := &meshelem.MeshEdge{
			Common: meshelem.Common{
				Gref: got.Gref,
				Aref: mlid.InvalidAttId,
				Mid:  mlid.InvalidMid,
				Key:  meshelem.IndexKey(mlid.HashEdge(pair[0], pair[1])),
			},
			I1: pair[0],
			I2: pair[1],
		}
		edge.PVs[0] = pv1(pv1c)
		edge.PVs[1] = pv1(pv2c)
		edge.Name = "" // filled by caller via name generator before Add
		edges = append(edges, edge)
	}
	return got, true, edges, nil
}

// facePVforLocalVertex returns the ParamVertex (if any) the face
// recorded for its local vertex at position idx, or nil.
func facePVforLocalVertex(face *meshelem.MeshFace, idx int) *paramvertex.ParamVertex {
	if idx < 0 || idx >= len(face.PVs) {
		return nil
	}
	return face.PVs[idx]
}

// AddFaceEdge inserts edge (already built and named by the caller) into
// this sheet's own face-edges index. Idempotent for index-form
// duplicates.
func (s *MeshSheet) AddFaceEdge(edge *meshelem.MeshEdge) (*meshelem.MeshEdge, bool, error) {
	return s.FaceEdges.Add(edge)
}

// GetFaceByInds looks up a face by its canonical (order-independent)
// index tuple. Quadrilaterals and triangles share the table (spec
// §4.5 "Face lookups are single-level").
func (s *MeshSheet) GetFaceByInds(i1, i2, i3, i4 int64) (*meshelem.MeshFace, bool) {
	return s.Faces.GetByHash(mlid.HashFace(i1, i2, i3, i4))
}

// GetMeshFaces returns the sheet's faces sorted by creation order.
func (s *MeshSheet) GetMeshFaces() []*meshelem.MeshFace { return s.Faces.Sorted() }

// GetFaceEdges returns the sheet's face-edges sorted by creation order.
func (s *MeshSheet) GetFaceEdges() []*meshelem.MeshEdge { return s.FaceEdges.Sorted() }

// AddParamVertex inserts pv into the sheet-level ParamVertex table.
func (s *MeshSheet) AddParamVertex(pv *paramvertex.ParamVertex) error {
	return s.PVs.Add(pv)
}
