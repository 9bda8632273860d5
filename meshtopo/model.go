package meshtopo

import (
	"sort"

	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// MeshModel owns its strings and sheets, plus the model-level caches
// that make multi-level lookup possible: MeshPoints (model scope),
// EdgePoints (implied by strings), FaceEdgePoints and FaceEdges
// (implied by sheets). These caches are strictly additive: they never
// shadow a user-declared element at the same topological level (spec §3
// "Containers").
type MeshModel struct {
	TopoCommon

	strings     map[string]*MeshString
	sheets      map[string]*MeshSheet
	stringOrder int64
	sheetOrder  int64

	MeshPoints     *meshelem.Index[*meshelem.MeshPoint]
	EdgePoints     *meshelem.Index[*meshelem.MeshPoint]
	FaceEdgePoints *meshelem.Index[*meshelem.MeshPoint]
	FaceEdges      *meshelem.Index[*meshelem.MeshEdge]

	// PVs holds the ParamVertex entries declared directly under a
	// MeshModelReference (spec §4.8 "ParamVertex children that are
	// direct children of the model reference"), consulted when building
	// the model-scope MeshPoints a MeshPointReference block names.
	PVs *paramvertex.Table

	Names *mlid.NameGenerator
}

// NewMeshModel returns an empty, named MeshModel. names is the
// façade-owned name generator (spec §5/§9: counters are per-façade, not
// process-wide).
func NewMeshModel(name string, gref mlid.Gid, aref mlid.AttId, names *mlid.NameGenerator) *MeshModel {
	return &MeshModel{
		TopoCommon:     TopoCommon{TKind: KindModel, Mid: mlid.InvalidMid, Name: name, Gref: gref, Aref: aref},
		strings:        make(map[string]*MeshString),
		sheets:         make(map[string]*MeshSheet),
		MeshPoints:     meshelem.NewIndex[*meshelem.MeshPoint](),
		EdgePoints:     meshelem.NewIndex[*meshelem.MeshPoint](),
		FaceEdgePoints: meshelem.NewIndex[*meshelem.MeshPoint](),
		FaceEdges:      meshelem.NewIndex[*meshelem.MeshEdge](),
		PVs:            paramvertex.NewTable(),
		Names:          names,
	}
}

// AddParamVertex inserts pv into the model-level ParamVertex table.
func (m *MeshModel) AddParamVertex(pv *paramvertex.ParamVertex) error {
	return m.PVs.Add(pv)
}

// GetOrCreateString returns the named MeshString, creating it (in
// creation order) if it does not yet exist.
func (m *MeshModel) GetOrCreateString(name string, gref mlid.Gid, aref mlid.AttId) *MeshString {
	if s, ok := m.strings[name]; ok {
		return s
	}
	s := NewMeshString(name, gref, aref)
	s.Order = m.stringOrder
	m.stringOrder++
	m.strings[name] = s
	return s
}

// AllParamVertices returns every ParamVertex declared anywhere in the
// model's scope: directly under the model reference, plus every sheet
// and string's own table. Used by a kernel-assisted nearest-vertex
// search (spec §6.2-facing convenience), which needs the full
// candidate set regardless of which container declared each vertex.
func (m *MeshModel) AllParamVertices() []*paramvertex.ParamVertex {
	out := m.PVs.All()
	for _, s := range m.Sheets() {
		out = append(out, s.PVs.All()...)
	}
	for _, s := range m.Strings() {
		out = append(out, s.PVs.All()...)
	}
	return out
}

// GetMeshStringByName returns the named string, or (nil, false).
func (m *MeshModel) GetMeshStringByName(name string) (*MeshString, bool) {
	s, ok := m.strings[name]
	return s, ok
}

// GetOrCreateSheet returns the named MeshSheet, creating it (in
// creation order) if it does not yet exist.
func (m *MeshModel) GetOrCreateSheet(name string, gref mlid.Gid, aref mlid.AttId) *MeshSheet {
	if s, ok := m.sheets[name]; ok {
		return s
	}
	s := NewMeshSheet(name, gref, aref)
	s.Order = m.sheetOrder
	m.sheetOrder++
	m.sheets[name] = s
	return s
}

// GetMeshSheetByName returns the named sheet, or (nil, false).
func (m *MeshModel) GetMeshSheetByName(name string) (*MeshSheet, bool) {
	s, ok := m.sheets[name]
	return s, ok
}

// Strings returns every string owned by the model, in creation order.
func (m *MeshModel) Strings() []*MeshString {
	out := make([]*MeshString, 0, len(m.strings))
	for _, s := range m.strings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Sheets returns every sheet owned by the model, in creation order.
func (m *MeshModel) Sheets() []*MeshSheet {
	out := make([]*MeshSheet, 0, len(m.sheets))
	for _, s := range m.sheets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// AddMeshPoint inserts a model-scope (user-declared) point.
func (m *MeshModel) AddMeshPoint(p *meshelem.MeshPoint) (*meshelem.MeshPoint, bool, error) {
	return m.MeshPoints.Add(p)
}

// AddStringEdge inserts edge into the named string (creating the string
// if needed), then cascades the edge's two endpoints into the model's
// EdgePoints cache, propagating each endpoint's ParamVertex copy from
// the edge's own PVs where present (spec §4.5 "Strings perform the
// analogous cascade for their edges into edge-points").
func (m *MeshModel) AddStringEdge(stringName string, gref mlid.Gid, aref mlid.AttId, edge *meshelem.MeshEdge) (*meshelem.MeshEdge, error) {
	str := m.GetOrCreateString(stringName, gref, aref)
	got, inserted, err := str.AddEdge(edge)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return got, nil
	}
	m.cascadeEdgePoint(got.I1, got.Gref, got.Aref, got.PVs[0])
	m.cascadeEdgePoint(got.I2, got.Gref, got.Aref, got.PVs[1])
	return got, nil
}

func (m *MeshModel) cascadeEdgePoint(i1 int64, gref mlid.Gid, aref mlid.AttId, pv *paramvertex.ParamVertex) {
	p := pointFromIndex(i1, gref, aref, pv)
	p.Name = m.Names.Next(mlid.KindPoint)
	m.EdgePoints.Add(p) // idempotent for an index already present
}

// AddSheetFace inserts face into the named sheet (creating the sheet if
// needed), cascading the face's bounding edges into the sheet's own
// face-edges table, then further cascading those edges (and their
// endpoints) into the model's FaceEdges and FaceEdgePoints caches (spec
// §4.5, §8 property 6 "cascade completeness").
func (m *MeshModel) AddSheetFace(sheetName string, gref mlid.Gid, aref mlid.AttId, face *meshelem.MeshFace) (*meshelem.MeshFace, error) {
	sheet := m.GetOrCreateSheet(sheetName, gref, aref)
	got, inserted, newEdges, err := sheet.AddFace(face)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return got, nil
	}
	for _, e := range newEdges {
		e.Name = m.Names.Next(mlid.KindEdge)
		sheetEdge, sheetInserted, err := sheet.AddFaceEdge(e)
		if err != nil {
			return nil, err
		}
		// cascade into model-level caches regardless of whether the
		// sheet already had this edge: the model cache is populated
		// from the union of all sheets, so a different sheet sharing
		// the same boundary edge must still register it here.
		_, _, _ = m.FaceEdges.Add(sheetEdge)
		_ = sheetInserted
		m.cascadeFaceEdgePoint(sheetEdge.I1, sheetEdge.Gref, sheetEdge.Aref, sheetEdge.PVs[0])
		m.cascadeFaceEdgePoint(sheetEdge.I2, sheetEdge.Gref, sheetEdge.Aref, sheetEdge.PVs[1])
	}
	return got, nil
}

func (m *MeshModel) cascadeFaceEdgePoint(i1 int64, gref mlid.Gid, aref mlid.AttId, pv *paramvertex.ParamVertex) {
	p := pointFromIndex(i1, gref, aref, pv)
	p.Name = m.Names.Next(mlid.KindPoint)
	m.FaceEdgePoints.Add(p)
}

// FindFaceByInds searches every sheet owned by the model, in creation
// order, returning the first face whose canonical index tuple matches
// (spec §4.5 "Face lookups are single-level").
func (m *MeshModel) FindFaceByInds(i1, i2, i3, i4 int64) (*meshelem.MeshFace, *MeshSheet, error) {
	for _, sheet := range m.Sheets() {
		if f, ok := sheet.GetFaceByInds(i1, i2, i3, i4); ok {
			return f, sheet, nil
		}
	}
	return nil, nil, mlchk.Err(mlchk.NotFound, "no face with indices (%d,%d,%d,%d) in model %q", i1, i2, i3, i4, m.Name)
}
