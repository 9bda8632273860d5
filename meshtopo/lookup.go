package meshtopo

import (
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
)

// FindLowestTopoPointByInd searches, in order, the model-level
// edge-points (string scope) -> face-edge-points (sheet scope) ->
// model MeshPoints, returning the first hit: "innermost definition
// wins" (spec §4.5, §8 property 3).
func (m *MeshModel) FindLowestTopoPointByInd(i1 int64) (*meshelem.MeshPoint, error) {
	tag := mlid.HashPoint(i1)
	if p, ok := m.EdgePoints.GetByHash(tag); ok {
		return p, nil
	}
	if p, ok := m.FaceEdgePoints.GetByHash(tag); ok {
		return p, nil
	}
	if p, ok := m.MeshPoints.GetByHash(tag); ok {
		return p, nil
	}
	return nil, mlchk.Err(mlchk.NotFound, "no point with index %d in model %q", i1, m.Name)
}

// FindHighestTopoPointByInd searches the same three levels in reverse:
// MeshPoints -> face-edge-points -> edge-points, returning the
// outermost definition (spec §4.5, §8 property 3).
func (m *MeshModel) FindHighestTopoPointByInd(i1 int64) (*meshelem.MeshPoint, error) {
	tag := mlid.HashPoint(i1)
	if p, ok := m.MeshPoints.GetByHash(tag); ok {
		return p, nil
	}
	if p, ok := m.FaceEdgePoints.GetByHash(tag); ok {
		return p, nil
	}
	if p, ok := m.EdgePoints.GetByHash(tag); ok {
		return p, nil
	}
	return nil, mlchk.Err(mlchk.NotFound, "no point with index %d in model %q", i1, m.Name)
}

// FindLowestTopoEdgeByInds searches string edges (across every string
// owned by the model, in creation order) first, then the model's
// aggregated face-edges cache (spec §4.5).
func (m *MeshModel) FindLowestTopoEdgeByInds(i1, i2 int64) (*meshelem.MeshEdge, error) {
	tag := mlid.HashEdge(i1, i2)
	for _, str := range m.Strings() {
		if e, ok := str.Edges.GetByHash(tag); ok {
			return e, nil
		}
	}
	if e, ok := m.FaceEdges.GetByHash(tag); ok {
		return e, nil
	}
	return nil, mlchk.Err(mlchk.NotFound, "no edge with indices (%d,%d) in model %q", i1, i2, m.Name)
}
