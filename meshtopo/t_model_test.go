package meshtopo

import (
	"testing"

	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

func newEdge(i1, i2 int64, gref mlid.Gid) *meshelem.MeshEdge {
	return &meshelem.MeshEdge{
		Common: meshelem.Common{Gref: gref, Aref: mlid.InvalidAttId, Mid: mlid.InvalidMid, Key: meshelem.IndexKey(mlid.HashEdge(i1, i2))},
		I1:     i1, I2: i2,
	}
}

func newFace(i1, i2, i3, i4 int64, gref mlid.Gid) *meshelem.MeshFace {
	return &meshelem.MeshFace{
		Common: meshelem.Common{Gref: gref, Aref: mlid.InvalidAttId, Mid: mlid.InvalidMid, Key: meshelem.IndexKey(mlid.HashFace(i1, i2, i3, i4))},
		I1:     i1, I2: i2, I3: i3, I4: i4,
	}
}

func Test_cascade_completeness_face_to_edges_and_points(tst *testing.T) {
	names := mlid.NewNameGenerator()
	model := NewMeshModel("/Base/test", 1, mlid.InvalidAttId, names)

	face := newFace(10, 20, 30, mlid.UNUSED, 5)
	face.Name = names.Next(mlid.KindFace)
	if _, err := model.AddSheetFace("sheetA", 5, mlid.InvalidAttId, face); err != nil {
		tst.Fatalf("add face failed: %v", err)
	}

	for _, pair := range [][2]int64{{10, 20}, {20, 30}, {30, 10}} {
		if _, ok := model.FaceEdges.GetByHash(mlid.HashEdge(pair[0], pair[1])); !ok {
			tst.Fatalf("expected face-edge %v registered in model cache", pair)
		}
		sheet, _ := model.GetMeshSheetByName("sheetA")
		if _, ok := sheet.FaceEdges.GetByHash(mlid.HashEdge(pair[0], pair[1])); !ok {
			tst.Fatalf("expected face-edge %v registered in sheet cache", pair)
		}
	}
	for _, idx := range []int64{10, 20, 30} {
		if _, ok := model.FaceEdgePoints.GetByHash(mlid.HashPoint(idx)); !ok {
			tst.Fatalf("expected face-edge-point %d registered", idx)
		}
	}
}

func Test_lowest_highest_duality_single_level(tst *testing.T) {
	names := mlid.NewNameGenerator()
	model := NewMeshModel("/Base/test", 1, mlid.InvalidAttId, names)
	p := &meshelem.MeshPoint{
		Common: meshelem.Common{Name: names.Next(mlid.KindPoint), Gref: 7, Mid: mlid.InvalidMid, Key: meshelem.IndexKey(mlid.HashPoint(99))},
		I1:     99,
	}
	model.AddMeshPoint(p)
	lo, err := model.FindLowestTopoPointByInd(99)
	if err != nil {
		tst.Fatalf("lowest: %v", err)
	}
	hi, err := model.FindHighestTopoPointByInd(99)
	if err != nil {
		tst.Fatalf("highest: %v", err)
	}
	if lo != hi {
		tst.Fatalf("single-level point must have lo == hi")
	}
}

func Test_lowest_highest_duality_multi_level(tst *testing.T) {
	names := mlid.NewNameGenerator()
	model := NewMeshModel("/Base/test", 1, mlid.InvalidAttId, names)

	// model-level declaration (outermost)
	modelPt := &meshelem.MeshPoint{
		Common: meshelem.Common{Name: names.Next(mlid.KindPoint), Gref: 15, Mid: mlid.InvalidMid, Key: meshelem.IndexKey(mlid.HashPoint(17))},
		I1:     17,
	}
	model.AddMeshPoint(modelPt)

	// string-level declaration (innermost) via an edge touching index 17
	edge := newEdge(17, 18, 15)
	edge.Name = names.Next(mlid.KindEdge)
	pv := &paramvertex.ParamVertex{Vref: "v17", Gref: 15, U: 0.5}
	edge.PVs[0] = pv
	if _, err := model.AddStringEdge("stringA", 15, mlid.InvalidAttId, edge); err != nil {
		tst.Fatalf("add edge: %v", err)
	}

	lo, err := model.FindLowestTopoPointByInd(17)
	if err != nil {
		tst.Fatalf("lowest: %v", err)
	}
	hi, err := model.FindHighestTopoPointByInd(17)
	if err != nil {
		tst.Fatalf("highest: %v", err)
	}
	if lo == hi {
		tst.Fatalf("multi-level point must have distinct lo/hi when defined at >1 level")
	}
	if lo.PV == nil || lo.PV.U != 0.5 {
		tst.Fatalf("lowest point should carry the edge-propagated ParamVertex, got %+v", lo.PV)
	}
	if hi != modelPt {
		tst.Fatalf("highest point should be the model-level declaration")
	}
}

func Test_find_face_by_inds_and_lowest_edge(tst *testing.T) {
	names := mlid.NewNameGenerator()
	model := NewMeshModel("/Base/oneraM6", 1, mlid.InvalidAttId, names)
	face := newFace(48, 35, 34, mlid.UNUSED, 9)
	face.Name = names.Next(mlid.KindFace)
	model.AddSheetFace("TrimSurf-55", 9, mlid.InvalidAttId, face)

	got, sheet, err := model.FindFaceByInds(34, 48, 35, mlid.UNUSED)
	if err != nil {
		tst.Fatalf("find face: %v", err)
	}
	if got != face {
		tst.Fatalf("expected to find the same face value")
	}
	if sheet.Name != "TrimSurf-55" {
		tst.Fatalf("expected sheet TrimSurf-55, got %q", sheet.Name)
	}

	strEdge := newEdge(18, 17, 15)
	strEdge.Name = names.Next(mlid.KindEdge)
	model.AddStringEdge("stringB", 15, mlid.InvalidAttId, strEdge)
	e, err := model.FindLowestTopoEdgeByInds(17, 18)
	if err != nil || e == nil {
		tst.Fatalf("expected to find string edge: %v", err)
	}
}
