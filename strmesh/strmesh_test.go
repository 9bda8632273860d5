package strmesh

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/geombind"
	"github.com/cpmech/meshlink/geomkernel/fake"
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/mlid"
)

func flatBlock(id, jd, kd int) *Block {
	b := &Block{Id: id, Jd: jd, Kd: kd}
	n := id * jd * kd
	for c := 0; c < 3; c++ {
		b.XYZ[c] = make([]float64, n)
	}
	for k := 0; k < kd; k++ {
		for j := 0; j < jd; j++ {
			for i := 0; i < id; i++ {
				ind := ijk2ind(i, j, k, id, jd)
				b.XYZ[0][ind] = float64(i)
				b.XYZ[1][ind] = float64(j)
				b.XYZ[2][ind] = float64(k)
			}
		}
	}
	return b
}

func Test_plot3d_round_trip(tst *testing.T) {
	b := flatBlock(3, 2, 2)
	path := filepath.Join(tst.TempDir(), "block.x")
	if err := b.WritePLOT3D(path); err != nil {
		tst.Fatalf("write: %v", err)
	}
	got, err := ReadPLOT3D(path)
	if err != nil {
		tst.Fatalf("read: %v", err)
	}
	if got.Id != 3 || got.Jd != 2 || got.Kd != 2 {
		tst.Fatalf("unexpected dims: %+v", got)
	}
	for c := 0; c < 3; c++ {
		for i := range b.XYZ[c] {
			if got.XYZ[c][i] != b.XYZ[c][i] {
				tst.Fatalf("coordinate %d/%d mismatch: got %v want %v", c, i, got.XYZ[c][i], b.XYZ[c][i])
			}
		}
	}
}

func Test_refine_preserves_coarse_lattice_and_interpolates(tst *testing.T) {
	b := flatBlock(2, 2, 2)
	r := Refine(b, 3, 1, 1)
	if r.Id != 4 || r.Jd != 2 || r.Kd != 2 {
		tst.Fatalf("unexpected refined dims: %dx%dx%d", r.Id, r.Jd, r.Kd)
	}
	// coarse station i=0 and i=1 map to refined i=0 and i=3
	for j := 0; j < 2; j++ {
		for k := 0; k < 2; k++ {
			lo := ijk2ind(0, j, k, r.Id, r.Jd)
			hi := ijk2ind(3, j, k, r.Id, r.Jd)
			if r.XYZ[0][lo] != 0 || r.XYZ[0][hi] != 1 {
				tst.Fatalf("coarse lattice not preserved at j=%d k=%d", j, k)
			}
		}
	}
	// interior points are a linear interpolation between 0 and 1
	mid := ijk2ind(1, 0, 0, r.Id, r.Jd)
	want := 1.0 / 3.0
	if math.Abs(r.XYZ[0][mid]-want) > 1e-12 {
		tst.Fatalf("expected interpolated x=%v, got %v", want, r.XYZ[0][mid])
	}
}

func Test_refine_clamps_sub_unity_multiples(tst *testing.T) {
	b := flatBlock(2, 2, 2)
	r := Refine(b, 0, -1, 1)
	if r.Id != 2 || r.Jd != 2 || r.Kd != 2 {
		tst.Fatalf("expected refine multiples to clamp to 1, got %dx%dx%d", r.Id, r.Jd, r.Kd)
	}
}

func Test_adhere_projects_boundary_points_onto_associated_plane(tst *testing.T) {
	// a 2x2x1 coarse block sitting at z=0.3, refined only in I; the
	// I-direction edge at (j=0,k=0) is associated with a plane at z=0,
	// so the adherence pass should pull the interpolated points back
	// down onto z=0 even though the coarse corners sit at z=0.3.
	b := &Block{Id: 2, Jd: 2, Kd: 1}
	for c := 0; c < 3; c++ {
		b.XYZ[c] = make([]float64, 4)
	}
	b.XYZ[0] = []float64{0, 1, 0, 1}
	b.XYZ[1] = []float64{0, 0, 1, 1}
	b.XYZ[2] = []float64{0.3, 0.3, 0.3, 0.3}

	refined := Refine(b, 4, 1, 1)
	if refined.Id != 5 {
		tst.Fatalf("expected refined Id=5, got %d", refined.Id)
	}

	attribs := attrib.NewStore()
	geoms := geombind.NewStore(attribs)
	group := &geombind.Group{Gid: 1, Name: "baseplane", Aref: mlid.InvalidAttId, GroupID: mlid.InvalidGid, EntityNames: map[string]bool{"Face1": true}}
	if err := geoms.AddGroup(group); err != nil {
		tst.Fatalf("add group: %v", err)
	}

	names := mlid.NewNameGenerator()
	model := meshtopo.NewMeshModel("/Base/block", 1, mlid.InvalidAttId, names)
	edge := &meshelem.MeshEdge{
		Common: meshelem.Common{Gref: 1, Aref: mlid.InvalidAttId, Mid: mlid.InvalidMid, Key: meshelem.IndexKey(mlid.HashEdge(1, 2))},
		I1:     1, I2: 2,
	}
	edge.Name = names.Next(mlid.KindEdge)
	if _, err := model.AddStringEdge("bottomI", 1, mlid.InvalidAttId, edge); err != nil {
		tst.Fatalf("add edge: %v", err)
	}

	kernel := fake.New("fake")
	kernel.AddPlane(&fake.Plane{Name: "baseplane", Origin: [3]float64{0, 0, 0}, Normal: [3]float64{0, 0, 1}})

	Adhere(refined, 4, 1, 1, 2, 2, 1, model, geoms, kernel)

	for i := 1; i < 4; i++ {
		ind := ijk2ind(i, 0, 0, refined.Id, refined.Jd)
		if math.Abs(refined.XYZ[2][ind]) > 1e-9 {
			tst.Fatalf("expected adhered point %d to land on z=0, got z=%v", i, refined.XYZ[2][ind])
		}
	}
	// a point not on the associated edge (j=1 row) keeps its interpolated z
	untouched := ijk2ind(1, 1, 0, refined.Id, refined.Jd)
	if math.Abs(refined.XYZ[2][untouched]-0.3) > 1e-12 {
		tst.Fatalf("expected untouched row to keep z=0.3, got %v", refined.XYZ[2][untouched])
	}
}
