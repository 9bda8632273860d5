package assoc_test

import (
	"math"
	"testing"

	"github.com/cpmech/meshlink/assoc"
	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/geombind"
	"github.com/cpmech/meshlink/geomkernel/fake"
	"github.com/cpmech/meshlink/linkage"
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

func Test_facade_cross_model_sheet_and_string_lookup(tst *testing.T) {
	a := assoc.New()
	m1 := a.GetOrCreateModel("/Base/model1", 1, mlid.InvalidAttId)
	m2 := a.GetOrCreateModel("/Base/model2", 2, mlid.InvalidAttId)

	edge := newEdge(1, 2, 1)
	edge.Name = a.Names.Next(mlid.KindEdge)
	if _, err := m1.AddStringEdge("stringA", 1, mlid.InvalidAttId, edge); err != nil {
		tst.Fatalf("add edge: %v", err)
	}

	other := newEdge(3, 4, 2)
	other.Name = a.Names.Next(mlid.KindEdge)
	if _, err := m2.AddStringEdge("stringB", 2, mlid.InvalidAttId, other); err != nil {
		tst.Fatalf("add edge: %v", err)
	}

	if _, ok := a.GetMeshStringByName("stringA"); !ok {
		tst.Fatalf("expected to resolve stringA across models")
	}
	if _, ok := a.GetMeshStringByName("stringB"); !ok {
		tst.Fatalf("expected to resolve stringB across models")
	}
	if _, ok := a.GetMeshStringByName("missing"); ok {
		tst.Fatalf("unexpected resolution of missing string")
	}
}

func Test_facade_add_linkage_resolves_across_models(tst *testing.T) {
	a := assoc.New()
	m1 := a.GetOrCreateModel("/Base/model1", 1, mlid.InvalidAttId)

	edge1 := newEdge(1, 2, 1)
	edge1.Name = a.Names.Next(mlid.KindEdge)
	m1.AddStringEdge("stringA", 1, mlid.InvalidAttId, edge1)

	edge2 := newEdge(5, 6, 1)
	edge2.Name = a.Names.Next(mlid.KindEdge)
	m1.AddStringEdge("stringB", 1, mlid.InvalidAttId, edge2)

	err := a.AddLinkage(&linkage.Linkage{Name: "l1", SourceRef: "stringA", TargetRef: "stringB", Aref: mlid.InvalidAttId, Xref: mlid.InvalidXid})
	if err != nil {
		tst.Fatalf("add linkage: %v", err)
	}
	if a.Links.LinkageCount() != 1 {
		tst.Fatalf("expected 1 linkage, got %d", a.Links.LinkageCount())
	}

	err = a.AddLinkage(&linkage.Linkage{Name: "l2", SourceRef: "stringA", TargetRef: "nowhere", Aref: mlid.InvalidAttId, Xref: mlid.InvalidXid})
	if err == nil {
		tst.Fatalf("expected unresolved target ref error")
	}
}

func Test_facade_owns_attribute_and_geometry_stores(tst *testing.T) {
	a := assoc.New()
	if err := a.Attribs.Add(&attrib.Attribute{AttId: 1, Name: "density", Contents: "2700"}); err != nil {
		tst.Fatalf("add attribute: %v", err)
	}

	a.AddGeometryFile(&geombind.GeometryFile{Filename: "wing.xml", Aref: mlid.InvalidAttId})
	if len(a.GeometryFiles()) != 1 {
		tst.Fatalf("expected 1 geometry file, got %d", len(a.GeometryFiles()))
	}

	if err := a.Geoms.AddGroup(&geombind.Group{Gid: 10, Name: "Face1", Aref: mlid.InvalidAttId, GroupID: mlid.InvalidGid, EntityNames: map[string]bool{"Face1": true}}); err != nil {
		tst.Fatalf("add group: %v", err)
	}
	if a.Geoms.Count() != 1 {
		tst.Fatalf("expected 1 geometry group, got %d", a.Geoms.Count())
	}
}

func Test_facade_kernel_registry_is_instance_owned(tst *testing.T) {
	a1 := assoc.New()
	a2 := assoc.New()
	a1.Kernels.Add(fake.New("k1"))
	if _, ok := a2.Kernels.Get("k1"); ok {
		tst.Fatalf("kernel registries must not be shared across façade instances")
	}
}

func Test_facade_clear_resets_every_store(tst *testing.T) {
	a := assoc.New()
	a.GetOrCreateModel("/Base/model1", 1, mlid.InvalidAttId)
	a.Attribs.Add(&attrib.Attribute{AttId: 1, Name: "x", Contents: "1"})
	a.AddGeometryFile(&geombind.GeometryFile{Filename: "f.xml", Aref: mlid.InvalidAttId})

	a.Clear()

	if len(a.Models()) != 0 {
		tst.Fatalf("expected no models after Clear")
	}
	if a.Attribs.Count() != 0 {
		tst.Fatalf("expected no attributes after Clear")
	}
	if len(a.GeometryFiles()) != 0 {
		tst.Fatalf("expected no geometry files after Clear")
	}
}

func Test_facade_nearest_param_vertex_resolves_closest_on_sphere(tst *testing.T) {
	a := assoc.New()
	model := a.GetOrCreateModel("/Base/sphere", 10, mlid.InvalidAttId)

	if err := a.Geoms.AddGroup(&geombind.Group{
		Gid: 10, Name: "sphereFace", Aref: mlid.InvalidAttId, GroupID: mlid.InvalidGid,
		EntityNames: map[string]bool{"sphereFace": true},
	}); err != nil {
		tst.Fatalf("add group: %v", err)
	}

	near := &paramvertex.ParamVertex{Vref: "near", Gref: 10, Mid: mlid.InvalidMid, U: 0, V: 0}
	far := &paramvertex.ParamVertex{Vref: "far", Gref: 10, Mid: mlid.InvalidMid, U: math.Pi, V: 0}
	if err := model.AddParamVertex(near); err != nil {
		tst.Fatalf("add near pv: %v", err)
	}
	if err := model.AddParamVertex(far); err != nil {
		tst.Fatalf("add far pv: %v", err)
	}

	kernel := fake.New("k")
	kernel.AddSphere(&fake.Sphere{Name: "sphereFace", Center: [3]float64{0, 0, 0}, Radius: 1})

	got, _, err := a.NearestParamVertex(model, kernel, [3]float64{0.9, 0, 0})
	if err != nil {
		tst.Fatalf("nearest: %v", err)
	}
	if got.Vref != "near" {
		tst.Fatalf("expected nearest vertex %q, got %q", "near", got.Vref)
	}
}

func Test_facade_model_names_sorted(tst *testing.T) {
	a := assoc.New()
	a.GetOrCreateModel("/Base/zeta", 1, mlid.InvalidAttId)
	a.GetOrCreateModel("/Base/alpha", 2, mlid.InvalidAttId)
	names := a.ModelNames()
	if len(names) != 2 || names[0] != "/Base/alpha" || names[1] != "/Base/zeta" {
		tst.Fatalf("expected sorted model names, got %v", names)
	}
}
