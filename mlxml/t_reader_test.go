package mlxml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/mlxml"
)

func writeTemp(tst *testing.T, name, content string) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("write temp file: %v", err)
	}
	return path
}

func Test_parse_minimal_attributes_and_geometry(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<Attribute attid="1" name="density">2700</Attribute>
<GeometryFile filename="wing.xml">
<GeometryReference gid="10" ref="Face1" name="wingFace"/>
</GeometryFile>
</MeshLink>`)

	a, attrs, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if !rep.Ok() {
		tst.Fatalf("expected clean report, got %v", rep.Errors())
	}
	if attrs.Version != "1.0" {
		tst.Fatalf("expected version 1.0, got %q", attrs.Version)
	}
	if a.Attribs.Count() != 1 {
		tst.Fatalf("expected 1 attribute, got %d", a.Attribs.Count())
	}
	if len(a.GeometryFiles()) != 1 {
		tst.Fatalf("expected 1 geometry file, got %d", len(a.GeometryFiles()))
	}
	if a.Geoms.Count() != 1 {
		tst.Fatalf("expected 1 geometry group, got %d", a.Geoms.Count())
	}
}

func Test_parse_bad_sibling_is_reported_but_does_not_abort(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<Attribute attid="1" name="a">1</Attribute>
<Attribute attid="bad" name="b">2</Attribute>
<Attribute attid="3" name="c">3</Attribute>
</MeshLink>`)

	a, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if rep.Ok() {
		tst.Fatalf("expected the bad sibling to be reported")
	}
	if len(rep.Errors()) != 1 {
		tst.Fatalf("expected exactly 1 reported error, got %d", len(rep.Errors()))
	}
	if a.Attribs.Count() != 2 {
		tst.Fatalf("expected the two valid siblings to still be added, got %d", a.Attribs.Count())
	}
}

func Test_parse_mesh_sheet_face_index_form_text(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<MeshFile filename="mesh.xml">
<MeshModelReference name="model1" gref="1">
<MeshSheet name="sheet1">
<MeshFace etype="Tri3" name="face1">1 2 3</MeshFace>
</MeshSheet>
</MeshModelReference>
</MeshFile>
</MeshLink>`)

	a, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if !rep.Ok() {
		tst.Fatalf("expected clean report, got %v", rep.Errors())
	}
	model, ok := a.GetModelByName("model1")
	if !ok {
		tst.Fatalf("expected model1 to exist")
	}
	sheet, ok := model.GetMeshSheetByName("sheet1")
	if !ok {
		tst.Fatalf("expected sheet1 to exist")
	}
	faces := sheet.GetMeshFaces()
	if len(faces) != 1 {
		tst.Fatalf("expected 1 face, got %d", len(faces))
	}
	f := faces[0]
	if f.I1 != 1 || f.I2 != 2 || f.I3 != 3 || f.I4 != mlid.UNUSED {
		tst.Fatalf("unexpected face indices: %+v", f)
	}
	if f.Gref != 1 {
		tst.Fatalf("expected face to inherit model gref 1, got %d", f.Gref)
	}
}

func Test_parse_mesh_string_edge_and_point_reference(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<MeshFile filename="mesh.xml">
<MeshModelReference name="model1" gref="2">
<ParamVertex vref="v1" gref="2" dim="1">0.5</ParamVertex>
<MeshPointReference name="pt1">v1</MeshPointReference>
<MeshString name="string1">
<MeshEdge etype="Edge2" name="edge1">1 2</MeshEdge>
</MeshString>
</MeshModelReference>
</MeshFile>
</MeshLink>`)

	a, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if !rep.Ok() {
		tst.Fatalf("expected clean report, got %v", rep.Errors())
	}
	model, ok := a.GetModelByName("model1")
	if !ok {
		tst.Fatalf("expected model1 to exist")
	}
	pt, ok := model.MeshPoints.GetByName("pt1")
	if !ok {
		tst.Fatalf("expected pt1 to exist")
	}
	if pt.PV == nil || pt.PV.U != 0.5 {
		tst.Fatalf("expected pt1 to carry a copied ParamVertex with U=0.5, got %+v", pt.PV)
	}
	str, ok := model.GetMeshStringByName("string1")
	if !ok {
		tst.Fatalf("expected string1 to exist")
	}
	edges := str.GetEdges()
	if len(edges) != 1 || edges[0].I1 != 1 || edges[0].I2 != 2 {
		tst.Fatalf("unexpected edges: %+v", edges)
	}
}

func Test_parse_edge_and_face_index_blocks_resolve_paramvertex_by_index(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<MeshFile filename="mesh.xml">
<MeshModelReference name="model1" gref="2">
<MeshString name="string1">
<ParamVertex vref="17" gref="2" dim="1">0.0</ParamVertex>
<ParamVertex vref="18" gref="2" dim="1">0.625156631213186</ParamVertex>
<MeshEdge etype="Edge2" name="edge1">18 17</MeshEdge>
</MeshString>
<MeshSheet name="sheet1">
<ParamVertex vref="48" gref="2" dim="2">0.685932280326931 0.500076367091483</ParamVertex>
<ParamVertex vref="35" gref="2" dim="2">0.622145350652728 0.335526084684179</ParamVertex>
<ParamVertex vref="34" gref="2" dim="2">0.709241184551512 0.227833120699047</ParamVertex>
<MeshFace etype="Tri3" name="face1">48 35 34</MeshFace>
</MeshSheet>
</MeshModelReference>
</MeshFile>
</MeshLink>`)

	a, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if !rep.Ok() {
		tst.Fatalf("expected clean report, got %v", rep.Errors())
	}
	model, ok := a.GetModelByName("model1")
	if !ok {
		tst.Fatalf("expected model1 to exist")
	}

	str, ok := model.GetMeshStringByName("string1")
	if !ok {
		tst.Fatalf("expected string1 to exist")
	}
	edges := str.GetEdges()
	if len(edges) != 1 {
		tst.Fatalf("expected 1 edge, got %d", len(edges))
	}
	edge := edges[0]
	if edge.PVs[0] == nil || edge.PVs[0].U != 0.625156631213186 {
		tst.Fatalf("expected edge PVs[0] resolved from vref %q, got %+v", "18", edge.PVs[0])
	}
	if edge.PVs[1] == nil || edge.PVs[1].U != 0.0 {
		tst.Fatalf("expected edge PVs[1] resolved from vref %q, got %+v", "17", edge.PVs[1])
	}

	sheet, ok := model.GetMeshSheetByName("sheet1")
	if !ok {
		tst.Fatalf("expected sheet1 to exist")
	}
	faces := sheet.GetMeshFaces()
	if len(faces) != 1 {
		tst.Fatalf("expected 1 face, got %d", len(faces))
	}
	face := faces[0]
	wantU := []float64{0.685932280326931, 0.622145350652728, 0.709241184551512}
	wantV := []float64{0.500076367091483, 0.335526084684179, 0.227833120699047}
	for i := 0; i < 3; i++ {
		if face.PVs[i] == nil || face.PVs[i].U != wantU[i] || face.PVs[i].V != wantV[i] {
			tst.Fatalf("face PVs[%d] = %+v, want U=%v V=%v", i, face.PVs[i], wantU[i], wantV[i])
		}
	}
}

func Test_parse_name_forbidden_when_count_greater_than_one(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<MeshFile filename="mesh.xml">
<MeshModelReference name="model1">
<MeshSheet name="sheet1">
<MeshFace etype="Tri3" count="2" name="oops">1 2 3 4 5 6</MeshFace>
</MeshSheet>
</MeshModelReference>
</MeshFile>
</MeshLink>`)

	_, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if rep.Ok() {
		tst.Fatalf("expected a reported error for name on a count>1 block")
	}
}

func Test_parse_linkage_and_transform(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0">
<MeshFile filename="mesh.xml">
<MeshModelReference name="model1">
<MeshString name="stringA">
<MeshEdge etype="Edge2" name="eA">1 2</MeshEdge>
</MeshString>
<MeshString name="stringB">
<MeshEdge etype="Edge2" name="eB">3 4</MeshEdge>
</MeshString>
</MeshModelReference>
</MeshFile>
<Transform xid="1">1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1</Transform>
<MeshElementLinkage name="link1" sourceEntityRef="stringA" targetEntityRef="stringB" xref="1"/>
</MeshLink>`)

	a, _, rep, err := mlxml.Parse(path, "", nil)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if !rep.Ok() {
		tst.Fatalf("expected clean report, got %v", rep.Errors())
	}
	if a.Links.TransformCount() != 1 {
		tst.Fatalf("expected 1 transform, got %d", a.Links.TransformCount())
	}
	if a.Links.LinkageCount() != 1 {
		tst.Fatalf("expected 1 linkage, got %d", a.Links.LinkageCount())
	}
}

func Test_parse_unreadable_file_returns_hard_error(tst *testing.T) {
	_, _, _, err := mlxml.Parse(filepath.Join(tst.TempDir(), "missing.xml"), "", nil)
	if err == nil {
		tst.Fatalf("expected an error for a missing file")
	}
}

func Test_parse_malformed_xml_returns_hard_error(tst *testing.T) {
	path := writeTemp(tst, "doc.xml", `<MeshLink version="1.0"><Attribute attid="1">`)
	_, _, _, err := mlxml.Parse(path, "", nil)
	if err == nil {
		tst.Fatalf("expected an error for malformed XML")
	}
}
