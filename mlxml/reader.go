// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/cpmech/meshlink/assoc"
	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/geombind"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/internal/mlio"
	"github.com/cpmech/meshlink/linkage"
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// DocumentAttrs carries the namespace/schema-location strings the
// parser captured from the root element, so a later Write call can
// reproduce them byte-for-byte (spec §4.9 "preserves xmlns, schema
// location").
type DocumentAttrs struct {
	Version        string
	Xmlns          string
	XmlnsXsi       string
	SchemaLocation string
}

// Parse reads filename, validates it against schemaPath (if non-empty),
// and builds a MeshAssociativity following the seven ordered parse
// passes of spec §4.8. Per-node failures are accumulated into the
// returned Report and do not abort the whole document; only a malformed
// (non-well-formed) document or an unreadable file returns a non-nil
// error.
func Parse(filename, schemaPath string, log *mlio.Logger) (*assoc.MeshAssociativity, DocumentAttrs, *mlchk.Report, error) {
	var attrs DocumentAttrs
	data, err := mlio.ReadFile(filename)
	if err != nil {
		return nil, attrs, nil, mlchk.Wrap(mlchk.ParseError, err, "cannot read %q", filename)
	}

	rep := &mlchk.Report{}
	if schemaPath != "" {
		if err := validateSchema(data, schemaPath); err != nil {
			rep.Add(mlchk.Wrap(mlchk.SchemaValidation, err, "schema validation against %q failed", schemaPath))
		}
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, attrs, nil, mlchk.Wrap(mlchk.ParseError, err, "malformed XML in %q", filename)
	}

	attrs.Version = doc.Version
	for _, at := range doc.Attrs {
		switch at.Name.Local {
		case "xmlns":
			attrs.Xmlns = at.Value
		case "xsi":
			// xmlns:xsi decodes with Name.Local == "xsi" when the
			// document uses the literal "xmlns:xsi" form, since
			// encoding/xml treats "xmlns:*" as ordinary attributes
			// when the prefix itself isn't a declared namespace URI.
			attrs.XmlnsXsi = at.Value
		case "schemaLocation":
			attrs.SchemaLocation = at.Value
		}
	}
	if log != nil {
		log.Pfyel("parsed document attrs: %+v\n", attrs)
	}

	a := assoc.New()

	// pass 1: scalar attributes
	for _, ax := range doc.Attributes {
		rep.Add(asError(parseAndAddAttribute(a.Attribs, ax, false)))
	}
	// pass 2: attribute groups
	for _, ax := range doc.AttributeGroups {
		rep.Add(asError(parseAndAddAttribute(a.Attribs, ax, true)))
	}
	// pass 3: geometry files + leaf references
	for _, gx := range doc.GeometryFiles {
		rep.Add(asError(parseGeometryFile(a, gx)))
	}
	// pass 4: composite geometry groups
	for _, gx := range doc.GeometryGroups {
		rep.Add(asError(parseGeometryGroup(a, gx)))
	}
	// pass 5: mesh files -> models (+ recursive parse)
	for _, mx := range doc.MeshFiles {
		rep.Add(asError(parseMeshFile(a, mx)))
	}
	// pass 6: transforms
	for _, tx := range doc.Transforms {
		rep.Add(asError(parseTransform(a, tx)))
	}
	// pass 7: linkages
	for _, lx := range doc.Linkages {
		rep.Add(asError(parseLinkage(a, lx)))
	}

	return a, attrs, rep, nil
}

func asError(err error) *mlchk.Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*mlchk.Error); ok {
		return e
	}
	return mlchk.Wrap(mlchk.ParseError, err, "unexpected error")
}

// validateSchema performs a best-effort check: it confirms the XSD file
// is readable and itself well-formed XML. No third-party XSD validator
// exists anywhere in the retrieval pack (see DESIGN.md), so full schema
// semantic validation is out of scope; this still satisfies spec §4.8's
// "validation failure is reported but the parser is still callable
// independently" contract for the common failure modes (missing or
// corrupt schema file).
func validateSchema(docData []byte, schemaPath string) error {
	schemaData, err := mlio.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("cannot read schema %q: %w", schemaPath, err)
	}
	var probe struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(schemaData, &probe); err != nil {
		return fmt.Errorf("schema %q is not well-formed XML: %w", schemaPath, err)
	}
	if probe.XMLName.Local != "schema" {
		return fmt.Errorf("schema %q root element is %q, expected an XSD <schema>", schemaPath, probe.XMLName.Local)
	}
	return nil
}

func parseAndAddAttribute(store *attrib.Store, ax attributeXML, isGroup bool) error {
	attid, err := parseAttId(ax.AttId)
	if err != nil {
		return err
	}
	return store.Add(&attrib.Attribute{
		AttId:    attid,
		Name:     ax.Name,
		Contents: ax.Contents,
		IsGroup:  isGroup,
	})
}

func parseGeometryFile(a *assoc.MeshAssociativity, gx geometryFileXML) error {
	aref, err := parseAttId(gx.Aref)
	if err != nil {
		return err
	}
	file := &geombind.GeometryFile{Filename: gx.Filename, Aref: aref}
	for _, rx := range gx.References {
		gid, err := parseGid(rx.Gid)
		if err != nil {
			return err
		}
		raref, err := parseAttId(rx.Aref)
		if err != nil {
			return err
		}
		leaf := &geombind.Group{
			Gid:         gid,
			Name:        rx.Name,
			Aref:        raref,
			GroupID:     mlid.InvalidGid,
			EntityNames: map[string]bool{rx.Ref: true},
		}
		if err := a.Geoms.AddGroup(leaf); err != nil {
			return err
		}
		file.GroupIDs = append(file.GroupIDs, gid)
	}
	a.AddGeometryFile(file)
	return nil
}

func parseGeometryGroup(a *assoc.MeshAssociativity, gx geometryGroupXML) error {
	gid, err := parseGid(gx.Gid)
	if err != nil {
		return err
	}
	aref, err := parseAttId(gx.Aref)
	if err != nil {
		return err
	}
	var children []mlid.Gid
	for _, f := range strings.Fields(gx.Contents) {
		cgid, err := parseGid(f)
		if err != nil {
			return err
		}
		children = append(children, cgid)
	}
	group := &geombind.Group{
		Gid:       gid,
		Name:      gx.Name,
		Aref:      aref,
		GroupID:   mlid.InvalidGid,
		ChildGids: children,
	}
	return a.Geoms.AddGroup(group)
}

func parseMeshFile(a *assoc.MeshAssociativity, mx meshFileXML) error {
	maref, err := parseAttId(mx.Aref)
	if err != nil {
		return err
	}
	file := &assoc.MeshFile{Filename: mx.Filename, Aref: maref}
	for _, rx := range mx.ModelRefs {
		name := rx.Name
		if name == "" {
			name = rx.Ref
		}
		gref, err := parseGid(rx.Gref)
		if err != nil {
			return err
		}
		aref, err := parseAttId(rx.Aref)
		if err != nil {
			return err
		}
		mid, err := parseMid(rx.Mid)
		if err != nil {
			return err
		}
		if name == "" {
			name = a.Names.Next(mlid.KindModel)
		}
		model := a.GetOrCreateModel(name, gref, aref)
		if mid.Valid() {
			model.Mid = mid
		}
		file.ModelRefs = append(file.ModelRefs, name)
		if err := parseModelReference(a, model, rx); err != nil {
			return err
		}
	}
	a.AddMeshFile(file)
	return nil
}

func parseModelReference(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, rx meshModelReferenceXML) error {
	for _, pvx := range rx.ParamVertices {
		pv, err := parseParamVertex(pvx)
		if err != nil {
			return err
		}
		if err := model.AddParamVertex(pv); err != nil {
			return err
		}
	}
	for _, sx := range rx.Sheets {
		if err := parseSheet(a, model, sx); err != nil {
			return err
		}
	}
	for _, sx := range rx.SheetRefs {
		if err := parseSheet(a, model, sx); err != nil {
			return err
		}
	}
	for _, sx := range rx.Strings {
		if err := parseString(a, model, sx); err != nil {
			return err
		}
	}
	for _, sx := range rx.StringRefs {
		if err := parseString(a, model, sx); err != nil {
			return err
		}
	}
	for _, px := range rx.PointRefs {
		if err := parseModelPointReference(a, model, px); err != nil {
			return err
		}
	}
	return nil
}

func parseParamVertex(pvx paramVertexXML) (*paramvertex.ParamVertex, error) {
	gref, err := parseGid(pvx.Gref)
	if err != nil {
		return nil, err
	}
	mid, err := parseMid(pvx.Mid)
	if err != nil {
		return nil, err
	}
	var dim int
	switch pvx.Dim {
	case "1":
		dim = 1
	case "2":
		dim = 2
	default:
		return nil, mlchk.Err(mlchk.ParseError, "ParamVertex %q has invalid dim %q (must be 1 or 2)", pvx.Vref, pvx.Dim)
	}
	floats, err := decodeFloats(pvx.Content, dim)
	if err != nil {
		return nil, err
	}
	pv := &paramvertex.ParamVertex{Vref: pvx.Vref, Gref: gref, Mid: mid, U: floats[0]}
	if dim == 2 {
		pv.V = floats[1]
	}
	return pv, nil
}

func parseSheet(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, sx meshContainerXML) error {
	gref, err := parseGid(sx.Gref)
	if err != nil {
		return err
	}
	aref, err := parseAttId(sx.Aref)
	if err != nil {
		return err
	}
	if gref == mlid.InvalidGid {
		gref = model.Gref
	}
	sheet := model.GetOrCreateSheet(sx.Name, gref, aref)
	for _, pvx := range sx.ParamVertices {
		pv, err := parseParamVertex(pvx)
		if err != nil {
			return err
		}
		if err := sheet.AddParamVertex(pv); err != nil {
			return err
		}
	}
	for _, fx := range sx.Faces {
		if err := parseFaceBlock(a, model, sheet, fx, false); err != nil {
			return err
		}
	}
	for _, fx := range sx.FaceRefs {
		if err := parseFaceBlock(a, model, sheet, fx, true); err != nil {
			return err
		}
	}
	return nil
}

func parseString(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, sx meshContainerXML) error {
	gref, err := parseGid(sx.Gref)
	if err != nil {
		return err
	}
	aref, err := parseAttId(sx.Aref)
	if err != nil {
		return err
	}
	if gref == mlid.InvalidGid {
		gref = model.Gref
	}
	str := model.GetOrCreateString(sx.Name, gref, aref)
	for _, pvx := range sx.ParamVertices {
		pv, err := parseParamVertex(pvx)
		if err != nil {
			return err
		}
		if err := str.AddParamVertex(pv); err != nil {
			return err
		}
	}
	for _, ex := range sx.Edges {
		if err := parseEdgeBlock(a, model, str, ex, false); err != nil {
			return err
		}
	}
	for _, ex := range sx.EdgeRefs {
		if err := parseEdgeBlock(a, model, str, ex, true); err != nil {
			return err
		}
	}
	return nil
}

func blockGrefAref(ex meshElemXML, parentGref mlid.Gid) (mlid.Gid, mlid.AttId, mlid.Mid, error) {
	gref, err := parseGid(ex.Gref)
	if err != nil {
		return 0, 0, 0, err
	}
	if gref == mlid.InvalidGid {
		gref = parentGref
	}
	aref, err := parseAttId(ex.Aref)
	if err != nil {
		return 0, 0, 0, err
	}
	mid, err := parseMid(ex.Mid)
	if err != nil {
		return 0, 0, 0, err
	}
	return gref, aref, mid, nil
}

// pvByIndex looks up table for the ParamVertex whose vref is the
// integer-to-string conversion of idx (spec §4.8 "Content decoding":
// "Per-element ParamVertex lookups are by the integer-to-string
// conversion of the index against the current parent container's
// vertex map"), returning a detached value copy or nil if absent.
func pvByIndex(table *paramvertex.Table, idx int64) *paramvertex.ParamVertex {
	found, ok := table.Get(strconv.FormatInt(idx, 10))
	if !ok {
		return nil
	}
	cp := paramvertex.Copy(found)
	return &cp
}

func parseEdgeBlock(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, str *meshtopo.MeshString, ex meshElemXML, byRef bool) error {
	width, err := etypeWidth(ex.Etype)
	if err != nil {
		return err
	}
	if width != 2 {
		return mlchk.Err(mlchk.ParseError, "MeshEdge block must use etype Edge2, got %q", ex.Etype)
	}
	count, err := decodeCount(ex.Count)
	if err != nil {
		return err
	}
	if ex.Name != "" && count > 1 {
		return mlchk.Err(mlchk.ParseError, "name %q is forbidden on a block with count=%d", ex.Name, count)
	}
	gref, aref, mid, err := blockGrefAref(ex, str.Gref)
	if err != nil {
		return err
	}
	if byRef {
		refs, err := decodeRefBlock(ex.Content, count)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			name := ex.Name
			if name == "" {
				name = a.Names.Next(mlid.KindEdge)
			}
			edge := &meshelem.MeshEdge{Common: meshelem.Common{
				Gref: gref, Aref: aref, Mid: mid, Name: name, Key: meshelem.RefKey(ref), Ref: ref,
			}}
			if _, err := model.AddStringEdge(str.Name, gref, aref, edge); err != nil {
				return err
			}
		}
		return nil
	}
	rows, err := decodeIndexBlock(ex.Format, ex.Content, count, 2)
	if err != nil {
		return err
	}
	for _, row := range rows {
		name := ex.Name
		if name == "" {
			name = a.Names.Next(mlid.KindEdge)
		}
		edge := &meshelem.MeshEdge{Common: meshelem.Common{
			Gref: gref, Aref: aref, Mid: mid, Name: name, Key: meshelem.IndexKey(mlid.HashEdge(row[0], row[1])),
		}, I1: row[0], I2: row[1]}
		edge.PVs[0] = pvByIndex(str.PVs, row[0])
		edge.PVs[1] = pvByIndex(str.PVs, row[1])
		if _, err := model.AddStringEdge(str.Name, gref, aref, edge); err != nil {
			return err
		}
	}
	return nil
}

func parseFaceBlock(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, sheet *meshtopo.MeshSheet, fx meshElemXML, byRef bool) error {
	width, err := etypeWidth(fx.Etype)
	if err != nil {
		return err
	}
	if width != 3 && width != 4 {
		return mlchk.Err(mlchk.ParseError, "MeshFace block must use etype Tri3 or Quad4, got %q", fx.Etype)
	}
	count, err := decodeCount(fx.Count)
	if err != nil {
		return err
	}
	if fx.Name != "" && count > 1 {
		return mlchk.Err(mlchk.ParseError, "name %q is forbidden on a block with count=%d", fx.Name, count)
	}
	gref, aref, mid, err := blockGrefAref(fx, sheet.Gref)
	if err != nil {
		return err
	}
	if byRef {
		refs, err := decodeRefBlock(fx.Content, count)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			name := fx.Name
			if name == "" {
				name = a.Names.Next(mlid.KindFace)
			}
			face := &meshelem.MeshFace{Common: meshelem.Common{
				Gref: gref, Aref: aref, Mid: mid, Name: name, Key: meshelem.RefKey(ref), Ref: ref,
			}, I4: mlid.UNUSED}
			if _, err := model.AddSheetFace(sheet.Name, gref, aref, face); err != nil {
				return err
			}
		}
		return nil
	}
	rows, err := decodeIndexBlock(fx.Format, fx.Content, count, width)
	if err != nil {
		return err
	}
	for _, row := range rows {
		name := fx.Name
		if name == "" {
			name = a.Names.Next(mlid.KindFace)
		}
		i4 := mlid.UNUSED
		if width == 4 {
			i4 = row[3]
		}
		face := &meshelem.MeshFace{Common: meshelem.Common{
			Gref: gref, Aref: aref, Mid: mid, Name: name, Key: meshelem.IndexKey(mlid.HashFace(row[0], row[1], row[2], i4)),
		}, I1: row[0], I2: row[1], I3: row[2], I4: i4}
		face.PVs[0] = pvByIndex(sheet.PVs, row[0])
		face.PVs[1] = pvByIndex(sheet.PVs, row[1])
		face.PVs[2] = pvByIndex(sheet.PVs, row[2])
		if width == 4 {
			face.PVs[3] = pvByIndex(sheet.PVs, row[3])
		}
		if _, err := model.AddSheetFace(sheet.Name, gref, aref, face); err != nil {
			return err
		}
	}
	return nil
}

func parseModelPointReference(a *assoc.MeshAssociativity, model *meshtopo.MeshModel, px meshPointRefXML) error {
	count, err := decodeCount(px.Count)
	if err != nil {
		return err
	}
	if px.Name != "" && count > 1 {
		return mlchk.Err(mlchk.ParseError, "name %q is forbidden on a MeshPointReference block with count=%d", px.Name, count)
	}
	gref, err := parseGid(px.Gref)
	if err != nil {
		return err
	}
	if gref == mlid.InvalidGid {
		gref = model.Gref
	}
	aref, err := parseAttId(px.Aref)
	if err != nil {
		return err
	}
	mid, err := parseMid(px.Mid)
	if err != nil {
		return err
	}
	refs, err := decodeRefBlock(px.Content, count)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		name := px.Name
		if name == "" {
			name = a.Names.Next(mlid.KindPoint)
		}
		var pv *paramvertex.ParamVertex
		if found, ok := model.PVs.Get(ref); ok {
			cp := paramvertex.Copy(found)
			pv = &cp
		}
		point := &meshelem.MeshPoint{Common: meshelem.Common{
			Gref: gref, Aref: aref, Mid: mid, Name: name, Key: meshelem.RefKey(ref), Ref: ref,
		}, PV: pv}
		if _, _, err := model.AddMeshPoint(point); err != nil {
			return err
		}
	}
	return nil
}

func parseTransform(a *assoc.MeshAssociativity, tx transformXML) error {
	xid, err := parseXid(tx.Xid)
	if err != nil {
		return err
	}
	aref, err := parseAttId(tx.Aref)
	if err != nil {
		return err
	}
	contents, err := linkage.ParseTransformContents(tx.Contents)
	if err != nil {
		return err
	}
	return a.Links.AddTransform(&linkage.Transform{Xid: xid, Name: tx.Name, Contents: contents, Aref: aref})
}

func parseLinkage(a *assoc.MeshAssociativity, lx linkageXML) error {
	aref, err := parseAttId(lx.Aref)
	if err != nil {
		return err
	}
	xref, err := parseXid(lx.Xref)
	if err != nil {
		return err
	}
	name := lx.Name
	if name == "" {
		name = a.Names.Next(mlid.KindLinkage)
	}
	return a.AddLinkage(&linkage.Linkage{
		Name: name, SourceRef: lx.SourceEntityRef, TargetRef: lx.TargetEntityRef, Aref: aref, Xref: xref,
	})
}
