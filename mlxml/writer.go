// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlxml

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cpmech/meshlink/assoc"
	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/internal/mlio"
	"github.com/cpmech/meshlink/linkage"
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// WriteOptions controls the writer's output discipline (spec §4.9).
type WriteOptions struct {
	Attrs    DocumentAttrs
	Compress bool // base64-encode index-form face blocks
	Now      time.Time // stamped into the header comment; callers pass a fixed value for reproducible tests
}

// Write serializes a to dir/filename, following spec §4.9's write
// order and formatting discipline: a timestamp comment first; root
// attributes/attribute-groups, geometry files+references, geometry
// groups, mesh files, transforms, linkages, in that order; within a
// model reference, the model's ParamVertex/MeshPointReference block
// first, then sheets, then strings; names only on individually
// addressable (count==1) blocks; ParamVertex content at 15 significant
// digits.
func Write(a *assoc.MeshAssociativity, dir, filename string, opts WriteOptions) error {
	header := new(bytes.Buffer)
	body := new(bytes.Buffer)
	footer := new(bytes.Buffer)

	writeHeader(header, opts)
	writeAttributes(body, a.Attribs)
	writeGeometryFiles(body, a)
	writeGeometryGroups(body, a)
	writeMeshFiles(body, a, opts)
	writeTransforms(body, a.Links)
	writeLinkages(body, a.Links)
	mlio.Ff(footer, "</MeshLink>\n")

	return mlio.WriteFileVD(dir, filename, header, body, footer)
}

func writeHeader(buf *bytes.Buffer, opts WriteOptions) {
	mlio.Ff(buf, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	mlio.Ff(buf, "<!-- generated %s -->\n", opts.Now.UTC().Format(time.RFC3339))
	version := opts.Attrs.Version
	if version == "" {
		version = "1.0"
	}
	mlio.Ff(buf, "<MeshLink version=%s", attrVal(version))
	if opts.Attrs.Xmlns != "" {
		mlio.Ff(buf, " xmlns=%s", attrVal(opts.Attrs.Xmlns))
	}
	if opts.Attrs.XmlnsXsi != "" {
		mlio.Ff(buf, " xmlns:xsi=%s", attrVal(opts.Attrs.XmlnsXsi))
	}
	if opts.Attrs.SchemaLocation != "" {
		mlio.Ff(buf, " xsi:schemaLocation=%s", attrVal(opts.Attrs.SchemaLocation))
	}
	mlio.Ff(buf, ">\n")
}

// attrVal renders a double-quoted, XML-escaped attribute value.
func attrVal(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return "\"" + b.String() + "\""
}

func escText(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func optAttr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + "=" + attrVal(value)
}

func attIdAttr(name string, id mlid.AttId) string {
	if !id.Valid() {
		return ""
	}
	return optAttr(name, itoa64(int64(id)))
}

func gidAttr(name string, id mlid.Gid) string {
	if !id.Valid() {
		return ""
	}
	return optAttr(name, itoa64(int64(id)))
}

func midAttr(name string, id mlid.Mid) string {
	if !id.Valid() {
		return ""
	}
	return optAttr(name, itoa64(int64(id)))
}

func xidAttr(name string, id mlid.Xid) string {
	if !id.Valid() {
		return ""
	}
	return optAttr(name, itoa64(int64(id)))
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatFloat15 renders v at 15 significant digits (spec §4.9
// "ParamVertex content at 15 significant digits").
func formatFloat15(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}

func writeAttributes(buf *bytes.Buffer, store *attrib.Store) {
	for _, att := range store.All() {
		tag := "Attribute"
		if att.IsGroup {
			tag = "AttributeGroup"
		}
		mlio.Ff(buf, "<%s attid=\"%d\"%s>%s</%s>\n", tag, att.AttId, optAttr("name", att.Name), escText(att.Contents), tag)
	}
}

func writeGeometryFiles(buf *bytes.Buffer, a *assoc.MeshAssociativity) {
	for _, f := range a.GeometryFiles() {
		mlio.Ff(buf, "<GeometryFile filename=%s%s>\n", attrVal(f.Filename), attIdAttr("aref", f.Aref))
		for _, gid := range f.GroupIDs {
			group, ok := a.Geoms.GetByID(gid)
			if !ok {
				continue
			}
			ref := firstSorted(group.EntityNames)
			mlio.Ff(buf, "<GeometryReference gid=\"%d\" ref=%s%s%s/>\n", group.Gid, attrVal(ref), attIdAttr("aref", group.Aref), optAttr("name", group.Name))
		}
		mlio.Ff(buf, "</GeometryFile>\n")
	}
}

func writeGeometryGroups(buf *bytes.Buffer, a *assoc.MeshAssociativity) {
	for _, gid := range a.Geoms.Ids() {
		group, ok := a.Geoms.GetByID(gid)
		if !ok || len(group.ChildGids) == 0 {
			continue
		}
		children := make([]string, len(group.ChildGids))
		for i, c := range group.ChildGids {
			children[i] = itoa64(int64(c))
		}
		mlio.Ff(buf, "<GeometryGroup gid=\"%d\"%s%s>%s</GeometryGroup>\n", group.Gid, optAttr("name", group.Name), attIdAttr("aref", group.Aref), strings.Join(children, " "))
	}
}

func firstSorted(set map[string]bool) string {
	if len(set) == 0 {
		return ""
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names[0]
}

func writeMeshFiles(buf *bytes.Buffer, a *assoc.MeshAssociativity, opts WriteOptions) {
	for _, f := range a.MeshFiles() {
		mlio.Ff(buf, "<MeshFile filename=%s%s>\n", attrVal(f.Filename), attIdAttr("aref", f.Aref))
		for _, modelName := range f.ModelRefs {
			model, ok := a.GetModelByName(modelName)
			if !ok {
				continue
			}
			writeModelReference(buf, model, opts)
		}
		mlio.Ff(buf, "</MeshFile>\n")
	}
}

func writeModelReference(buf *bytes.Buffer, model *meshtopo.MeshModel, opts WriteOptions) {
	mlio.Ff(buf, "<MeshModelReference ref=%s%s%s%s>\n", attrVal(model.Name), midAttr("mid", model.Mid), attIdAttr("aref", model.Aref), gidAttr("gref", model.Gref))

	for _, pv := range sortedParamVertices(model.PVs) {
		writeParamVertex(buf, pv)
	}
	writeModelPoints(buf, model)

	for _, sheet := range model.Sheets() {
		writeSheet(buf, sheet, opts)
	}
	for _, str := range model.Strings() {
		writeString(buf, str, opts)
	}

	mlio.Ff(buf, "</MeshModelReference>\n")
}

func sortedParamVertices(t *paramvertex.Table) []*paramvertex.ParamVertex {
	out := t.All()
	sort.Slice(out, func(i, j int) bool { return out[i].Vref < out[j].Vref })
	return out
}

func writeParamVertex(buf *bytes.Buffer, pv *paramvertex.ParamVertex) {
	dim := 1
	content := formatFloat15(pv.U)
	if pv.V != 0 {
		dim = 2
		content = formatFloat15(pv.U) + " " + formatFloat15(pv.V)
	}
	mlio.Ff(buf, "<ParamVertex vref=%s gref=\"%d\" dim=\"%d\"%s>%s</ParamVertex>\n", attrVal(pv.Vref), int64(pv.Gref), dim, midAttr("mid", pv.Mid), content)
}

// writeModelPoints emits the model's by-reference MeshPoints as one
// MeshPointReference block per element (count==1 throughout, so every
// point's name is addressable -- spec §4.9 "names only when count==1").
func writeModelPoints(buf *bytes.Buffer, model *meshtopo.MeshModel) {
	for _, p := range model.MeshPoints.Sorted() {
		if p.Key.Form != meshelem.ByRef {
			continue
		}
		mlio.Ff(buf, "<MeshPointReference%s%s%s%s count=\"1\">%s</MeshPointReference>\n",
			optAttr("name", p.Name), midAttr("mid", p.Mid), attIdAttr("aref", p.Aref), gidAttr("gref", p.Gref), escText(p.Ref))
	}
}

func writeSheet(buf *bytes.Buffer, sheet *meshtopo.MeshSheet, opts WriteOptions) {
	mlio.Ff(buf, "<MeshSheet name=%s%s%s>\n", attrVal(sheet.Name), midAttr("mid", sheet.Mid), gidAttr("gref", sheet.Gref))
	for _, pv := range sortedParamVertices(sheet.PVs) {
		writeParamVertex(buf, pv)
	}
	for _, face := range sheet.GetMeshFaces() {
		writeFace(buf, face, opts)
	}
	mlio.Ff(buf, "</MeshSheet>\n")
}

func writeString(buf *bytes.Buffer, str *meshtopo.MeshString, opts WriteOptions) {
	mlio.Ff(buf, "<MeshString name=%s%s%s>\n", attrVal(str.Name), midAttr("mid", str.Mid), gidAttr("gref", str.Gref))
	for _, pv := range sortedParamVertices(str.PVs) {
		writeParamVertex(buf, pv)
	}
	for _, edge := range str.GetEdges() {
		writeEdge(buf, edge, opts)
	}
	mlio.Ff(buf, "</MeshString>\n")
}

func writeFace(buf *bytes.Buffer, face *meshelem.MeshFace, opts WriteOptions) {
	etype := "Quad4"
	if face.IsTriangle() {
		etype = "Tri3"
	}
	tag := "MeshFace"
	var content string
	if face.Key.Form == meshelem.ByRef {
		tag = "MeshFaceReference"
		content = escText(face.Ref)
		mlio.Ff(buf, "<%s etype=\"%s\" count=\"1\" name=%s%s%s%s>%s</%s>\n",
			tag, etype, attrVal(face.Name), midAttr("mid", face.Mid), attIdAttr("aref", face.Aref), gidAttr("gref", face.Gref), content, tag)
		return
	}
	idx := face.Indices()
	n := 3
	if !face.IsTriangle() {
		n = 4
	}
	format := "text"
	if opts.Compress {
		format = "base64"
		content = base64EncodeInts(idx[:n])
	} else {
		content = joinInts(idx[:n])
	}
	mlio.Ff(buf, "<%s etype=\"%s\" format=\"%s\" count=\"1\" name=%s%s%s%s>%s</%s>\n",
		tag, etype, format, attrVal(face.Name), midAttr("mid", face.Mid), attIdAttr("aref", face.Aref), gidAttr("gref", face.Gref), content, tag)
}

func writeEdge(buf *bytes.Buffer, edge *meshelem.MeshEdge, opts WriteOptions) {
	tag := "MeshEdge"
	var content string
	if edge.Key.Form == meshelem.ByRef {
		tag = "MeshEdgeReference"
		content = escText(edge.Ref)
		mlio.Ff(buf, "<%s etype=\"Edge2\" count=\"1\" name=%s%s%s%s>%s</%s>\n",
			tag, attrVal(edge.Name), midAttr("mid", edge.Mid), attIdAttr("aref", edge.Aref), gidAttr("gref", edge.Gref), content, tag)
		return
	}
	idx := edge.Indices()
	format := "text"
	content = joinInts(idx[:])
	mlio.Ff(buf, "<%s etype=\"Edge2\" format=\"%s\" count=\"1\" name=%s%s%s%s>%s</%s>\n",
		tag, format, attrVal(edge.Name), midAttr("mid", edge.Mid), attIdAttr("aref", edge.Aref), gidAttr("gref", edge.Gref), content, tag)
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = itoa64(v)
	}
	return strings.Join(parts, " ")
}

func base64EncodeInts(vals []int64) string {
	raw := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(raw[i*4:i*4+4], uint32(int32(v)))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func writeTransforms(buf *bytes.Buffer, store *linkage.Store) {
	for _, t := range store.Transforms() {
		parts := make([]string, 16)
		for i, v := range t.Contents {
			parts[i] = formatFloat15(v)
		}
		mlio.Ff(buf, "<Transform xid=\"%d\"%s%s>%s</Transform>\n", int64(t.Xid), optAttr("name", t.Name), attIdAttr("aref", t.Aref), strings.Join(parts, " "))
	}
}

func writeLinkages(buf *bytes.Buffer, store *linkage.Store) {
	for _, l := range store.Linkages() {
		mlio.Ff(buf, "<MeshElementLinkage%s sourceEntityRef=%s targetEntityRef=%s%s%s/>\n",
			optAttr("name", l.Name), attrVal(l.SourceRef), attrVal(l.TargetRef), attIdAttr("aref", l.Aref), xidAttr("xref", l.Xref))
	}
}
