// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mlxml implements the MeshLink XML parser and writer (spec
// §4.8, §4.9, §6.1). encoding/xml is the sole grounded choice here: no
// third-party XML library appears anywhere in the retrieval pack (see
// DESIGN.md).
package mlxml

import "encoding/xml"

// documentXML is the raw decode target for a <MeshLink> document. Its
// own Attrs catches the xmlns/xmlns:xsi/xsi:schemaLocation attributes
// regardless of namespace prefix, since the parser only needs to carry
// them through to the writer verbatim (spec §6.1, §4.9).
type documentXML struct {
	XMLName xml.Name      `xml:"MeshLink"`
	Attrs   []xml.Attr    `xml:",any,attr"`
	Version string        `xml:"version,attr"`

	Attributes      []attributeXML       `xml:"Attribute"`
	AttributeGroups []attributeXML       `xml:"AttributeGroup"`
	GeometryFiles   []geometryFileXML    `xml:"GeometryFile"`
	GeometryGroups  []geometryGroupXML   `xml:"GeometryGroup"`
	MeshFiles       []meshFileXML        `xml:"MeshFile"`
	Transforms      []transformXML       `xml:"Transform"`
	Linkages        []linkageXML         `xml:"MeshElementLinkage"`
}

type attributeXML struct {
	AttId    string `xml:"attid,attr"`
	Name     string `xml:"name,attr"`
	Contents string `xml:",chardata"`
}

type geometryFileXML struct {
	Filename   string                  `xml:"filename,attr"`
	Aref       string                  `xml:"aref,attr"`
	References []geometryReferenceXML  `xml:"GeometryReference"`
}

type geometryReferenceXML struct {
	Gid  string `xml:"gid,attr"`
	Ref  string `xml:"ref,attr"`
	Aref string `xml:"aref,attr"`
	Name string `xml:"name,attr"`
}

type geometryGroupXML struct {
	Gid      string `xml:"gid,attr"`
	Name     string `xml:"name,attr"`
	Aref     string `xml:"aref,attr"`
	Contents string `xml:",chardata"`
}

type meshFileXML struct {
	Filename  string                    `xml:"filename,attr"`
	Aref      string                    `xml:"aref,attr"`
	ModelRefs []meshModelReferenceXML   `xml:"MeshModelReference"`
}

type meshModelReferenceXML struct {
	Ref  string `xml:"ref,attr"`
	Mid  string `xml:"mid,attr"`
	Aref string `xml:"aref,attr"`
	Gref string `xml:"gref,attr"`
	Name string `xml:"name,attr"`

	ParamVertices []paramVertexXML      `xml:"ParamVertex"`
	Sheets        []meshContainerXML    `xml:"MeshSheet"`
	SheetRefs     []meshContainerXML    `xml:"MeshSheetReference"`
	Strings       []meshContainerXML    `xml:"MeshString"`
	StringRefs    []meshContainerXML    `xml:"MeshStringReference"`
	PointRefs     []meshPointRefXML     `xml:"MeshPointReference"`
}

// meshContainerXML is shared by MeshSheet/MeshSheetReference (face
// children) and MeshString/MeshStringReference (edge children) -- only
// one pair of slices is populated for any given use, mirroring the
// shared-record-for-both-forms idiom already used in geombind.Group.
type meshContainerXML struct {
	Name string `xml:"name,attr"`
	Mid  string `xml:"mid,attr"`
	Aref string `xml:"aref,attr"`
	Gref string `xml:"gref,attr"`

	ParamVertices []paramVertexXML `xml:"ParamVertex"`
	Faces         []meshElemXML    `xml:"MeshFace"`
	FaceRefs      []meshElemXML    `xml:"MeshFaceReference"`
	Edges         []meshElemXML    `xml:"MeshEdge"`
	EdgeRefs      []meshElemXML    `xml:"MeshEdgeReference"`
}

// meshElemXML is one index-form or reference-form element block
// (MeshEdge/MeshEdgeReference/MeshFace/MeshFaceReference), per spec
// §4.8's attribute table.
type meshElemXML struct {
	Etype   string `xml:"etype,attr"`
	Format  string `xml:"format,attr"`
	Count   string `xml:"count,attr"`
	Mid     string `xml:"mid,attr"`
	Aref    string `xml:"aref,attr"`
	Gref    string `xml:"gref,attr"`
	Name    string `xml:"name,attr"`
	Content string `xml:",chardata"`
}

type meshPointRefXML struct {
	Mid     string `xml:"mid,attr"`
	Aref    string `xml:"aref,attr"`
	Gref    string `xml:"gref,attr"`
	Name    string `xml:"name,attr"`
	Count   string `xml:"count,attr"`
	Content string `xml:",chardata"`
}

type paramVertexXML struct {
	Vref    string `xml:"vref,attr"`
	Gref    string `xml:"gref,attr"`
	Dim     string `xml:"dim,attr"`
	Mid     string `xml:"mid,attr"`
	Content string `xml:",chardata"`
}

type transformXML struct {
	Xid      string `xml:"xid,attr"`
	Name     string `xml:"name,attr"`
	Aref     string `xml:"aref,attr"`
	Contents string `xml:",chardata"`
}

type linkageXML struct {
	Name            string `xml:"name,attr"`
	SourceEntityRef string `xml:"sourceEntityRef,attr"`
	TargetEntityRef string `xml:"targetEntityRef,attr"`
	Aref            string `xml:"aref,attr"`
	Xref            string `xml:"xref,attr"`
}
