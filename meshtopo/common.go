// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshtopo implements MeshLink's mesh topology containers --
// MeshString (1D), MeshSheet (2D), MeshModel (volume) -- their
// creation-order-stable enumeration, and MeshModel's multi-level
// lowest/highest lookup semantics (spec §3 "Containers", §4.5).
package meshtopo

import (
	"github.com/cpmech/meshlink/meshelem"
	"github.com/cpmech/meshlink/mlid"
	"github.com/cpmech/meshlink/paramvertex"
)

// Kind tags which concrete container a TopoCommon belongs to. Spec §9
// suggests a tagged variant over deep inheritance ("Prefer a tagged
// variant TopoKind{String,Sheet,Model} plus a shared TopoCommon, not
// deep inheritance").
type Kind int

const (
	KindString Kind = iota
	KindSheet
	KindModel
)

// TopoCommon carries the fields every topology container shares: name,
// id, gref, aref, and a creation-order counter, used by MeshAssociativity
// to resolve sheets/strings by name across models (spec §4.7) and to
// enumerate models/sheets/strings in parse order (spec §5 "between
// containers, order is parse order").
type TopoCommon struct {
	TKind Kind
	Mid   mlid.Mid
	Name  string
	Gref  mlid.Gid
	Aref  mlid.AttId
	Order int64
}

// pv1 returns a value copy of pv for embedding into an inferred
// edge/point, or nil if pv is nil. ParamVertex is always held by value
// (spec §9), so propagating one from a face/edge into an inferred
// child element is always a copy, never a shared pointer.
func pv1(pv *paramvertex.ParamVertex) *paramvertex.ParamVertex {
	if pv == nil {
		return nil
	}
	cp := paramvertex.Copy(pv)
	return &cp
}

// pointFromIndex builds a by-index MeshPoint for an inferred 0-cell
// (edge endpoint), propagating gref/aref from the caller and an
// optional ParamVertex copy.
func pointFromIndex(i1 int64, gref mlid.Gid, aref mlid.AttId, pv *paramvertex.ParamVertex) *meshelem.MeshPoint {
	return &meshelem.MeshPoint{
		Common: meshelem.Common{
			Gref: gref,
			Aref: aref,
			Mid:  mlid.InvalidMid,
			Key:  meshelem.IndexKey(mlid.HashPoint(i1)),
		},
		I1: i1,
		PV: pv1(pv),
	}
}
