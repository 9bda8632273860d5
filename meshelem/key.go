// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshelem implements MeshLink's three mesh element kinds --
// MeshPoint, MeshEdge, MeshFace -- in both by-index and by-reference
// form (spec §3 "Mesh elements", §9 "Reference vs. index form").
package meshelem

import "github.com/cpmech/meshlink/mlid"

// Form distinguishes an index-form element from a reference-form one.
// The two forms occupy disjoint key spaces (spec §3 invariants, §9):
// a by-index element lives in the hash map keyed by canonical indices;
// a by-reference element lives only in the name/reference maps.
type Form int

const (
	ByIndex Form = iota
	ByRef
)

// Key identifies an element within its owning container's hash map. It
// is the Go expression of spec §9's suggested sum type
// `ElementKey { ByIndex(IndexTag), ByRef(String) }`.
type Key struct {
	Form  Form
	Index mlid.IndexTag // meaningful when Form == ByIndex
	Ref   string        // meaningful when Form == ByRef
}

// IndexKey builds a by-index Key.
func IndexKey(tag mlid.IndexTag) Key { return Key{Form: ByIndex, Index: tag} }

// RefKey builds a by-reference Key.
func RefKey(ref string) Key { return Key{Form: ByRef, Ref: ref} }
