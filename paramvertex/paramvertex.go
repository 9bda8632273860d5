// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paramvertex implements MeshLink's per-topology ParamVertex
// table: the map from an opaque vertex-reference string (and optional
// id) to (gref, u, v) (spec §3, §6.1).
package paramvertex

import (
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// ParamVertex is the parametric position of a mesh vertex on a geometry
// group's entity. For 1D curves only U is meaningful (spec §3).
type ParamVertex struct {
	Vref string
	Gref mlid.Gid
	Mid  mlid.Mid // mlid.InvalidMid if unset
	U, V float64
}

// Table is the ParamVertex map owned by one topology container (model,
// sheet or string scope -- spec §3 "Containers").
type Table struct {
	byRef map[string]*ParamVertex
}

// NewTable returns an empty ParamVertex table.
func NewTable() *Table {
	return &Table{byRef: make(map[string]*ParamVertex)}
}

// Add inserts pv, rejecting an empty or duplicate Vref (spec §3:
// "vref: non-empty, unique within its owning topology").
func (t *Table) Add(pv *ParamVertex) error {
	if pv.Vref == "" {
		return mlchk.Err(mlchk.ParseError, "ParamVertex vref must not be empty")
	}
	if _, exists := t.byRef[pv.Vref]; exists {
		return mlchk.Err(mlchk.Duplicate, "ParamVertex vref %q already exists in this scope", pv.Vref)
	}
	t.byRef[pv.Vref] = pv
	return nil
}

// Get returns the ParamVertex with the given reference, or (nil, false).
func (t *Table) Get(vref string) (*ParamVertex, bool) {
	pv, ok := t.byRef[vref]
	return pv, ok
}

// Count returns the number of ParamVertex entries in the table.
func (t *Table) Count() int { return len(t.byRef) }

// All returns every ParamVertex in the table, in unspecified order
// (callers needing deterministic order should iterate owning elements
// instead, per spec §4.5's creation-order guarantee).
func (t *Table) All() []*ParamVertex {
	out := make([]*ParamVertex, 0, len(t.byRef))
	for _, pv := range t.byRef {
		out = append(out, pv)
	}
	return out
}

// Copy returns a value copy of pv, detached from any table. MeshLink's
// design deliberately holds ParamVertex by value inside each owning
// mesh element (spec §9 "ParamVertex is held by value... breaks the
// ownership cycle at the cost of duplicated floats").
func Copy(pv *ParamVertex) ParamVertex {
	return *pv
}
