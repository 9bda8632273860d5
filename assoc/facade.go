// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assoc implements MeshAssociativity, the aggregate-root façade
// that owns the attribute store, geometry-binding store, per-model mesh
// topology, the element-linkage/transform store, and the active
// geometry-kernel registry, resolving cross-references between them
// (spec §4.7).
package assoc

import (
	"sort"

	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/geombind"
	"github.com/cpmech/meshlink/geomkernel"
	"github.com/cpmech/meshlink/linkage"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/mlid"
)

// MeshFile records one <MeshFile>: its filename, optional attribute ref,
// and the names of the MeshModels declared inside it (spec §6.1
// "MeshFile").
type MeshFile struct {
	Filename string
	Aref     mlid.AttId
	ModelRefs []string
}

// MeshAssociativity is the aggregate root: it owns every store below
// and resolves cross-references between them (spec §4.7).
type MeshAssociativity struct {
	Attribs *attrib.Store
	Geoms   *geombind.Store
	Links   *linkage.Store
	Kernels *geomkernel.Registry
	Names   *mlid.NameGenerator

	meshFiles []*MeshFile

	models     map[string]*meshtopo.MeshModel
	modelOrder []string
}

// New returns an empty MeshAssociativity façade with a fresh,
// instance-owned name generator and kernel registry -- not process-wide
// singletons (spec §5/§9).
func New() *MeshAssociativity {
	attribs := attrib.NewStore()
	return &MeshAssociativity{
		Attribs: attribs,
		Geoms:   geombind.NewStore(attribs),
		Links:   linkage.NewStore(),
		Kernels: geomkernel.NewRegistry(),
		Names:   mlid.NewNameGenerator(),
		models:  make(map[string]*meshtopo.MeshModel),
	}
}

// AddGeometryFile registers a geometry file record.
func (a *MeshAssociativity) AddGeometryFile(f *geombind.GeometryFile) {
	a.Geoms.AddFile(f)
}

// GeometryFiles returns every registered geometry file, in insertion
// order.
func (a *MeshAssociativity) GeometryFiles() []*geombind.GeometryFile { return a.Geoms.Files() }

// AddMeshFile registers a mesh file record.
func (a *MeshAssociativity) AddMeshFile(f *MeshFile) {
	a.meshFiles = append(a.meshFiles, f)
}

// MeshFiles returns every registered mesh file, in insertion order.
func (a *MeshAssociativity) MeshFiles() []*MeshFile { return a.meshFiles }

// GetOrCreateModel returns the named model, creating it (in parse
// order) if it does not exist yet.
func (a *MeshAssociativity) GetOrCreateModel(name string, gref mlid.Gid, aref mlid.AttId) *meshtopo.MeshModel {
	if m, ok := a.models[name]; ok {
		return m
	}
	m := meshtopo.NewMeshModel(name, gref, aref, a.Names)
	a.models[name] = m
	a.modelOrder = append(a.modelOrder, name)
	return m
}

// GetModelByName returns the named model, or (nil, false).
func (a *MeshAssociativity) GetModelByName(name string) (*meshtopo.MeshModel, bool) {
	m, ok := a.models[name]
	return m, ok
}

// Models returns every model, in parse (insertion) order.
func (a *MeshAssociativity) Models() []*meshtopo.MeshModel {
	out := make([]*meshtopo.MeshModel, 0, len(a.modelOrder))
	for _, name := range a.modelOrder {
		out = append(out, a.models[name])
	}
	return out
}

// GetMeshSheetByName iterates every model in insertion order and
// returns the first sheet matching name (spec §4.7 cross-file
// resolver, used during linkage validation).
func (a *MeshAssociativity) GetMeshSheetByName(name string) (*meshtopo.MeshSheet, bool) {
	for _, mname := range a.modelOrder {
		if s, ok := a.models[mname].GetMeshSheetByName(name); ok {
			return s, true
		}
	}
	return nil, false
}

// GetMeshStringByName iterates every model in insertion order and
// returns the first string matching name (spec §4.7).
func (a *MeshAssociativity) GetMeshStringByName(name string) (*meshtopo.MeshString, bool) {
	for _, mname := range a.modelOrder {
		if s, ok := a.models[mname].GetMeshStringByName(name); ok {
			return s, true
		}
	}
	return nil, false
}

// ResolveEntityRef reports whether ref names an existing sheet or
// string in any model, used as the linkage.EntityResolver callback
// (spec §4.6).
func (a *MeshAssociativity) ResolveEntityRef(ref string) bool {
	if _, ok := a.GetMeshSheetByName(ref); ok {
		return true
	}
	_, ok := a.GetMeshStringByName(ref)
	return ok
}

// AddLinkage validates and inserts l using the façade's own entity
// resolver.
func (a *MeshAssociativity) AddLinkage(l *linkage.Linkage) error {
	return a.Links.AddLinkage(l, a.ResolveEntityRef)
}

// Clear empties every store owned by the façade. Destruction order
// mirrors spec §4.7's reverse-dependency-order requirement (linkages
// first, then sheets/strings -- freed with their models -- then
// geometry/attribute stores); Go's garbage collector reclaims memory
// regardless, but Clear documents and enforces that no store outlives
// the façade's own lifetime in a way callers could observe stale state.
func (a *MeshAssociativity) Clear() {
	a.Links = linkage.NewStore()
	a.models = make(map[string]*meshtopo.MeshModel)
	a.modelOrder = nil
	a.meshFiles = nil
	a.Geoms = geombind.NewStore(a.Attribs)
	a.Attribs.Clear()
}

// ModelNames returns every model name in sorted order, regardless of
// parse order.
func (a *MeshAssociativity) ModelNames() []string {
	out := make([]string, len(a.modelOrder))
	copy(out, a.modelOrder)
	sort.Strings(out)
	return out
}
