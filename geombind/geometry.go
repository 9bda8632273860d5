// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geombind implements MeshLink's geometry-binding store:
// GeometryFile records and the GeometryGroup/GeometryReference arena,
// including composite-group resolution to flat entity-name sets
// (spec §3, §4.3).
package geombind

import (
	"sort"

	"github.com/cpmech/meshlink/attrib"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// GeometryFile records one <GeometryFile>: its filename, optional
// attribute ref, and the ids of the (leaf) groups declared inside it.
type GeometryFile struct {
	Filename string
	Aref     mlid.AttId // mlid.InvalidAttId if unset
	GroupIDs []mlid.Gid
}

// Group is the shared record for both GeometryGroup (composite) and
// GeometryReference (leaf), per spec §3: "Both share one record type".
// A leaf has no ChildGids and a directly-populated EntityNames set; a
// composite has ChildGids and its EntityNames is the union of its
// children's (computed at resolve time).
type Group struct {
	Gid         mlid.Gid
	Name        string     // optional; empty if unnamed
	Aref        mlid.AttId // mlid.InvalidAttId if unset
	GroupID     mlid.Gid   // containing group, mlid.InvalidGid if none
	ChildGids   []mlid.Gid
	EntityNames map[string]bool // leaf: direct; composite: unioned from children
}

// Store owns every GeometryFile and Group in a façade.
type Store struct {
	files   []*GeometryFile
	byID    map[mlid.Gid]*Group
	byName  map[string]*Group
	attribs *attrib.Store // for Aref resolution; may be nil
}

// NewStore returns an empty geometry-binding store. attribs, if
// non-nil, is consulted to resolve a group's Aref into concrete
// attribute ids.
func NewStore(attribs *attrib.Store) *Store {
	return &Store{
		byID:    make(map[mlid.Gid]*Group),
		byName:  make(map[string]*Group),
		attribs: attribs,
	}
}

// AddFile registers a GeometryFile record.
func (s *Store) AddFile(f *GeometryFile) {
	s.files = append(s.files, f)
}

// Files returns all registered geometry files, in insertion order.
func (s *Store) Files() []*GeometryFile { return s.files }

// AddGroup inserts group, rejecting a duplicate Gid or a duplicate
// non-empty Name (spec §3 invariants). If group is composite
// (len(ChildGids) > 0), every referenced child must already exist --
// callers are expected to parse leaves before composites (spec §4.3
// "two-pass parse").
func (s *Store) AddGroup(group *Group) error {
	if _, exists := s.byID[group.Gid]; exists {
		return mlchk.Err(mlchk.Duplicate, "geometry group id %d already exists", group.Gid)
	}
	if group.Name != "" {
		if _, exists := s.byName[group.Name]; exists {
			return mlchk.Err(mlchk.Duplicate, "geometry group name %q already exists", group.Name)
		}
	}
	if group.EntityNames == nil {
		group.EntityNames = make(map[string]bool)
	}
	if len(group.ChildGids) > 0 {
		union := make(map[string]bool)
		for _, cgid := range group.ChildGids {
			child, ok := s.byID[cgid]
			if !ok {
				return mlchk.Err(mlchk.UnresolvedReference, "geometry group %d references unknown child gid %d", group.Gid, cgid)
			}
			for name := range child.EntityNames {
				union[name] = true
			}
			child.GroupID = group.Gid
		}
		group.EntityNames = union
	}
	s.byID[group.Gid] = group
	if group.Name != "" {
		s.byName[group.Name] = group
	}
	return nil
}

// GetByID returns the group with the given id, or (nil, false).
func (s *Store) GetByID(gid mlid.Gid) (*Group, bool) {
	g, ok := s.byID[gid]
	return g, ok
}

// GetByName returns the group with the given name, or (nil, false).
func (s *Store) GetByName(name string) (*Group, bool) {
	g, ok := s.byName[name]
	return g, ok
}

// Ids returns every group id in the store, sorted ascending.
func (s *Store) Ids() []mlid.Gid {
	out := make([]mlid.Gid, 0, len(s.byID))
	for id := range s.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the number of groups in the store.
func (s *Store) Count() int { return len(s.byID) }

// Entities returns the flat, resolved set of entity names for gid (the
// group's own set for a leaf, the unioned set for a composite).
func (s *Store) Entities(gid mlid.Gid) (map[string]bool, error) {
	g, ok := s.byID[gid]
	if !ok {
		return nil, mlchk.Err(mlchk.NotFound, "geometry group %d not found", gid)
	}
	return g.EntityNames, nil
}

// CommonEntity reports whether groups a and b share at least one entity
// name, used to validate the "common-entity rule" of spec §3/§8
// property 5 (face_gref == sheet_gref unless their entity sets
// intersect).
func (s *Store) CommonEntity(a, b mlid.Gid) (bool, error) {
	ga, err := s.Entities(a)
	if err != nil {
		return false, err
	}
	gb, err := s.Entities(b)
	if err != nil {
		return false, err
	}
	for name := range ga {
		if gb[name] {
			return true, nil
		}
	}
	return false, nil
}

// ResolveAref expands a group's Aref through the attribute store into a
// flat list of concrete AttIds, per spec §4.3 "Aref resolution for a
// group expands through the attribute store".
func (s *Store) ResolveAref(gid mlid.Gid) ([]mlid.AttId, error) {
	g, ok := s.byID[gid]
	if !ok {
		return nil, mlchk.Err(mlchk.NotFound, "geometry group %d not found", gid)
	}
	if !g.Aref.Valid() {
		return nil, nil
	}
	if s.attribs == nil {
		return nil, mlchk.Err(mlchk.KernelError, "no attribute store attached")
	}
	return s.attribs.ResolveGroup(g.Aref)
}
