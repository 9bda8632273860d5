// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attrib implements MeshLink's attribute store: Attribute and
// AttributeGroup records, and group-reference resolution into a flat,
// deduplicated, sorted set of concrete attribute ids (spec §3, §4.2).
package attrib

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// Attribute is a scalar or group attribute record. Contents is always
// the raw, opaque text the caller supplied; for a group, Contents is a
// whitespace-separated list of AttIds (spec §3).
type Attribute struct {
	AttId    mlid.AttId
	Name     string
	Contents string
	IsGroup  bool
}

// Store holds all Attribute/AttributeGroup entries for one façade and
// resolves group references into flat closures (spec §4.2).
type Store struct {
	byID map[mlid.AttId]*Attribute
	// resolved caches the flat closure for each group id, computed once
	// at insertion time (attributes are immutable after insertion).
	resolved map[mlid.AttId][]mlid.AttId
}

// NewStore returns an empty attribute store.
func NewStore() *Store {
	return &Store{
		byID:     make(map[mlid.AttId]*Attribute),
		resolved: make(map[mlid.AttId][]mlid.AttId),
	}
}

// Add inserts att, rejecting a duplicate AttId. If att is a group, its
// Contents is resolved immediately (spec §4.2 "a group is validated by
// resolving its contents now"); a group with any unresolvable content is
// rejected outright, not stored silently invalid (spec §4.2 resolution
// failure policy).
func (s *Store) Add(att *Attribute) error {
	if _, exists := s.byID[att.AttId]; exists {
		return mlchk.Err(mlchk.Duplicate, "attribute id %d already exists", att.AttId)
	}
	if att.IsGroup {
		closure, err := s.resolveContents(att.Contents, []string{strconv.FormatInt(int64(att.AttId), 10)})
		if err != nil {
			return err
		}
		s.resolved[att.AttId] = closure
	}
	s.byID[att.AttId] = att
	return nil
}

// GetByID returns the attribute with the given id, or (nil, false).
func (s *Store) GetByID(id mlid.AttId) (*Attribute, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// ResolveGroup returns the deduplicated, sorted closure of concrete
// (non-group) AttIds named by id. For a scalar attribute it returns
// []AttId{id}. Resolution is idempotent: ResolveGroup(ResolveGroup(a))
// yields the same set (spec §8 property 4).
func (s *Store) ResolveGroup(id mlid.AttId) ([]mlid.AttId, error) {
	att, ok := s.byID[id]
	if !ok {
		return nil, mlchk.Err(mlchk.UnresolvedReference, "attribute %d not found", id)
	}
	if !att.IsGroup {
		return []mlid.AttId{id}, nil
	}
	closure, ok := s.resolved[id]
	if !ok {
		return nil, mlchk.Err(mlchk.UnresolvedReference, "group %d has no resolved closure", id)
	}
	out := make([]mlid.AttId, len(closure))
	copy(out, closure)
	return out, nil
}

// resolveContents parses a whitespace-separated list of AttIds and
// expands any nested groups recursively, returning a deduplicated,
// sorted slice of concrete (non-group) ids. visiting is the path of
// group AttIds (as decimal strings) currently being expanded, checked
// with gosl/utl.StrIndexSmall the same way inp/facecond.go checks a
// condition name against an already-seen list; the final closure is
// deduplicated and sorted with gosl/utl.IntUnique, the same helper
// inp/msh.go uses to collapse a slice of ids.
func (s *Store) resolveContents(contents string, visiting []string) ([]mlid.AttId, error) {
	fields := strings.Fields(contents)
	var out []int
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, mlchk.Err(mlchk.ParseError, "attribute group content %q is not an integer id", f)
		}
		id := mlid.AttId(n)
		child, ok := s.byID[id]
		if !ok {
			return nil, mlchk.Err(mlchk.UnresolvedReference, "attribute group references unknown attid %d", id)
		}
		if !child.IsGroup {
			out = append(out, int(id))
			continue
		}
		if utl.StrIndexSmall(visiting, f) >= 0 {
			return nil, mlchk.Err(mlchk.ParseError, "cyclic attribute group reference at %d", id)
		}
		var nested []mlid.AttId
		if cached, ok := s.resolved[id]; ok {
			nested = cached
		} else {
			n, err := s.resolveContents(child.Contents, append(visiting, f))
			if err != nil {
				return nil, err
			}
			nested = n
		}
		for _, nid := range nested {
			out = append(out, int(nid))
		}
	}
	unique := utl.IntUnique(out)
	ids := make([]mlid.AttId, len(unique))
	for i, n := range unique {
		ids[i] = mlid.AttId(n)
	}
	return ids, nil
}

// Clear removes every attribute from the store.
func (s *Store) Clear() {
	s.byID = make(map[mlid.AttId]*Attribute)
	s.resolved = make(map[mlid.AttId][]mlid.AttId)
}

// Count returns the number of attributes in the store.
func (s *Store) Count() int { return len(s.byID) }

// All returns every attribute in the store, sorted by AttId, for
// deterministic writer enumeration.
func (s *Store) All() []*Attribute {
	out := make([]*Attribute, 0, len(s.byID))
	for _, att := range s.byID {
		out = append(out, att)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttId < out[j].AttId })
	return out
}
