package linkage

import (
	"sort"

	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// Linkage is a MeshElementLinkage: a pair of entity references (each
// resolving to a MeshSheet or MeshString), with an optional attribute
// and an optional transform reference (spec §3).
type Linkage struct {
	Name      string
	SourceRef string
	TargetRef string
	Aref      mlid.AttId // mlid.InvalidAttId if unset
	Xref      mlid.Xid   // mlid.InvalidXid if unset
}

// EntityResolver resolves a sheet/string reference string to a
// confirmation that it exists, used to validate a Linkage's
// source/target refs without this package depending on meshtopo
// directly (spec §4.6 "the resolver iterates models").
type EntityResolver func(ref string) bool

// Store owns every Transform and Linkage for one façade (spec §4.6:
// "linkages are owned by the façade, transforms stored by value").
type Store struct {
	transforms map[mlid.Xid]*Transform
	linkages   []*Linkage
}

// NewStore returns an empty linkage/transform store.
func NewStore() *Store {
	return &Store{transforms: make(map[mlid.Xid]*Transform)}
}

// AddTransform inserts t, rejecting a duplicate Xid (spec §4.6).
// Content validity (exactly 16 floats) must already have been checked
// by ParseTransformContents before building t.
func (s *Store) AddTransform(t *Transform) error {
	if _, exists := s.transforms[t.Xid]; exists {
		return mlchk.Err(mlchk.Duplicate, "transform xid %d already exists", t.Xid)
	}
	s.transforms[t.Xid] = t
	return nil
}

// GetTransform returns the transform with the given id, or (nil, false).
func (s *Store) GetTransform(xid mlid.Xid) (*Transform, bool) {
	t, ok := s.transforms[xid]
	return t, ok
}

// TransformCount returns the number of transforms in the store.
func (s *Store) TransformCount() int { return len(s.transforms) }

// Transforms returns every transform in the store, sorted by Xid, for
// deterministic writer enumeration.
func (s *Store) Transforms() []*Transform {
	out := make([]*Transform, 0, len(s.transforms))
	for _, t := range s.transforms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Xid < out[j].Xid })
	return out
}

// AddLinkage validates and inserts l. source_ref and target_ref must
// each resolve via resolveEntity to a sheet or string; xref, if set,
// must refer to an existing transform (spec §4.6).
func (s *Store) AddLinkage(l *Linkage, resolveEntity EntityResolver) error {
	if !resolveEntity(l.SourceRef) {
		return mlchk.Err(mlchk.UnresolvedReference, "linkage %q: source ref %q does not resolve to a sheet or string", l.Name, l.SourceRef)
	}
	if !resolveEntity(l.TargetRef) {
		return mlchk.Err(mlchk.UnresolvedReference, "linkage %q: target ref %q does not resolve to a sheet or string", l.Name, l.TargetRef)
	}
	if l.Xref.Valid() {
		if _, ok := s.transforms[l.Xref]; !ok {
			return mlchk.Err(mlchk.UnresolvedReference, "linkage %q: xref %d does not resolve to a transform", l.Name, l.Xref)
		}
	}
	s.linkages = append(s.linkages, l)
	return nil
}

// Linkages returns every linkage, in insertion order.
func (s *Store) Linkages() []*Linkage { return s.linkages }

// LinkageCount returns the number of linkages in the store.
func (s *Store) LinkageCount() int { return len(s.linkages) }
