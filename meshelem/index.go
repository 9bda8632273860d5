package meshelem

import (
	"sort"

	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// Elem is satisfied by *MeshPoint, *MeshEdge, *MeshFace: anything with a
// Common record a container can own and index.
type Elem interface {
	CommonOf() *Common
}

// Index is the hash-keyed storage described in spec §4.4: a name-owned
// map plus non-owning id/ref resolver maps. One Index is instantiated
// per element kind, per owning container (string/sheet/model scope).
type Index[T Elem] struct {
	byName map[string]T            // owner
	byHash map[mlid.IndexTag]T     // non-owning, by-index form only
	byID   map[mlid.Mid]string     // non-owning: id -> name
	byRef  map[string]string       // non-owning: ref -> name
	order  int64
}

// NewIndex returns an empty Index.
func NewIndex[T Elem]() *Index[T] {
	return &Index[T]{
		byName: make(map[string]T),
		byHash: make(map[mlid.IndexTag]T),
		byID:   make(map[mlid.Mid]string),
		byRef:  make(map[string]string),
	}
}

// Add inserts elem into the index following spec §4.4's algorithm:
//  1. the element's Key was already computed by the caller (canonical
//     hash for by-index form, or the caller asserts Ref is non-empty
//     for by-reference form);
//  2. an existing element at the same Key is idempotent for by-index
//     form ("exists-ok") and returns the existing element without
//     inserting a second one; name collisions are always rejected;
//  3. an empty Name is filled in by the caller before Add is invoked
//     (the index itself does not generate names, to stay decoupled from
//     mlid.NameGenerator lifetimes);
//  4. owner map is populated first, then the non-owning index maps.
func (ix *Index[T]) Add(elem T) (T, bool /*inserted*/, error) {
	c := elem.CommonOf()
	if c.Name == "" {
		var zero T
		return zero, false, mlchk.Err(mlchk.ParseError, "element must have a name assigned before indexing")
	}
	if c.Key.Form == ByIndex {
		if existing, ok := ix.byHash[c.Key.Index]; ok {
			return existing, false, nil // exists-ok, idempotent
		}
	} else {
		if c.Ref == "" {
			var zero T
			return zero, false, mlchk.Err(mlchk.ParseError, "reference-form element must have a non-empty ref")
		}
		if _, ok := ix.byRef[c.Ref]; ok {
			var zero T
			return zero, false, mlchk.Err(mlchk.Duplicate, "reference %q already exists in this scope", c.Ref)
		}
	}
	if _, ok := ix.byName[c.Name]; ok {
		var zero T
		return zero, false, mlchk.Err(mlchk.Duplicate, "name %q already exists in this scope", c.Name)
	}
	c.Order = ix.order
	ix.order++
	ix.byName[c.Name] = elem
	if c.Key.Form == ByIndex {
		ix.byHash[c.Key.Index] = elem
	} else {
		ix.byRef[c.Ref] = c.Name
	}
	if c.Mid.Valid() {
		ix.byID[c.Mid] = c.Name
	}
	return elem, true, nil
}

// GetByHash looks up a by-index-form element by its canonical hash.
func (ix *Index[T]) GetByHash(tag mlid.IndexTag) (T, bool) {
	e, ok := ix.byHash[tag]
	return e, ok
}

// GetByName looks up an element by name (works for both forms).
func (ix *Index[T]) GetByName(name string) (T, bool) {
	e, ok := ix.byName[name]
	return e, ok
}

// GetByID looks up an element by Mid.
func (ix *Index[T]) GetByID(id mlid.Mid) (T, bool) {
	name, ok := ix.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return ix.GetByName(name)
}

// GetByRef looks up a by-reference-form element by its ref string.
func (ix *Index[T]) GetByRef(ref string) (T, bool) {
	name, ok := ix.byRef[ref]
	if !ok {
		var zero T
		return zero, false
	}
	return ix.GetByName(name)
}

// Remove deletes the element with the given name from every map it
// participates in. A name present in byName but missing from a map it
// should be in is an owner-map/non-owner-map desync and is a
// programming bug (spec §4.4 "dangling maps are a bug", §5 "touching a
// non-owner map during teardown is a bug").
func (ix *Index[T]) Remove(name string) {
	elem, ok := ix.byName[name]
	if !ok {
		return
	}
	c := elem.CommonOf()
	delete(ix.byName, name)
	if c.Key.Form == ByIndex {
		delete(ix.byHash, c.Key.Index)
	} else {
		delete(ix.byRef, c.Ref)
	}
	if c.Mid.Valid() {
		delete(ix.byID, c.Mid)
	}
}

// Count returns the number of elements currently indexed.
func (ix *Index[T]) Count() int { return len(ix.byName) }

// Sorted returns every element, ordered by creation-order counter (spec
// §4.5 "get_mesh_edges/get_mesh_faces ... sorted by creation-order
// counter"). This is the canonical enumeration order for writer output
// and analysis iteration.
func (ix *Index[T]) Sorted() []T {
	out := make([]T, 0, len(ix.byName))
	for _, e := range ix.byName {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CommonOf().Order < out[j].CommonOf().Order
	})
	return out
}
