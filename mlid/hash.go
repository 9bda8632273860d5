package mlid

import (
	"encoding/binary"
	"hash/fnv"
)

// IndexTag is the canonical, order-independent hash of a point/edge/face
// index tuple, used as the map key for the mesh element index (spec
// §3 "Hashing", §4.1). The design note in spec §9 directs standardizing
// on 64-bit FNV to remove platform-pointer-width skew, which is what
// this package does unconditionally (no 32-bit variant).
type IndexTag uint64

// HashPoint computes the identity hash of a single point index.
func HashPoint(i1 int64) IndexTag {
	return fnvHash(i1)
}

// HashEdge computes the order-independent hash of an edge's two
// indices: {i1,i2} are sorted ascending before hashing, so
// HashEdge(a,b) == HashEdge(b,a) (spec §8 property 1).
func HashEdge(i1, i2 int64) IndexTag {
	a, b := i1, i2
	if a > b {
		a, b = b, a
	}
	return fnvHash(a, b)
}

// HashFace computes the order-independent hash of a face's 3 or 4
// indices. A quadrilateral's four indices are sorted ascending; a
// triangle is represented with i4 == UNUSED, which is included in the
// canonicalization only when it is not UNUSED to keep Tri3 and Quad4
// on disjoint canonical forms even when rotations/reflections would
// otherwise collide at 3-index prefixes.
func HashFace(i1, i2, i3, i4 int64) IndexTag {
	if i4 == UNUSED {
		idx := []int64{i1, i2, i3}
		sortAsc(idx)
		return fnvHash(idx[0], idx[1], idx[2])
	}
	idx := []int64{i1, i2, i3, i4}
	sortAsc(idx)
	return fnvHash(idx[0], idx[1], idx[2], idx[3])
}

func sortAsc(s []int64) {
	// insertion sort: at most 4 elements
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}

// fnvHash folds the given int64 values, in the order given, into a
// single 64-bit FNV-1 hash. Values are written as fixed-width
// little-endian bytes so the hash is stable across runs and platforms
// (spec §4.1's cross-platform-stability contract).
func fnvHash(vals ...int64) IndexTag {
	h := fnv.New64()
	var buf [8]byte
	for _, v := range vals {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return IndexTag(h.Sum64())
}
