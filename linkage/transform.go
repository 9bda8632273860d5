// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linkage implements MeshLink's element-linkage and transform
// store: MeshLinkTransform (4x4 quaternion matrices) and
// MeshElementLinkage pairs between MeshSheet/MeshString entities (spec
// §3, §4.6).
package linkage

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

// Transform is a 4x4 column-major matrix describing a periodic or
// translational link between mesh entities (spec §3 "MeshLinkTransform").
type Transform struct {
	Xid      mlid.Xid
	Name     string
	Contents [16]float64
	Aref     mlid.AttId // mlid.InvalidAttId if unset
}

// ParseTransformContents parses a whitespace-separated list of 16
// floats into column-major [16]float64. A content string that does not
// parse as exactly 16 numbers is invalid (spec §3).
func ParseTransformContents(text string) ([16]float64, error) {
	var out [16]float64
	fields := strings.Fields(text)
	if len(fields) != 16 {
		return out, mlchk.Err(mlchk.ParseError, "transform contents must have exactly 16 floats, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, mlchk.Err(mlchk.ParseError, "transform content %q is not a float: %v", f, err)
		}
		out[i] = v
	}
	return out, nil
}

// Matrix returns the transform's contents as a 4x4 row-major
// la.Matrix (the gosl/la shape used by gofem's own linear algebra,
// []float64 rows), converting from the column-major storage format the
// wire format uses (spec §3 "column-major 4x4 quaternion matrix").
func (t *Transform) Matrix() [][]float64 {
	m := la.MatAlloc(4, 4)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			m[row][col] = t.Contents[col*4+row]
		}
	}
	return m
}

// Compose returns the 4x4 matrix product a*b, using gosl/la's in-place
// BLAS-like MatMul (dest, alpha, a, b), the same routine
// gofem/shp/shp.go uses to build its Jacobian-related matrices.
// Composing transforms this way lets a chained periodic/translational
// link (e.g. two quarter-turn transforms back to back) be evaluated as
// a single matrix rather than applied twice.
func Compose(a, b *Transform) [][]float64 {
	ma, mb := a.Matrix(), b.Matrix()
	out := la.MatAlloc(4, 4)
	la.MatMul(out, 1, ma, mb)
	return out
}

// Apply transforms a 3D point (x,y,z) by t's matrix. The linear 3x3
// part is applied directly, and the translation column is folded in
// with gosl/la's VecAdd (dest += alpha*v), the same "x = X + u"
// displacement-add idiom gofem/fem/e_u_contact.go uses.
func (t *Transform) Apply(x, y, z float64) (float64, float64, float64) {
	m := t.Matrix()
	r := []float64{
		m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z,
	}
	translation := []float64{m[0][3], m[1][3], m[2][3]}
	la.VecAdd(r, 1, translation)
	return r[0], r[1], r[2]
}

// Inverse returns t's matrix inverse via gosl/la's MatInv, the same
// routine gofem/shp/shp.go uses to invert its Jacobian matrix. An
// Xid-referencing transform used to map a linkage's target back onto
// its source needs this inverse; a singular transform (det below
// minDet) is reported as a kernel error rather than panicking.
func (t *Transform) Inverse() ([][]float64, error) {
	m := t.Matrix()
	inv := la.MatAlloc(4, 4)
	const minDet = 1e-14
	if _, err := la.MatInv(inv, m, minDet); err != nil {
		return nil, mlchk.Wrap(mlchk.KernelError, err, "transform %d is not invertible", t.Xid)
	}
	return inv, nil
}

// ApplyInverse maps (x,y,z) back through t's inverse, used to carry a
// point from a linkage's target entity back to its source.
func (t *Transform) ApplyInverse(x, y, z float64) (float64, float64, float64, error) {
	inv, err := t.Inverse()
	if err != nil {
		return 0, 0, 0, err
	}
	r := []float64{
		inv[0][0]*x + inv[0][1]*y + inv[0][2]*z,
		inv[1][0]*x + inv[1][1]*y + inv[1][2]*z,
		inv[2][0]*x + inv[2][1]*y + inv[2][2]*z,
	}
	translation := []float64{inv[0][3], inv[1][3], inv[2][3]}
	la.VecAdd(r, 1, translation)
	return r[0], r[1], r[2], nil
}
