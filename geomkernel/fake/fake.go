// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fake implements a reference geomkernel.Kernel over simple
// analytic primitives (planes and spheres), for use in tests and as a
// demonstrator of the kernel contract (spec §6.2). It plays the role
// gofem's ana package plays for FE results: a closed-form reference
// against which a real kernel (or the consuming tool) can be checked.
package fake

import (
	"math"

	"github.com/cpmech/meshlink/geomkernel"
	"github.com/cpmech/meshlink/internal/mlchk"
)

// Plane is an infinite plane entity: all points with normal.(p-origin)==0.
type Plane struct {
	Name   string
	Origin [3]float64
	Normal [3]float64 // must be unit length
}

// Sphere is a sphere entity parameterized by (u,v) = (longitude,
// latitude) in radians, u in [-pi,pi], v in [-pi/2,pi/2].
type Sphere struct {
	Name   string
	Center [3]float64
	Radius float64
}

// Kernel is an in-memory geomkernel.Kernel backed by a fixed set of
// analytic planes and spheres, registered at construction time.
type Kernel struct {
	name      string
	modelSize float64
	planes    map[string]*Plane
	spheres   map[string]*Sphere
}

// New returns a Kernel with the given name and no entities; use
// AddPlane/AddSphere to populate it.
func New(name string) *Kernel {
	return &Kernel{name: name, planes: make(map[string]*Plane), spheres: make(map[string]*Sphere)}
}

// AddPlane registers a plane entity.
func (k *Kernel) AddPlane(p *Plane) { k.planes[p.Name] = p }

// AddSphere registers a sphere entity.
func (k *Kernel) AddSphere(s *Sphere) { k.spheres[s.Name] = s }

// Name implements geomkernel.Kernel.
func (k *Kernel) Name() string { return k.name }

// Read implements geomkernel.Kernel. The fake kernel has no backing
// file format; Read always succeeds and is a no-op.
func (k *Kernel) Read(filename string) (bool, error) { return true, nil }

// SetModelSize implements geomkernel.Kernel.
func (k *Kernel) SetModelSize(size float64) { k.modelSize = size }

// GetModelSize implements geomkernel.Kernel.
func (k *Kernel) GetModelSize() float64 { return k.modelSize }

// EntityExists implements geomkernel.Kernel.
func (k *Kernel) EntityExists(name string) bool {
	if _, ok := k.planes[name]; ok {
		return true
	}
	_, ok := k.spheres[name]
	return ok
}

// EntityType implements geomkernel.Kernel.
func (k *Kernel) EntityType(name string) geomkernel.EntityType {
	if _, ok := k.planes[name]; ok {
		return geomkernel.EntitySurface
	}
	if _, ok := k.spheres[name]; ok {
		return geomkernel.EntitySurface
	}
	return geomkernel.EntityUnknown
}

// EvalSurfaceTolerance implements geomkernel.Kernel with a fixed,
// small tolerance band (the fake kernel is exact analytically).
func (k *Kernel) EvalSurfaceTolerance(entityName string) (float64, float64, error) {
	if !k.EntityExists(entityName) {
		return 0, 0, mlchk.Err(mlchk.KernelError, "entity %q not found", entityName)
	}
	return 1e-9, 1e-6, nil
}

// ProjectPoint implements geomkernel.Kernel, projecting xyz onto the
// nearest of all registered planes and spheres; group does not restrict
// the search.
func (k *Kernel) ProjectPoint(group string, xyz [3]float64) (geomkernel.Projection, error) {
	var best geomkernel.Projection
	bestDist := math.MaxFloat64
	found := false
	for name, p := range k.planes {
		proj, d := projectOntoPlane(p, xyz)
		if d < bestDist {
			bestDist = d
			best = geomkernel.Projection{XYZ: proj, Entity: name, Distance: d}
			found = true
		}
	}
	for name, s := range k.spheres {
		proj, uv, d := projectOntoSphere(s, xyz)
		if d < bestDist {
			bestDist = d
			best = geomkernel.Projection{XYZ: proj, UV: uv, Entity: name, Distance: d}
			found = true
		}
	}
	if !found {
		return geomkernel.Projection{}, mlchk.Err(mlchk.KernelError, "no entities registered to project onto for group %q", group)
	}
	best.Tol = 1e-9
	return best, nil
}

func projectOntoPlane(p *Plane, xyz [3]float64) ([3]float64, float64) {
	dx := [3]float64{xyz[0] - p.Origin[0], xyz[1] - p.Origin[1], xyz[2] - p.Origin[2]}
	dist := dx[0]*p.Normal[0] + dx[1]*p.Normal[1] + dx[2]*p.Normal[2]
	proj := [3]float64{
		xyz[0] - dist*p.Normal[0],
		xyz[1] - dist*p.Normal[1],
		xyz[2] - dist*p.Normal[2],
	}
	return proj, math.Abs(dist)
}

func projectOntoSphere(s *Sphere, xyz [3]float64) ([3]float64, [2]float64, float64) {
	dx := xyz[0] - s.Center[0]
	dy := xyz[1] - s.Center[1]
	dz := xyz[2] - s.Center[2]
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if r < 1e-300 {
		r = 1e-300
	}
	u := math.Atan2(dy, dx)
	v := math.Asin(clamp(dz/r, -1, 1))
	proj := [3]float64{
		s.Center[0] + s.Radius*math.Cos(v)*math.Cos(u),
		s.Center[1] + s.Radius*math.Cos(v)*math.Sin(u),
		s.Center[2] + s.Radius*math.Sin(v),
	}
	dist := math.Abs(r - s.Radius)
	return proj, [2]float64{u, v}, dist
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EvalXYZ implements geomkernel.Kernel.
func (k *Kernel) EvalXYZ(uv [2]float64, entityName string) ([3]float64, error) {
	if s, ok := k.spheres[entityName]; ok {
		return [3]float64{
			s.Center[0] + s.Radius*math.Cos(uv[1])*math.Cos(uv[0]),
			s.Center[1] + s.Radius*math.Cos(uv[1])*math.Sin(uv[0]),
			s.Center[2] + s.Radius*math.Sin(uv[1]),
		}, nil
	}
	if p, ok := k.planes[entityName]; ok {
		u0, v0 := orthonormalBasis(p.Normal)
		return [3]float64{
			p.Origin[0] + uv[0]*u0[0] + uv[1]*v0[0],
			p.Origin[1] + uv[0]*u0[1] + uv[1]*v0[1],
			p.Origin[2] + uv[0]*u0[2] + uv[1]*v0[2],
		}, nil
	}
	return [3]float64{}, mlchk.Err(mlchk.KernelError, "entity %q not found", entityName)
}

func orthonormalBasis(n [3]float64) ([3]float64, [3]float64) {
	ref := [3]float64{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		ref = [3]float64{0, 1, 0}
	}
	u := cross(n, ref)
	u = normalize(u)
	v := cross(n, u)
	return u, v
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a [3]float64) [3]float64 {
	n := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if n < 1e-300 {
		return a
	}
	return [3]float64{a[0] / n, a[1] / n, a[2] / n}
}

// EvalRadiusOfCurvature implements geomkernel.Kernel: a sphere has
// constant min==max curvature radius; a plane has infinite radius.
func (k *Kernel) EvalRadiusOfCurvature(uv [2]float64, entityName string) (float64, float64, error) {
	if s, ok := k.spheres[entityName]; ok {
		return s.Radius, s.Radius, nil
	}
	if _, ok := k.planes[entityName]; ok {
		return math.Inf(1), math.Inf(1), nil
	}
	return 0, 0, mlchk.Err(mlchk.KernelError, "entity %q not found", entityName)
}

// EvalCurvatureOnCurve implements geomkernel.Kernel. The fake kernel
// has no curve entities, so this always fails with KernelError.
func (k *Kernel) EvalCurvatureOnCurve(uv [2]float64, entityName string) (geomkernel.CurveEval, error) {
	return geomkernel.CurveEval{}, mlchk.Err(mlchk.KernelError, "fake kernel has no curve entities (entity %q)", entityName)
}

// EvalDerivativesOnCurve implements geomkernel.Kernel (no curve
// entities in the fake kernel).
func (k *Kernel) EvalDerivativesOnCurve(uv [2]float64, entityName string) (geomkernel.CurveDerivatives, error) {
	return geomkernel.CurveDerivatives{}, mlchk.Err(mlchk.KernelError, "fake kernel has no curve entities (entity %q)", entityName)
}

// EvalCurvatureOnSurface implements geomkernel.Kernel for sphere
// entities; planes have zero curvature everywhere.
func (k *Kernel) EvalCurvatureOnSurface(uv [2]float64, entityName string) (geomkernel.SurfaceEval, error) {
	if s, ok := k.spheres[entityName]; ok {
		xyz, err := k.EvalXYZ(uv, entityName)
		if err != nil {
			return geomkernel.SurfaceEval{}, err
		}
		normal := normalize([3]float64{xyz[0] - s.Center[0], xyz[1] - s.Center[1], xyz[2] - s.Center[2]})
		k := 1.0 / s.Radius
		return geomkernel.SurfaceEval{
			XYZ: xyz, Normal: normal,
			MinK: k, MaxK: k, AvgK: k, GaussK: k * k,
			Orientation: geomkernel.OrientationSame,
		}, nil
	}
	if p, ok := k.planes[entityName]; ok {
		xyz, err := k.EvalXYZ(uv, entityName)
		if err != nil {
			return geomkernel.SurfaceEval{}, err
		}
		return geomkernel.SurfaceEval{
			XYZ: xyz, Normal: p.Normal,
			MinK: 0, MaxK: 0, AvgK: 0, GaussK: 0,
			Orientation: geomkernel.OrientationSame,
		}, nil
	}
	return geomkernel.SurfaceEval{}, mlchk.Err(mlchk.KernelError, "entity %q not found", entityName)
}
