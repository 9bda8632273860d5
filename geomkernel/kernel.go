// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geomkernel declares the abstract contract MeshLink's core
// consumes from a geometry kernel, without implementing one (spec §6.2).
// The core calls these methods but never their bodies.
package geomkernel

// EntityType classifies a named geometric entity.
type EntityType int

const (
	EntityUnknown EntityType = iota
	EntityCurve
	EntitySurface
)

// Projection is the result of projecting a point onto a geometry group.
type Projection struct {
	XYZ      [3]float64
	UV       [2]float64
	Entity   string
	Distance float64
	Tol      float64
}

// CurveEval is the result of evaluating curvature at a point on a curve.
type CurveEval struct {
	XYZ              [3]float64
	Tangent          [3]float64
	PrincipalNormal  [3]float64
	Binormal         [3]float64
	Curvature        float64
	IsLinear         bool
}

// CurveDerivatives is the result of evaluating a curve's 0th/1st/2nd
// derivatives at a parametric point.
type CurveDerivatives struct {
	XYZ  [3]float64
	DU   [3]float64
	D2U  [3]float64
}

// Orientation reports whether a surface's evaluated normal agrees with
// the group's declared orientation.
type Orientation int

const (
	OrientationSame Orientation = iota
	OrientationOpposite
)

// SurfaceEval is the result of evaluating curvature at a point on a
// surface.
type SurfaceEval struct {
	XYZ         [3]float64
	DXdu, DXdv  [3]float64
	D2Xdu2      [3]float64
	D2Xdudv     [3]float64
	D2Xdv2      [3]float64
	Normal      [3]float64
	PrincipalV  [3]float64
	MinK, MaxK  float64
	AvgK, GaussK float64
	Orientation Orientation
}

// Kernel is the abstract geometry-evaluation contract consumed by the
// core (spec §6.2). The core never calls a kernel except on demand, by
// an evaluation/projection caller outside the core package boundary.
type Kernel interface {
	Name() string
	Read(filename string) (bool, error)

	ProjectPoint(group string, xyz [3]float64) (Projection, error)
	EvalXYZ(uv [2]float64, entityName string) ([3]float64, error)
	EvalRadiusOfCurvature(uv [2]float64, entityName string) (min, max float64, err error)
	EvalCurvatureOnCurve(uv [2]float64, entityName string) (CurveEval, error)
	EvalDerivativesOnCurve(uv [2]float64, entityName string) (CurveDerivatives, error)
	EvalCurvatureOnSurface(uv [2]float64, entityName string) (SurfaceEval, error)
	EvalSurfaceTolerance(entityName string) (minTol, maxTol float64, err error)

	EntityType(name string) EntityType
	EntityExists(name string) bool

	SetModelSize(size float64)
	GetModelSize() float64
}
