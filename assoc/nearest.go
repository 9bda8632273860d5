// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assoc

import (
	"sort"

	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/meshlink/geomkernel"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/paramvertex"
)

// nearestBinsNdiv is the spatial-hash bin subdivision count, matching
// gofem/out/out.go's Ndiv used for its node/integration-point bins.
const nearestBinsNdiv = 20

// tolC is added as padding around the bounding box of candidate points,
// mirroring gofem/out/out.go's TolC*2 bin-box margin.
const tolC = 1e-8

// NearestParamVertex evaluates every ParamVertex declared anywhere in
// model's scope through kernel's EvalXYZ, bins the resulting 3D points
// with gosl/gm.Bins (the same spatial-hash structure
// gofem/out/topology.go uses for its {u,v}-plane lookups), and returns
// the candidate nearest to query. This is an optional acceleration path
// (spec.md's core operations locate vertices by index/reference, not by
// proximity); it is useful once a kernel is attached and a caller wants
// to seed a search from a raw 3D position instead.
//
// A ParamVertex whose Gref resolves to no geometry entity, or whose
// EvalXYZ call errors, is skipped rather than aborting the whole search;
// where the Gref resolves to several entities, only the
// lexicographically first one is evaluated.
func (a *MeshAssociativity) NearestParamVertex(model *meshtopo.MeshModel, kernel geomkernel.Kernel, query [3]float64) (*paramvertex.ParamVertex, float64, error) {
	candidates := model.AllParamVertices()
	if len(candidates) == 0 {
		return nil, 0, mlchk.Err(mlchk.NotFound, "model %q has no ParamVertex entries", model.Name)
	}

	pts := make([][3]float64, 0, len(candidates))
	pvs := make([]*paramvertex.ParamVertex, 0, len(candidates))
	for _, pv := range candidates {
		entity, err := a.firstEntityName(pv)
		if err != nil {
			continue
		}
		xyz, err := kernel.EvalXYZ([2]float64{pv.U, pv.V}, entity)
		if err != nil {
			continue
		}
		pts = append(pts, xyz)
		pvs = append(pvs, pv)
	}
	if len(pvs) == 0 {
		return nil, 0, mlchk.Err(mlchk.NotFound, "no ParamVertex in model %q resolved to a geometry entity", model.Name)
	}

	xi, xf := boundingBox(pts, query)
	var bins gm.Bins
	if err := bins.Init(xi, xf, nearestBinsNdiv); err != nil {
		return nil, 0, mlchk.Wrap(mlchk.KernelError, err, "cannot initialise nearest-vertex bins for model %q", model.Name)
	}
	for i, p := range pts {
		if err := bins.Append(p[:], i); err != nil {
			return nil, 0, mlchk.Wrap(mlchk.KernelError, err, "cannot append candidate %d to nearest-vertex bins", i)
		}
	}

	id := bins.Find(query[:])
	if id < 0 {
		return nil, 0, mlchk.Err(mlchk.NotFound, "no ParamVertex found near (%g,%g,%g) in model %q", query[0], query[1], query[2], model.Name)
	}
	p := pts[id]
	dx, dy, dz := p[0]-query[0], p[1]-query[1], p[2]-query[2]
	dist := dx*dx + dy*dy + dz*dz
	return pvs[id], dist, nil
}

// firstEntityName returns the lexicographically-first entity name
// bound to pv's Gref, for a deterministic single-entity EvalXYZ call.
func (a *MeshAssociativity) firstEntityName(pv *paramvertex.ParamVertex) (string, error) {
	names, err := a.Geoms.Entities(pv.Gref)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", mlchk.Err(mlchk.NotFound, "geometry group %d has no entities", pv.Gref)
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return sorted[0], nil
}

// boundingBox returns (xi, xf) spanning every point in pts plus query,
// padded by tolC*2 on each side, matching gofem/out/out.go's bin-box
// construction.
func boundingBox(pts [][3]float64, query [3]float64) ([]float64, []float64) {
	min, max := query, query
	for _, p := range pts {
		for c := 0; c < 3; c++ {
			if p[c] < min[c] {
				min[c] = p[c]
			}
			if p[c] > max[c] {
				max[c] = p[c]
			}
		}
	}
	delta := tolC * 2
	xi := []float64{min[0] - delta, min[1] - delta, min[2] - delta}
	xf := []float64{max[0] + delta, max[1] + delta, max[2] + delta}
	return xi, xf
}
