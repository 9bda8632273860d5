// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strmesh implements the structured-block refinement and
// geometry-adherence demonstrator of SPEC_FULL.md's meshlinkrefine
// harness, recovered from original_source/app/refine_str_cpp. A Block
// is a PLOT3D-style structured IJK grid; Refine creates a denser block
// by linear interpolation, and Adhere re-projects the newly created
// boundary points onto the geometry entities the original mesh's edges
// and faces were associated with, via the active geomkernel.Kernel.
package strmesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/meshlink/geombind"
	"github.com/cpmech/meshlink/geomkernel"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/meshtopo"
	"github.com/cpmech/meshlink/mlid"
)

// Block is a single-block structured grid, one-based in spirit (indices
// into the mesh associativity's Edge/Face index space are 1-based) but
// stored zero-based internally like the C++ original.
type Block struct {
	Id, Jd, Kd int
	XYZ        [3][]float64
}

// ijk2ind converts a zero-based (i,j,k) to a zero-based linear index.
func ijk2ind(i, j, k, id, jd int) int {
	return k*id*jd + j*id + i
}

// ReadPLOT3D reads a single-block ASCII PLOT3D grid file.
func ReadPLOT3D(filename string) (*Block, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, mlchk.Wrap(mlchk.ParseError, err, "cannot open PLOT3D file %q", filename)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	fields := func() ([]string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			return strings.Fields(line), true
		}
		return nil, false
	}

	header, ok := fields()
	if !ok || len(header) != 1 {
		return nil, mlchk.Err(mlchk.ParseError, "%q: expected a single block count", filename)
	}
	if header[0] != "1" {
		return nil, mlchk.Err(mlchk.ParseError, "%q: only single-block PLOT3D files are supported", filename)
	}

	dims, ok := fields()
	if !ok || len(dims) != 3 {
		return nil, mlchk.Err(mlchk.ParseError, "%q: expected three block dimensions", filename)
	}
	id, err1 := strconv.Atoi(dims[0])
	jd, err2 := strconv.Atoi(dims[1])
	kd, err3 := strconv.Atoi(dims[2])
	if err1 != nil || err2 != nil || err3 != nil || id < 2 || jd < 2 || kd < 2 {
		return nil, mlchk.Err(mlchk.ParseError, "%q: bad block dimensions %v", filename, dims)
	}

	b := &Block{Id: id, Jd: jd, Kd: kd}
	n := id * jd * kd
	for c := 0; c < 3; c++ {
		b.XYZ[c] = make([]float64, n)
		filled := 0
		for filled < n {
			toks, ok := fields()
			if !ok {
				return nil, mlchk.Err(mlchk.ParseError, "%q: truncated coordinate data", filename)
			}
			for _, t := range toks {
				v, err := strconv.ParseFloat(t, 64)
				if err != nil {
					return nil, mlchk.Wrap(mlchk.ParseError, err, "%q: bad coordinate value %q", filename, t)
				}
				b.XYZ[c][filled] = v
				filled++
				if filled == n {
					break
				}
			}
		}
	}
	return b, nil
}

// WritePLOT3D writes b as a single-block ASCII PLOT3D grid file.
func (b *Block) WritePLOT3D(filename string) error {
	n := b.Id * b.Jd * b.Kd
	if n < 6 {
		return mlchk.Err(mlchk.ParseError, "block %dx%dx%d too small to write", b.Id, b.Jd, b.Kd)
	}
	f, err := os.Create(filename)
	if err != nil {
		return mlchk.Wrap(mlchk.ParseError, err, "cannot create %q", filename)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintf(w, "1\n")
	fmt.Fprintf(w, "%d %d %d\n", b.Id, b.Jd, b.Kd)
	for c := 0; c < 3; c++ {
		col := 0
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, "%23.16e ", b.XYZ[c][i])
			col++
			if col == 4 {
				fmt.Fprintf(w, "\n")
				col = 0
			}
		}
		if col > 0 {
			fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// Refine builds a new, denser Block from b by linear interpolation,
// with refinement multiples refI, refJ, refK along each structured
// direction (each clamped to at least 1).
func Refine(b *Block, refI, refJ, refK int) *Block {
	if refI < 1 {
		refI = 1
	}
	if refJ < 1 {
		refJ = 1
	}
	if refK < 1 {
		refK = 1
	}

	r := &Block{
		Id: (b.Id-1)*refI + 1,
		Jd: (b.Jd-1)*refJ + 1,
		Kd: (b.Kd-1)*refK + 1,
	}
	n := r.Id * r.Jd * r.Kd
	for c := 0; c < 3; c++ {
		r.XYZ[c] = make([]float64, n)
	}

	// seed the coarse lattice points into their refined positions
	for c := 0; c < 3; c++ {
		for k := 0; k < b.Kd; k++ {
			rk := k * refK
			for j := 0; j < b.Jd; j++ {
				rj := j * refJ
				for i := 0; i < b.Id; i++ {
					ri := i * refI
					r.XYZ[c][ijk2ind(ri, rj, rk, r.Id, r.Jd)] = b.XYZ[c][ijk2ind(i, j, k, b.Id, b.Jd)]
				}
			}
		}
	}

	if refI > 1 {
		interpolateAxisI(r, b.Id-1, refI)
	}
	if refJ > 1 {
		interpolateAxisJ(r, b.Jd-1, refJ)
	}
	if refK > 1 {
		interpolateAxisK(r, b.Kd-1, refK)
	}
	return r
}

// interpolateAxisI fills in the I-direction interior points between
// consecutive coarse stations, for every (j,k) in the refined lattice.
func interpolateAxisI(r *Block, origIMinus1, refI int) {
	jd, kd := r.Jd, r.Kd
	factor := 1.0 / float64(refI)
	for c := 0; c < 3; c++ {
		for k := 0; k < kd; k++ {
			for j := 0; j < jd; j++ {
				for i := 0; i < origIMinus1; i++ {
					ri := i * refI
					indm := ijk2ind(ri, j, k, r.Id, r.Jd)
					indp := ijk2ind((i+1)*refI, j, k, r.Id, r.Jd)
					for iref := 1; iref < refI; iref++ {
						ri++
						t := float64(iref) * factor
						rind := ijk2ind(ri, j, k, r.Id, r.Jd)
						r.XYZ[c][rind] = (1-t)*r.XYZ[c][indm] + t*r.XYZ[c][indp]
					}
				}
			}
		}
	}
}

func interpolateAxisJ(r *Block, origJMinus1, refJ int) {
	factor := 1.0 / float64(refJ)
	for c := 0; c < 3; c++ {
		for k := 0; k < r.Kd; k++ {
			for j := 0; j < origJMinus1; j++ {
				for i := 0; i < r.Id; i++ {
					rj := j * refJ
					indm := ijk2ind(i, rj, k, r.Id, r.Jd)
					indp := ijk2ind(i, (j+1)*refJ, k, r.Id, r.Jd)
					for iref := 1; iref < refJ; iref++ {
						rj++
						t := float64(iref) * factor
						rind := ijk2ind(i, rj, k, r.Id, r.Jd)
						r.XYZ[c][rind] = (1-t)*r.XYZ[c][indm] + t*r.XYZ[c][indp]
					}
				}
			}
		}
	}
}

func interpolateAxisK(r *Block, origKMinus1, refK int) {
	factor := 1.0 / float64(refK)
	for c := 0; c < 3; c++ {
		for k := 0; k < origKMinus1; k++ {
			for j := 0; j < r.Jd; j++ {
				for i := 0; i < r.Id; i++ {
					rk := k * refK
					indm := ijk2ind(i, j, rk, r.Id, r.Jd)
					indp := ijk2ind(i, j, (k+1)*refK, r.Id, r.Jd)
					for iref := 1; iref < refK; iref++ {
						rk++
						t := float64(iref) * factor
						rind := ijk2ind(i, j, rk, r.Id, r.Jd)
						r.XYZ[c][rind] = (1-t)*r.XYZ[c][indm] + t*r.XYZ[c][indp]
					}
				}
			}
		}
	}
}

// Adhere re-projects r's newly interpolated boundary points onto the
// geometry entities that the corresponding edges/faces of the
// original (unrefined) model were associated with. origId/origJd/origKd
// are the dimensions of the unrefined block the model's point indices
// were generated against (one-based point indices, PLOT3D convention).
// Projection failures for an individual point are tolerated (the point
// keeps its interpolated position) and do not abort the pass, matching
// the original's "Point projection failed" warning-and-continue.
func Adhere(r *Block, refI, refJ, refK, origId, origJd, origKd int, model *meshtopo.MeshModel, geoms *geombind.Store, kernel geomkernel.Kernel) {
	adhereEdges(r, refI, refJ, refK, origId, origJd, origKd, model, geoms, kernel)
	adhereFaces(r, refI, refJ, refK, origId, origJd, origKd, model, geoms, kernel)
}

// groupNameForGref resolves a geometry group ID to the name
// geomkernel.Kernel.ProjectPoint expects; falls back to the group's
// numeric Gid when no Name was set (spec §3's groups are frequently
// anonymous leaves).
func groupNameForGref(geoms *geombind.Store, gref int64) (string, bool) {
	g, ok := geoms.GetByID(mlid.Gid(gref))
	if !ok {
		return "", false
	}
	if g.Name != "" {
		return g.Name, true
	}
	return strconv.FormatInt(gref, 10), true
}

// projectAndSet projects the point at rind onto the named group and,
// on success, overwrites it in place with the projected position.
func projectAndSet(r *Block, rind int, groupName string, kernel geomkernel.Kernel) {
	xyz := [3]float64{r.XYZ[0][rind], r.XYZ[1][rind], r.XYZ[2][rind]}
	proj, err := kernel.ProjectPoint(groupName, xyz)
	if err != nil {
		return
	}
	r.XYZ[0][rind] = proj.XYZ[0]
	r.XYZ[1][rind] = proj.XYZ[1]
	r.XYZ[2][rind] = proj.XYZ[2]
}

func adhereEdges(r *Block, refI, refJ, refK, origId, origJd, origKd int, model *meshtopo.MeshModel, geoms *geombind.Store, kernel geomkernel.Kernel) {
	// I-direction edges
	if refI > 1 {
		for k := 0; k < origKd; k++ {
			rk := k * refK
			for j := 0; j < origJd; j++ {
				rj := j * refJ
				for i := 0; i < origId-1; i++ {
					ri := i * refI
					indm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indp := int64(ijk2ind(i+1, j, k, origId, origJd) + 1)
					edge, err := model.FindLowestTopoEdgeByInds(indm, indp)
					if err != nil || edge == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(edge.Gref))
					if !ok {
						continue
					}
					for iref := 1; iref < refI; iref++ {
						ri++
						projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
					}
				}
			}
		}
	}
	// J-direction edges
	if refJ > 1 {
		for k := 0; k < origKd; k++ {
			rk := k * refK
			for j := 0; j < origJd-1; j++ {
				for i := 0; i < origId; i++ {
					ri := i * refI
					rj := j * refJ
					indm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indp := int64(ijk2ind(i, j+1, k, origId, origJd) + 1)
					edge, err := model.FindLowestTopoEdgeByInds(indm, indp)
					if err != nil || edge == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(edge.Gref))
					if !ok {
						continue
					}
					for iref := 1; iref < refJ; iref++ {
						rj++
						projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
					}
				}
			}
		}
	}
	// K-direction edges
	if refK > 1 {
		for k := 0; k < origKd-1; k++ {
			for j := 0; j < origJd; j++ {
				rj := j * refJ
				for i := 0; i < origId; i++ {
					ri := i * refI
					rk := k * refK
					indm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indp := int64(ijk2ind(i, j, k+1, origId, origJd) + 1)
					edge, err := model.FindLowestTopoEdgeByInds(indm, indp)
					if err != nil || edge == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(edge.Gref))
					if !ok {
						continue
					}
					for iref := 1; iref < refK; iref++ {
						rk++
						projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
					}
				}
			}
		}
	}
}

func adhereFaces(r *Block, refI, refJ, refK, origId, origJd, origKd int, model *meshtopo.MeshModel, geoms *geombind.Store, kernel geomkernel.Kernel) {
	// Imin/Imax face planes (bounded by J and K refinement)
	if refJ > 1 && refK > 1 {
		for k := 0; k < origKd-1; k++ {
			for j := 0; j < origJd-1; j++ {
				for i := 0; i < origId; i += max1(origId - 1) {
					ri := i * refI
					indmm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indmp := int64(ijk2ind(i, j, k+1, origId, origJd) + 1)
					indpm := int64(ijk2ind(i, j+1, k, origId, origJd) + 1)
					indpp := int64(ijk2ind(i, j+1, k+1, origId, origJd) + 1)
					face, _, err := model.FindFaceByInds(indmm, indpm, indpp, indmp)
					if err != nil || face == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(face.Gref))
					if !ok {
						continue
					}
					rk := k * refK
					for iref1 := 1; iref1 < refK; iref1++ {
						rk++
						rj := j * refJ
						for iref2 := 1; iref2 < refJ; iref2++ {
							rj++
							projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
						}
					}
				}
			}
		}
	}

	// Jmin/Jmax face planes (bounded by I and K refinement)
	if refI > 1 && refK > 1 {
		for k := 0; k < origKd-1; k++ {
			for j := 0; j < origJd; j += max1(origJd - 1) {
				rj := j * refJ
				for i := 0; i < origId-1; i++ {
					indmm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indmp := int64(ijk2ind(i, j, k+1, origId, origJd) + 1)
					indpm := int64(ijk2ind(i+1, j, k, origId, origJd) + 1)
					indpp := int64(ijk2ind(i+1, j, k+1, origId, origJd) + 1)
					face, _, err := model.FindFaceByInds(indmm, indpm, indpp, indmp)
					if err != nil || face == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(face.Gref))
					if !ok {
						continue
					}
					rk := k * refK
					for iref1 := 1; iref1 < refK; iref1++ {
						rk++
						ri := i * refI
						for iref2 := 1; iref2 < refI; iref2++ {
							ri++
							projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
						}
					}
				}
			}
		}
	}

	// Kmin/Kmax face planes (bounded by I and J refinement)
	if refI > 1 && refJ > 1 {
		for k := 0; k < origKd; k += max1(origKd - 1) {
			rk := k * refK
			for j := 0; j < origJd-1; j++ {
				for i := 0; i < origId-1; i++ {
					indmm := int64(ijk2ind(i, j, k, origId, origJd) + 1)
					indmp := int64(ijk2ind(i, j+1, k, origId, origJd) + 1)
					indpm := int64(ijk2ind(i+1, j, k, origId, origJd) + 1)
					indpp := int64(ijk2ind(i+1, j+1, k, origId, origJd) + 1)
					face, _, err := model.FindFaceByInds(indmm, indpm, indpp, indmp)
					if err != nil || face == nil {
						continue
					}
					name, ok := groupNameForGref(geoms, int64(face.Gref))
					if !ok {
						continue
					}
					ri := i * refI
					for iref1 := 1; iref1 < refI; iref1++ {
						ri++
						rj := j * refJ
						for iref2 := 1; iref2 < refJ; iref2++ {
							rj++
							projectAndSet(r, ijk2ind(ri, rj, rk, r.Id, r.Jd), name, kernel)
						}
					}
				}
			}
		}
	}
}

// max1 returns the stride needed to visit only the two boundary planes
// of a 0..n index range (i.e. {0, n}), matching the original's
// "i += orig_id - 1" idiom; n must be >= 1.
func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
