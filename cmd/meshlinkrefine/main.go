// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command meshlinkrefine is the structured-mesh refinement/adherence
// demonstrator of SPEC_FULL.md's §6.3, recovered from
// original_source/app/refine_str_cpp: read a MeshLink file, refine a
// named model's structured PLOT3D block by linear interpolation, then
// re-project the newly interpolated boundary points onto the geometry
// entities the original block's edges and faces were associated with.
// The kernel it registers is an empty geomkernel/fake instance with no
// planes or spheres, so every projection fails and the adhered block it
// writes equals the refined one.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cpmech/meshlink/geomkernel/fake"
	"github.com/cpmech/meshlink/internal/mlio"
	"github.com/cpmech/meshlink/mlxml"
	"github.com/cpmech/meshlink/strmesh"
)

func main() {
	log := &mlio.Logger{}

	defer func() {
		if err := recover(); err != nil {
			log.Verbose = true
			log.PfRed("ERROR: %v\n", err)
			os.Exit(-1)
		}
	}()

	if len(os.Args) < 4 {
		fmt.Println("usage: meshlinkrefine <mesh-link-file> <model-name> <plot3d-file> [refI] [refJ] [refK]")
		os.Exit(1)
	}

	meshlinkFname := mlio.ArgToFilename(0, "")
	modelName := mlio.ArgToString(1, "")
	plot3dFname := mlio.ArgToFilename(2, "")
	refI := argToInt(3, 2)
	refJ := argToInt(4, 2)
	refK := argToInt(5, 2)
	log.Verbose = mlio.ArgToBool(6, false)

	log.Pf("%v\n", mlio.ArgsTable(os.Stdout,
		"mesh-link file", "meshlinkFname", meshlinkFname,
		"model name", "modelName", modelName,
		"plot3d file", "plot3dFname", plot3dFname,
		"refine i", "refI", refI,
		"refine j", "refJ", refJ,
		"refine k", "refK", refK,
	))

	os.Exit(run(meshlinkFname, modelName, plot3dFname, refI, refJ, refK, log))
}

func argToInt(idx, defaultValue int) int {
	s := mlio.ArgToString(idx, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}

func run(meshlinkFname, modelName, plot3dFname string, refI, refJ, refK int, log *mlio.Logger) int {
	if meshlinkFname == "" || modelName == "" || plot3dFname == "" {
		fmt.Println("error: missing required arguments")
		return 1
	}

	a, _, rep, err := mlxml.Parse(meshlinkFname, "", log)
	if err != nil {
		log.PfRed("error parsing %q: %v\n", meshlinkFname, err)
		return -1
	}
	if !rep.Ok() {
		for _, e := range rep.Errors() {
			log.Pfyel("  %v\n", e)
		}
	}

	kernel := fake.New("reference-fake")
	if err := a.Kernels.Add(kernel); err != nil {
		log.PfRed("error registering geometry kernel: %v\n", err)
		return -1
	}
	if err := a.Kernels.Activate(kernel.Name()); err != nil {
		log.PfRed("error activating geometry kernel: %v\n", err)
		return -1
	}
	active, err := a.Kernels.MustActive()
	if err != nil {
		log.PfRed("error: %v\n", err)
		return -1
	}

	model, ok := a.GetModelByName(modelName)
	if !ok {
		log.PfRed("error: model %q not found\n", modelName)
		return -1
	}

	orig, err := strmesh.ReadPLOT3D(plot3dFname)
	if err != nil {
		log.PfRed("error reading %q: %v\n", plot3dFname, err)
		return -1
	}
	log.Pf("read block %dx%dx%d from %q\n", orig.Id, orig.Jd, orig.Kd, plot3dFname)

	refined := strmesh.Refine(orig, refI, refJ, refK)
	log.Pf("refined block dimensions: %dx%dx%d\n", refined.Id, refined.Jd, refined.Kd)

	refinedFname := rootName(plot3dFname) + "_refine.x"
	if err := refined.WritePLOT3D(refinedFname); err != nil {
		log.PfRed("error writing %q: %v\n", refinedFname, err)
		return -1
	}

	strmesh.Adhere(refined, refI, refJ, refK, orig.Id, orig.Jd, orig.Kd, model, a.Geoms, active)

	adheredFname := rootName(plot3dFname) + "_refine_adhered.x"
	if err := refined.WritePLOT3D(adheredFname); err != nil {
		log.PfRed("error writing %q: %v\n", adheredFname, err)
		return -1
	}
	log.PfGreen("wrote %q and %q\n", refinedFname, adheredFname)

	return 0
}

func rootName(fname string) string {
	for i := len(fname) - 1; i >= 0; i-- {
		if fname[i] == '.' {
			return fname[:i]
		}
	}
	return fname
}
