// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command meshlinkdiag is the diagnostic test harness of spec.md §6.3,
// recovered from original_source/app/harness_c/main.c: read a MeshLink
// file, print a summary of what it contains, optionally write it back
// out and re-parse the export as a round-trip self-check.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cpmech/meshlink/assoc"
	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/internal/mlio"
	"github.com/cpmech/meshlink/mlxml"
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

	if len(os.Args) < 2 {
		fmt.Println("usage: meshlinkdiag <mesh-link-file> [roundTrip] [verbose]")
		os.Exit(1)
	}

	fname := mlio.ArgToFilename(0, "")
	roundTrip := mlio.ArgToBool(1, false)
	verbose := mlio.ArgToBool(2, false)
	log.Verbose = verbose

	log.Pf("%v\n", mlio.ArgsTable(os.Stdout,
		"mesh-link file", "fname", fname,
		"round-trip self-check", "roundTrip", roundTrip,
		"verbose", "verbose", verbose,
	))

	os.Exit(run(fname, roundTrip, log))
}

// run performs the diagnostic pass and returns a process exit code:
// 0 on success, 1 on a usage error, -1 on a parse/validate/kernel
// error -- matching the C harness's three-way contract.
func run(fname string, roundTrip bool, log *mlio.Logger) int {
	if fname == "" {
		fmt.Println("error: no mesh-link file given")
		return 1
	}

	a, attrs, rep, err := mlxml.Parse(fname, "", log)
	if err != nil {
		log.PfRed("error parsing %q: %v\n", fname, err)
		return -1
	}
	if !rep.Ok() {
		for _, e := range rep.Errors() {
			log.PfRed("  %v\n", e)
		}
		if isHardKind(rep) {
			return -1
		}
	}

	printSummary(log, a)

	if roundTrip {
		if code := selfCheckRoundTrip(a, attrs, fname, log); code != 0 {
			return code
		}
	}

	return 0
}

// isHardKind reports whether any error in rep is a kind the harness
// treats as fatal: schema validation and kernel errors abort the run,
// while per-node errors (bad sibling, unresolved reference, duplicate)
// are reported and otherwise tolerated.
func isHardKind(rep *mlchk.Report) bool {
	for _, e := range rep.Errors() {
		if mlchk.Is(e, mlchk.SchemaValidation) || mlchk.Is(e, mlchk.KernelError) {
			return true
		}
	}
	return false
}

func printSummary(log *mlio.Logger, a *assoc.MeshAssociativity) {
	log.Pf("\nMeshLink diagnostic summary\n")
	log.Pf("  attributes:      %d\n", a.Attribs.Count())
	log.Pf("  geometry groups: %d\n", a.Geoms.Count())
	log.Pf("  geometry files:  %d\n", len(a.GeometryFiles()))
	log.Pf("  mesh files:      %d\n", len(a.MeshFiles()))
	log.Pf("  models:          %d\n", len(a.Models()))
	for _, m := range a.Models() {
		log.Pf("    model %-16s sheets=%d strings=%d points=%d\n",
			m.Name, len(m.Sheets()), len(m.Strings()), m.MeshPoints.Count())
	}
	log.Pf("  transforms:      %d\n", a.Links.TransformCount())
	log.Pf("  linkages:        %d\n", a.Links.LinkageCount())
}

func selfCheckRoundTrip(a *assoc.MeshAssociativity, attrs mlxml.DocumentAttrs, fname string, log *mlio.Logger) int {
	dir := filepath.Dir(fname)
	exported := "exported_" + filepath.Base(fname)

	if err := mlxml.Write(a, dir, exported, mlxml.WriteOptions{Attrs: attrs}); err != nil {
		log.PfRed("error writing %q: %v\n", exported, err)
		return -1
	}
	log.Pfyel("wrote round-trip export %q\n", filepath.Join(dir, exported))

	_, _, rep2, err := mlxml.Parse(filepath.Join(dir, exported), "", log)
	if err != nil {
		log.PfRed("error re-parsing exported %q: %v\n", exported, err)
		return -1
	}
	if isHardKind(rep2) {
		log.PfRed("round-trip export failed validation\n")
		return -1
	}
	log.PfGreen("round-trip self-check passed\n")
	return 0
}
