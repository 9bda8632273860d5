// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mlio provides MeshLink's console tracing and buffered file
// writing on top of gosl/io's Pf-family helpers and ArgsTable, and the
// header/body/footer buffer-concatenation idiom used by gofem's
// tools/Msh2vtu.go.
package mlio

import (
	"os"

	"github.com/cpmech/gosl/io"
)

// Logger is a minimal verbosity-gated console logger wrapping gosl/io's
// package-level Pf-family functions. The zero value is usable: Pf and
// PfRed always print, while PfGreen, Pfyel and PfWhite print only when
// Verbose is set.
type Logger struct {
	Verbose bool
}

// Pf prints unconditionally formatted text via gosl/io.Pf.
func (l *Logger) Pf(format string, args ...interface{}) {
	io.Pf(format, args...)
}

// PfRed prints an error-colored message via gosl/io.PfRed, always
// (errors are never silenced by Verbose), mirroring its use in gofem's
// main.go recover() handler.
func (l *Logger) PfRed(format string, args ...interface{}) {
	io.PfRed(format, args...)
}

// PfGreen prints a success message via gosl/io.PfGreen when Verbose is
// set.
func (l *Logger) PfGreen(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.PfGreen(format, args...)
}

// Pfyel prints an informational message via gosl/io.Pfyel when Verbose
// is set.
func (l *Logger) Pfyel(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.Pfyel(format, args...)
}

// PfWhite prints a banner-style message via gosl/io.PfWhite when
// Verbose is set.
func (l *Logger) PfWhite(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.PfWhite(format, args...)
}

// ArgsTable renders a simple two-column table of argument descriptions,
// names and values via gosl/io.ArgsTable, the same helper gofem's
// main.go and tools/*.go entry points print with io.Pf. stdout is
// accepted for call-site symmetry with the other entry points but
// gosl/io.ArgsTable itself only builds the string; printing it is left
// to the caller's Logger.
func ArgsTable(stdout *os.File, triples ...interface{}) string {
	return io.ArgsTable(triples...)
}
