package mlio

import (
	"bytes"

	"github.com/cpmech/gosl/io"
)

// Ff writes formatted text into buf via gosl/io.Ff. The writer's
// sections (header, attribute/geometry/mesh bodies, footer) are built
// this way, one *bytes.Buffer per section, exactly as
// gofem/tools/Msh2vtu.go assembles a VTU file.
func Ff(buf *bytes.Buffer, format string, args ...interface{}) {
	io.Ff(buf, format, args...)
}

// WriteFileVD concatenates the given buffers, in order, and writes the
// result to dir/fn via gosl/io.WriteFileVD, the same call
// gofem/tools/Msh2vtu.go uses to join a header, a geometry body, a data
// body and a footer into one file.
func WriteFileVD(dir, fn string, bufs ...*bytes.Buffer) error {
	return io.WriteFileVD(dir, fn, bufs...)
}

// ReadFile reads the whole contents of fn via gosl/io.ReadFile.
func ReadFile(fn string) ([]byte, error) {
	return io.ReadFile(fn)
}
