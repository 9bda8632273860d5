package mlio

import "github.com/cpmech/gosl/io"

// ArgToFilename returns the idx'th command-line argument (0-based after
// the binary name, mirroring gofem's own `io.ArgToFilename(0, ...)`
// convention) via gosl/io.ArgToFilename, discarding the filename-key
// return value MeshLink's callers don't need and passing no required
// extension (unlike gofem's own `.sim`/`.msh`-suffixed tools, a
// MeshLink document's extension isn't fixed by the format).
func ArgToFilename(idx int, defaultValue string) string {
	fnpath, _ := io.ArgToFilename(idx, defaultValue, "", false)
	return fnpath
}

// ArgToString returns the idx'th command-line argument as a string via
// gosl/io.ArgToString.
func ArgToString(idx int, defaultValue string) string {
	return io.ArgToString(idx, defaultValue)
}

// ArgToBool returns the idx'th command-line argument parsed as a bool
// via gosl/io.ArgToBool.
func ArgToBool(idx int, defaultValue bool) bool {
	return io.ArgToBool(idx, defaultValue)
}
