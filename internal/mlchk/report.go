package mlchk

import "strings"

// Report accumulates errors encountered while walking a multi-node
// document (e.g. one bad <MeshFace> among many siblings). Per spec §7,
// parsers abort the current element on error and continue with the next
// sibling rather than aborting the whole document; Report is how those
// per-node failures are collected and surfaced together.
type Report struct {
	errs []*Error
}

// Add records an error in the report. Nil errors are ignored so callers
// can write `rep.Add(maybeErr)` unconditionally.
func (r *Report) Add(err *Error) {
	if err == nil {
		return
	}
	r.errs = append(r.errs, err)
}

// Ok reports whether no errors were recorded.
func (r *Report) Ok() bool { return len(r.errs) == 0 }

// Errors returns the recorded errors in recording order.
func (r *Report) Errors() []*Error { return r.errs }

// Error implements the error interface, joining all recorded messages.
func (r *Report) Error() string {
	if r.Ok() {
		return ""
	}
	lines := make([]string, len(r.errs))
	for i, e := range r.errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// AsError returns r as an error, or nil if r recorded nothing. This lets
// callers return `rep.AsError()` from a function signature of
// `error` without allocating a non-nil interface wrapping a nil *Report.
func (r *Report) AsError() error {
	if r.Ok() {
		return nil
	}
	return r
}
