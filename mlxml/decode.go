// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlxml

import (
	"encoding/base64"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

func parseAttId(s string) (mlid.AttId, error) {
	if s == "" {
		return mlid.InvalidAttId, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return mlid.InvalidAttId, mlchk.Err(mlchk.ParseError, "aref %q is not an integer", s)
	}
	return mlid.AttId(n), nil
}

func parseGid(s string) (mlid.Gid, error) {
	if s == "" {
		return mlid.InvalidGid, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return mlid.InvalidGid, mlchk.Err(mlchk.ParseError, "gref %q is not an integer", s)
	}
	return mlid.Gid(n), nil
}

func parseXid(s string) (mlid.Xid, error) {
	if s == "" {
		return mlid.InvalidXid, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return mlid.InvalidXid, mlchk.Err(mlchk.ParseError, "xref %q is not an integer", s)
	}
	return mlid.Xid(n), nil
}

func parseMid(s string) (mlid.Mid, error) {
	if s == "" {
		return mlid.InvalidMid, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return mlid.InvalidMid, mlchk.Err(mlchk.ParseError, "mid %q is not an integer", s)
	}
	return mlid.Mid(n), nil
}

// etypeWidth returns the number of vertex indices one element of the
// given etype consumes (spec §4.8: Edge2=2, Tri3=3, Quad4=4).
func etypeWidth(etype string) (int, error) {
	switch etype {
	case "Edge2":
		return 2, nil
	case "Tri3":
		return 3, nil
	case "Quad4":
		return 4, nil
	}
	return 0, mlchk.Err(mlchk.ParseError, "unknown etype %q", etype)
}

// decodeCount parses the optional count attribute, defaulting to 1
// (spec §4.8).
func decodeCount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, mlchk.Err(mlchk.ParseError, "count %q is not a non-negative integer", s)
	}
	return n, nil
}

// decodeIndexBlock decodes an index-form element block's content into
// count rows of width ints each, in either "text" (default) or
// "base64" little-endian int32 format (spec §4.8 "Content decoding").
func decodeIndexBlock(format, content string, count, width int) ([][]int64, error) {
	switch format {
	case "", "text":
		fields := strings.Fields(content)
		if len(fields) != count*width {
			return nil, mlchk.Err(mlchk.DataSizeMismatch, "expected %d integers (count=%d, width=%d), got %d", count*width, count, width, len(fields))
		}
		rows := make([][]int64, count)
		for r := 0; r < count; r++ {
			row := make([]int64, width)
			for c := 0; c < width; c++ {
				v, err := strconv.ParseInt(fields[r*width+c], 10, 64)
				if err != nil {
					return nil, mlchk.Err(mlchk.ParseError, "index %q is not an integer", fields[r*width+c])
				}
				row[c] = v
			}
			rows[r] = row
		}
		return rows, nil
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
		if err != nil {
			return nil, mlchk.Wrap(mlchk.ParseError, err, "invalid base64 index block")
		}
		need := count * width * 4
		if len(raw) != need {
			return nil, mlchk.Err(mlchk.DataSizeMismatch, "expected %d bytes of base64-decoded int32 data (count=%d, width=%d), got %d", need, count, width, len(raw))
		}
		rows := make([][]int64, count)
		pos := 0
		for r := 0; r < count; r++ {
			row := make([]int64, width)
			for c := 0; c < width; c++ {
				u := binary.LittleEndian.Uint32(raw[pos : pos+4])
				row[c] = int64(int32(u))
				pos += 4
			}
			rows[r] = row
		}
		return rows, nil
	}
	return nil, mlchk.Err(mlchk.ParseError, "unknown format %q", format)
}

// decodeRefBlock splits a reference-form element block's content into
// its whitespace-separated reference strings (spec §4.8 "Reference-form
// elements").
func decodeRefBlock(content string, count int) ([]string, error) {
	fields := strings.Fields(content)
	if len(fields) != count {
		return nil, mlchk.Err(mlchk.DataSizeMismatch, "expected %d references, got %d", count, len(fields))
	}
	return fields, nil
}

// decodeFloats parses a whitespace-separated list of exactly n floats.
func decodeFloats(content string, n int) ([]float64, error) {
	fields := strings.Fields(content)
	if len(fields) != n {
		return nil, mlchk.Err(mlchk.DataSizeMismatch, "expected %d floats, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, mlchk.Err(mlchk.ParseError, "value %q is not a float", f)
		}
		out[i] = v
	}
	return out, nil
}
