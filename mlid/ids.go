// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mlid implements MeshLink's primitive identifier types, the
// unordered-index hashing used to key mesh elements, and the per-kind
// monotonic name generator the writer relies on for deterministic
// output (spec §3, §4.1).
package mlid

// Invalid is the sentinel value for every id kind below (spec §3).
const Invalid int64 = -101

// AttId identifies an Attribute or AttributeGroup.
type AttId int64

// Gid identifies a GeometryGroup (or GeometryReference).
type Gid int64

// Xid identifies a MeshLinkTransform.
type Xid int64

// Mid identifies any mesh topology entity (point, edge, face, string,
// sheet, model, linkage).
type Mid int64

// Valid reports whether the id is not the sentinel.
func (a AttId) Valid() bool { return int64(a) != Invalid }
func (g Gid) Valid() bool   { return int64(g) != Invalid }
func (x Xid) Valid() bool   { return int64(x) != Invalid }
func (m Mid) Valid() bool   { return int64(m) != Invalid }

// InvalidAttId, InvalidGid, InvalidXid, InvalidMid are convenience
// sentinels of each id kind.
const (
	InvalidAttId = AttId(Invalid)
	InvalidGid   = Gid(Invalid)
	InvalidXid   = Xid(Invalid)
	InvalidMid   = Mid(Invalid)
)

// UNUSED marks an unused face index slot (triangular face, spec §3).
const UNUSED int64 = -1
