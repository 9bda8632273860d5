package linkage

import (
	"math"
	"testing"

	"github.com/cpmech/meshlink/mlid"
)

func identityContents() string {
	return "1 0 0 0  0 1 0 0  0 0 1 0  0 0 0 1"
}

func Test_parse_transform_contents_requires_16_floats(tst *testing.T) {
	if _, err := ParseTransformContents("1 2 3"); err == nil {
		tst.Fatalf("expected error for short content")
	}
	c, err := ParseTransformContents(identityContents())
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if c[0] != 1 || c[5] != 1 || c[10] != 1 || c[15] != 1 {
		tst.Fatalf("unexpected identity contents: %v", c)
	}
}

func Test_apply_identity_transform(tst *testing.T) {
	contents, _ := ParseTransformContents(identityContents())
	tr := &Transform{Xid: 1, Contents: contents}
	x, y, z := tr.Apply(3, 4, 5)
	if math.Abs(x-3) > 1e-12 || math.Abs(y-4) > 1e-12 || math.Abs(z-5) > 1e-12 {
		tst.Fatalf("identity transform should not move point, got (%v,%v,%v)", x, y, z)
	}
}

func Test_inverse_of_translation_transform_undoes_apply(tst *testing.T) {
	contents, _ := ParseTransformContents("1 0 0 0  0 1 0 0  0 0 1 0  10 20 30 1")
	tr := &Transform{Xid: 1, Contents: contents}

	x, y, z := tr.Apply(1, 2, 3)
	if math.Abs(x-11) > 1e-12 || math.Abs(y-22) > 1e-12 || math.Abs(z-33) > 1e-12 {
		tst.Fatalf("unexpected forward apply: (%v,%v,%v)", x, y, z)
	}

	bx, by, bz, err := tr.ApplyInverse(x, y, z)
	if err != nil {
		tst.Fatalf("apply inverse: %v", err)
	}
	if math.Abs(bx-1) > 1e-9 || math.Abs(by-2) > 1e-9 || math.Abs(bz-3) > 1e-9 {
		tst.Fatalf("expected inverse to undo the translation, got (%v,%v,%v)", bx, by, bz)
	}
}

func Test_compose_then_apply_matches_sequential_apply(tst *testing.T) {
	rot, _ := ParseTransformContents("0 1 0 0  -1 0 0 0  0 0 1 0  0 0 0 1")
	trans, _ := ParseTransformContents("1 0 0 0  0 1 0 0  0 0 1 0  5 0 0 1")
	a := &Transform{Xid: 1, Contents: rot}
	b := &Transform{Xid: 2, Contents: trans}

	composed := Compose(b, a) // apply a, then b
	ct := &Transform{Xid: 3}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			ct.Contents[col*4+row] = composed[row][col]
		}
	}

	px, py, pz := a.Apply(1, 0, 0)
	px, py, pz = b.Apply(px, py, pz)
	cx, cy, cz := ct.Apply(1, 0, 0)

	if math.Abs(px-cx) > 1e-9 || math.Abs(py-cy) > 1e-9 || math.Abs(pz-cz) > 1e-9 {
		tst.Fatalf("composed transform disagrees with sequential apply: got (%v,%v,%v), want (%v,%v,%v)", cx, cy, cz, px, py, pz)
	}
}

func Test_store_add_and_duplicate_transform(tst *testing.T) {
	s := NewStore()
	contents, _ := ParseTransformContents(identityContents())
	if err := s.AddTransform(&Transform{Xid: 1, Contents: contents}); err != nil {
		tst.Fatalf("add: %v", err)
	}
	if err := s.AddTransform(&Transform{Xid: 1, Contents: contents}); err == nil {
		tst.Fatalf("expected duplicate xid error")
	}
}

func Test_linkage_requires_resolvable_refs(tst *testing.T) {
	s := NewStore()
	resolver := func(ref string) bool { return ref == "/Base/sheetA" || ref == "/Base/sheetB" }
	err := s.AddLinkage(&Linkage{Name: "l1", SourceRef: "/Base/sheetA", TargetRef: "/Base/missing", Xref: mlid.InvalidXid}, resolver)
	if err == nil {
		tst.Fatalf("expected unresolved target ref error")
	}
	err = s.AddLinkage(&Linkage{Name: "l2", SourceRef: "/Base/sheetA", TargetRef: "/Base/sheetB", Xref: mlid.InvalidXid}, resolver)
	if err != nil {
		tst.Fatalf("expected success, got %v", err)
	}
	if s.LinkageCount() != 1 {
		tst.Fatalf("expected 1 linkage, got %d", s.LinkageCount())
	}
}

func Test_linkage_requires_resolvable_xref(tst *testing.T) {
	s := NewStore()
	resolver := func(ref string) bool { return true }
	err := s.AddLinkage(&Linkage{Name: "l1", SourceRef: "a", TargetRef: "b", Xref: 42}, resolver)
	if err == nil {
		tst.Fatalf("expected unresolved xref error")
	}
}
