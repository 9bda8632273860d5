package attrib

import (
	"testing"

	"github.com/cpmech/meshlink/internal/mlchk"
	"github.com/cpmech/meshlink/mlid"
)

func Test_scalar_resolves_to_itself(tst *testing.T) {
	s := NewStore()
	if err := s.Add(&Attribute{AttId: 1, Name: "a", Contents: "model size = 1.0"}); err != nil {
		tst.Fatalf("add failed: %v", err)
	}
	ids, err := s.ResolveGroup(1)
	if err != nil || len(ids) != 1 || ids[0] != 1 {
		tst.Fatalf("expected [1], got %v err=%v", ids, err)
	}
}

func Test_group_closure_dedup_sorted(tst *testing.T) {
	s := NewStore()
	s.Add(&Attribute{AttId: 1, Contents: "x"})
	s.Add(&Attribute{AttId: 2, Contents: "y"})
	s.Add(&Attribute{AttId: 3, Contents: "z"})
	if err := s.Add(&Attribute{AttId: 10, IsGroup: true, Contents: "3 1 2 1"}); err != nil {
		tst.Fatalf("group add failed: %v", err)
	}
	ids, err := s.ResolveGroup(10)
	if err != nil {
		tst.Fatalf("resolve failed: %v", err)
	}
	want := []mlid.AttId{1, 2, 3}
	if len(ids) != len(want) {
		tst.Fatalf("got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			tst.Fatalf("got %v want %v", ids, want)
		}
	}
}

func Test_group_closure_idempotent_and_no_group_ids(tst *testing.T) {
	s := NewStore()
	s.Add(&Attribute{AttId: 1, Contents: "leaf"})
	s.Add(&Attribute{AttId: 2, IsGroup: true, Contents: "1"})
	s.Add(&Attribute{AttId: 3, IsGroup: true, Contents: "2 1"})
	ids, err := s.ResolveGroup(3)
	if err != nil {
		tst.Fatalf("resolve failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		tst.Fatalf("expected closure [1], got %v", ids)
	}
	for _, id := range ids {
		if att, _ := s.GetByID(id); att.IsGroup {
			tst.Fatalf("closure must not contain group ids: %d", id)
		}
	}
}

func Test_group_with_unresolvable_content_is_rejected(tst *testing.T) {
	s := NewStore()
	err := s.Add(&Attribute{AttId: 1, IsGroup: true, Contents: "999"})
	if err == nil {
		tst.Fatalf("expected error for unresolvable group content")
	}
	if !mlchk.Is(err, mlchk.UnresolvedReference) {
		tst.Fatalf("expected UnresolvedReference, got %v", err)
	}
	if _, ok := s.GetByID(1); ok {
		tst.Fatalf("invalid group must not be inserted")
	}
}

func Test_duplicate_attid_rejected(tst *testing.T) {
	s := NewStore()
	s.Add(&Attribute{AttId: 1, Contents: "a"})
	err := s.Add(&Attribute{AttId: 1, Contents: "b"})
	if !mlchk.Is(err, mlchk.Duplicate) {
		tst.Fatalf("expected Duplicate error, got %v", err)
	}
}
