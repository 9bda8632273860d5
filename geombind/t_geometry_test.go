package geombind

import (
	"testing"

	"github.com/cpmech/meshlink/mlid"
)

func Test_leaf_and_composite_resolution(tst *testing.T) {
	s := NewStore(nil)
	leaf1 := &Group{Gid: 1, Name: "leafA", EntityNames: map[string]bool{"surf1": true}}
	leaf2 := &Group{Gid: 2, Name: "leafB", EntityNames: map[string]bool{"surf2": true}}
	if err := s.AddGroup(leaf1); err != nil {
		tst.Fatalf("add leaf1: %v", err)
	}
	if err := s.AddGroup(leaf2); err != nil {
		tst.Fatalf("add leaf2: %v", err)
	}
	composite := &Group{Gid: 3, Name: "top", ChildGids: []mlid.Gid{1, 2}}
	if err := s.AddGroup(composite); err != nil {
		tst.Fatalf("add composite: %v", err)
	}
	ents, err := s.Entities(3)
	if err != nil {
		tst.Fatalf("entities: %v", err)
	}
	if !ents["surf1"] || !ents["surf2"] || len(ents) != 2 {
		tst.Fatalf("unexpected union: %v", ents)
	}
	got, _ := s.GetByID(1)
	if got.GroupID != 3 {
		tst.Fatalf("child back-pointer not set: %v", got.GroupID)
	}
}

func Test_composite_with_unknown_child_rejected(tst *testing.T) {
	s := NewStore(nil)
	err := s.AddGroup(&Group{Gid: 1, ChildGids: []mlid.Gid{99}})
	if err == nil {
		tst.Fatalf("expected error for unknown child gid")
	}
}

func Test_duplicate_id_and_name_rejected(tst *testing.T) {
	s := NewStore(nil)
	s.AddGroup(&Group{Gid: 1, Name: "a"})
	if err := s.AddGroup(&Group{Gid: 1, Name: "b"}); err == nil {
		tst.Fatalf("expected duplicate id error")
	}
	if err := s.AddGroup(&Group{Gid: 2, Name: "a"}); err == nil {
		tst.Fatalf("expected duplicate name error")
	}
}

func Test_common_entity_rule(tst *testing.T) {
	s := NewStore(nil)
	s.AddGroup(&Group{Gid: 1, EntityNames: map[string]bool{"e1": true, "e2": true}})
	s.AddGroup(&Group{Gid: 2, EntityNames: map[string]bool{"e2": true}})
	s.AddGroup(&Group{Gid: 3, EntityNames: map[string]bool{"e9": true}})
	ok, _ := s.CommonEntity(1, 2)
	if !ok {
		tst.Fatalf("expected common entity between 1 and 2")
	}
	ok, _ = s.CommonEntity(1, 3)
	if ok {
		tst.Fatalf("expected no common entity between 1 and 3")
	}
}
