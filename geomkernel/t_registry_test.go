package geomkernel_test

import (
	"testing"

	"github.com/cpmech/meshlink/geomkernel"
	"github.com/cpmech/meshlink/geomkernel/fake"
	"github.com/cpmech/meshlink/internal/mlchk"
)

func Test_registry_add_activate_lookup(tst *testing.T) {
	r := geomkernel.NewRegistry()
	k := fake.New("geode-fake")
	if err := r.Add(k); err != nil {
		tst.Fatalf("add: %v", err)
	}
	if _, err := r.MustActive(); !mlchk.Is(err, mlchk.KernelError) {
		tst.Fatalf("expected KernelError before activation, got %v", err)
	}
	if err := r.Activate("geode-fake"); err != nil {
		tst.Fatalf("activate: %v", err)
	}
	active, err := r.MustActive()
	if err != nil || active.Name() != "geode-fake" {
		tst.Fatalf("expected active kernel geode-fake, got %v err=%v", active, err)
	}
}

func Test_registry_duplicate_name_rejected(tst *testing.T) {
	r := geomkernel.NewRegistry()
	r.Add(fake.New("x"))
	if err := r.Add(fake.New("x")); err == nil {
		tst.Fatalf("expected duplicate name error")
	}
}

func Test_fake_sphere_project_and_eval(tst *testing.T) {
	k := fake.New("k1")
	k.AddSphere(&fake.Sphere{Name: "sph1", Center: [3]float64{0, 0, 0}, Radius: 10})
	proj, err := k.ProjectPoint("g", [3]float64{20, 0, 0})
	if err != nil {
		tst.Fatalf("project: %v", err)
	}
	if proj.Entity != "sph1" {
		tst.Fatalf("expected sph1, got %q", proj.Entity)
	}
	if proj.Distance < 9.99 || proj.Distance > 10.01 {
		tst.Fatalf("expected distance ~10, got %v", proj.Distance)
	}
	minR, maxR, err := k.EvalRadiusOfCurvature([2]float64{0, 0}, "sph1")
	if err != nil || minR != 10 || maxR != 10 {
		tst.Fatalf("expected radius 10, got %v %v err=%v", minR, maxR, err)
	}
}
