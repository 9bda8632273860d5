package geomkernel

import "github.com/cpmech/meshlink/internal/mlchk"

// Registry holds every Kernel attached to one façade and tracks which
// one is active (spec §5 "the geometry-kernel registry, which is a
// process-wide singleton owned by the façade class itself" -- here
// owned per-façade instead, per spec §9's recommended re-architecture:
// "an implementation targeting multi-threaded ingestion should partition
// the counters per façade instance instead of using process globals").
// Modeled on gofem/fem/domain.go's la.GetSolver(name)-by-name pluggable
// solver lookup.
type Registry struct {
	kernels map[string]Kernel
	active  string
}

// NewRegistry returns an empty kernel registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[string]Kernel)}
}

// Add registers k under k.Name(), rejecting a duplicate name.
func (r *Registry) Add(k Kernel) error {
	name := k.Name()
	if _, exists := r.kernels[name]; exists {
		return mlchk.Err(mlchk.Duplicate, "geometry kernel %q already registered", name)
	}
	r.kernels[name] = k
	return nil
}

// Remove unregisters the kernel with the given name. If it was active,
// no kernel is active afterward.
func (r *Registry) Remove(name string) {
	delete(r.kernels, name)
	if r.active == name {
		r.active = ""
	}
}

// Get returns the kernel with the given name, or (nil, false).
func (r *Registry) Get(name string) (Kernel, bool) {
	k, ok := r.kernels[name]
	return k, ok
}

// Activate makes the named kernel the active one. Exactly one kernel is
// active at a time (spec §6.2).
func (r *Registry) Activate(name string) error {
	if _, ok := r.kernels[name]; !ok {
		return mlchk.Err(mlchk.NotFound, "geometry kernel %q not registered", name)
	}
	r.active = name
	return nil
}

// Active returns the currently active kernel, or (nil, false) if none is
// active.
func (r *Registry) Active() (Kernel, bool) {
	if r.active == "" {
		return nil, false
	}
	return r.Get(r.active)
}

// MustActive returns the active kernel or a KernelError if none is set
// (spec §7 "KernelError -- geometry kernel call failed or no active
// kernel").
func (r *Registry) MustActive() (Kernel, error) {
	k, ok := r.Active()
	if !ok {
		return nil, mlchk.Err(mlchk.KernelError, "no active geometry kernel")
	}
	return k, nil
}
