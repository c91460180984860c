package registry

import (
	"fmt"
	"iter"
	"sync"

	"dedrv-go/descriptor"
)

// ---- process-wide descriptor table ----

var (
	mu    sync.Mutex
	table []descriptor.Descriptor
)

// Register appends one descriptor to the process-wide table. It is additive
// only: a registering package cannot see other packages' entries, so
// duplicate ids are deliberately not checked here. The lifecycle scan detects
// them before any hook runs.
//
// Register panics on a malformed descriptor to surface declaration mistakes
// at program start-up.
func Register(d descriptor.Descriptor) {
	if err := d.Check(); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	mu.Lock()
	defer mu.Unlock()
	table = append(table, d)
}

// Lifecycle is the device-instance surface Register binds hooks to.
type Lifecycle interface {
	Init() error
	Cleanup() error
}

// RegisterDevice registers a device instance under a fixed id and priority,
// binding the descriptor hooks to that instance.
func RegisterDevice(id string, priority int32, dev Lifecycle) {
	Register(descriptor.Descriptor{
		ID:       id,
		Priority: priority,
		Init:     dev.Init,
		Cleanup:  dev.Cleanup,
	})
}

// Static returns the read-only view over everything registered so far.
// Call it after all package init functions have run (i.e. from main or
// later); registrations made afterwards are not reflected in the view.
func Static() *Registry {
	mu.Lock()
	defer mu.Unlock()
	return &Registry{recs: table[:len(table):len(table)]}
}

// ---- read-only view ----

// Registry is a read-only, placement-ordered view over a set of descriptors.
type Registry struct {
	recs []descriptor.Descriptor
}

// Of builds a view directly from descriptors, in the given placement order.
// Used by tests and by embedders that assemble their own table.
func Of(recs ...descriptor.Descriptor) *Registry {
	return &Registry{recs: recs}
}

// Len reports the number of descriptors in the view.
func (r *Registry) Len() int { return len(r.recs) }

// Entries yields the descriptors in placement order. The sequence is finite
// and restartable; the underlying view never changes after construction.
func (r *Registry) Entries() iter.Seq[descriptor.Descriptor] {
	return func(yield func(descriptor.Descriptor) bool) {
		for _, d := range r.recs {
			if !yield(d) {
				return
			}
		}
	}
}

// At returns the descriptor at placement index i.
func (r *Registry) At(i int) descriptor.Descriptor { return r.recs[i] }

// Find scans for a descriptor with the given id. Absence is a normal
// outcome, reported through ok, not an error. With duplicate ids present the
// first placement wins; the lifecycle scan rejects such registries before
// any hook runs.
func (r *Registry) Find(id string) (descriptor.Descriptor, bool) {
	for _, d := range r.recs {
		if d.ID == id {
			return d, true
		}
	}
	return descriptor.Descriptor{}, false
}

// Validate re-checks every descriptor's shape. Views built by FromRegion are
// already layout-checked; this guards views assembled in-process against
// malformed entries. A failure is fatal: the view must not be iterated.
func (r *Registry) Validate() error {
	for i, d := range r.recs {
		if err := d.Check(); err != nil {
			return &LayoutError{Reason: fmt.Sprintf("entry %d: %v", i, err)}
		}
	}
	return nil
}
