package registry

import (
	"testing"

	"dedrv-go/descriptor"
)

func nopHook() error { return nil }

func desc(id string, pri int32) descriptor.Descriptor {
	return descriptor.Descriptor{ID: id, Priority: pri, Init: nopHook, Cleanup: nopHook}
}

type nopDevice struct{}

func (nopDevice) Init() error    { return nil }
func (nopDevice) Cleanup() error { return nil }

func TestRegisterAndStatic(t *testing.T) {
	const id = "/test/static0"
	if _, ok := Static().Find(id); ok {
		t.Skip("device already registered by earlier test run")
	}
	RegisterDevice(id, 7, nopDevice{})
	reg := Static()
	d, ok := reg.Find(id)
	if !ok {
		t.Fatalf("registered device %q not found", id)
	}
	if d.Priority != 7 {
		t.Fatalf("priority = %d, want 7", d.Priority)
	}
}

func TestStaticIsSnapshot(t *testing.T) {
	reg := Static()
	n := reg.Len()
	RegisterDevice("/test/late0", 0, nopDevice{})
	if reg.Len() != n {
		t.Fatal("view reflected a registration made after Static()")
	}
}

func TestRegisterMalformedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty id")
		}
	}()
	Register(descriptor.Descriptor{Init: nopHook, Cleanup: nopHook})
}

func TestEntriesYieldsAllInPlacementOrder(t *testing.T) {
	reg := Of(desc("/b", 2), desc("/a", 1), desc("/c", 3))
	var ids []string
	for d := range reg.Entries() {
		ids = append(ids, d.ID)
	}
	want := []string{"/b", "/a", "/c"}
	if len(ids) != len(want) {
		t.Fatalf("yielded %d entries, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("placement order %v, want %v", ids, want)
		}
	}
}

func TestEntriesIsRestartable(t *testing.T) {
	reg := Of(desc("/a", 1), desc("/b", 2))
	for pass := 0; pass < 2; pass++ {
		n := 0
		for range reg.Entries() {
			n++
		}
		if n != 2 {
			t.Fatalf("pass %d yielded %d entries", pass, n)
		}
	}
}

func TestEntriesStopsEarly(t *testing.T) {
	reg := Of(desc("/a", 1), desc("/b", 2), desc("/c", 3))
	n := 0
	for range reg.Entries() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("early break yielded %d entries", n)
	}
}

func TestFindAbsentIsNotAnError(t *testing.T) {
	reg := Of(desc("/a", 1))
	if _, ok := reg.Find("/missing"); ok {
		t.Fatal("found a descriptor that was never registered")
	}
}

func TestValidateCatchesMalformedEntry(t *testing.T) {
	reg := Of(descriptor.Descriptor{ID: "/bad", Priority: 1, Init: nil, Cleanup: nopHook})
	err := reg.Validate()
	if err == nil {
		t.Fatal("malformed entry passed validation")
	}
	if _, ok := err.(*LayoutError); !ok {
		t.Fatalf("error type %T, want *LayoutError", err)
	}
}
