package device

import "testing"

// counterDriver is stateless: all per-instance data lives in counterState.
type counterDriver struct{}

type counterState struct {
	inits    int
	cleanups int
	value    int
}

func (counterDriver) Init(st *State[counterState]) error {
	st.With(func(s *counterState) { s.inits++ })
	return nil
}

func (counterDriver) Cleanup(st *State[counterState]) error {
	st.With(func(s *counterState) { s.cleanups++ })
	return nil
}

func (counterDriver) Add(st *State[counterState], n int) {
	st.With(func(s *counterState) { s.value += n })
}

func TestDeviceDelegatesToDriver(t *testing.T) {
	d := New[counterState](counterDriver{})
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Cleanup(); err != nil {
		t.Fatal(err)
	}
	s := d.State().Get()
	if s.inits != 1 || s.cleanups != 1 {
		t.Fatalf("hook counts = %+v", s)
	}
}

func TestOneDriverManyDevices(t *testing.T) {
	drv := counterDriver{}
	a := New[counterState](drv)
	b := New[counterState](drv)

	drv.Add(a.State(), 5)
	drv.Add(b.State(), 7)
	drv.Add(a.State(), 1)

	if got := a.State().Get().value; got != 6 {
		t.Fatalf("device a value = %d, want 6", got)
	}
	if got := b.State().Get().value; got != 7 {
		t.Fatalf("device b value = %d, want 7", got)
	}
}

func TestNewWithSeedsState(t *testing.T) {
	d := NewWith[counterState](counterDriver{}, counterState{value: 42})
	if got := d.State().Get().value; got != 42 {
		t.Fatalf("seed value = %d, want 42", got)
	}
}

func TestStateSetGet(t *testing.T) {
	var st State[int]
	st.Set(9)
	if st.Get() != 9 {
		t.Fatalf("Get = %d, want 9", st.Get())
	}
}
