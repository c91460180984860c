package uart

import (
	"errors"
	"io"
	"testing"

	"dedrv-go/device"
)

func TestInitDefaultsBaud(t *testing.T) {
	lb := &Loopback{}
	dev := device.NewWith[State](Driver{}, State{Port: lb})

	if err := dev.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := lb.Baud(); got != DefaultBaud {
		t.Fatalf("baud = %d, want %d", got, DefaultBaud)
	}
}

func TestInitWithoutPort(t *testing.T) {
	dev := device.New[State](Driver{})
	if err := dev.Init(); !errors.Is(err, ErrNoPort) {
		t.Fatalf("err = %v, want ErrNoPort", err)
	}
}

func TestLoopbackRoundTrip(t *testing.T) {
	dev := device.NewWith[State](Driver{}, State{Port: &Loopback{}, Baud: 9600})
	if err := dev.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	s := Access(dev)
	if _, err := s.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("read %q, want %q", buf[:n], "ping")
	}
	if _, err := s.Read(buf); err != io.EOF {
		t.Fatalf("drained read err = %v, want io.EOF", err)
	}
}

func TestClosedPortRejectsIO(t *testing.T) {
	dev := device.NewWith[State](Driver{}, State{Port: &Loopback{}})
	if err := dev.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := dev.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	s := Access(dev)
	if _, err := s.Write([]byte{1}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("write err = %v, want ErrNotReady", err)
	}
	if _, err := s.Read(make([]byte, 1)); !errors.Is(err, ErrNotReady) {
		t.Fatalf("read err = %v, want ErrNotReady", err)
	}
}
