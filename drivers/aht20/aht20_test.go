package aht20

import (
	"testing"
	"time"

	"dedrv-go/device"
)

// fakeI2C emulates an AHT20 behind the drivers.I2C interface.
type fakeI2C struct {
	calibrated bool
	busyReads  int // Collect attempts answered busy before data

	rawHum  uint32
	rawTemp uint32

	gotInit  bool
	gotReset bool
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	switch {
	case len(w) > 0 && w[0] == cmdStatus:
		if f.calibrated {
			r[0] = statusCalibrated
		}
	case len(w) > 0 && w[0] == cmdInitialize:
		f.gotInit = true
		f.calibrated = true
	case len(w) > 0 && w[0] == cmdSoftReset:
		f.gotReset = true
		f.calibrated = false
	case len(w) > 0 && w[0] == cmdTrigger:
		// conversion starts; nothing to answer
	case len(w) == 0 && len(r) == 7:
		if f.busyReads > 0 {
			f.busyReads--
			r[0] = statusCalibrated | statusBusy
			return nil
		}
		r[0] = statusCalibrated
		r[1] = byte(f.rawHum >> 12)
		r[2] = byte(f.rawHum >> 4)
		r[3] = byte(f.rawHum&0x0F)<<4 | byte(f.rawTemp>>16)&0x0F
		r[4] = byte(f.rawTemp >> 8)
		r[5] = byte(f.rawTemp)
	}
	return nil
}

func newSensor(bus *fakeI2C) *device.Device[State] {
	return device.NewWith[State](Driver{}, State{Bus: bus, Addr: Address})
}

func TestInitSkipsCalibratedPart(t *testing.T) {
	bus := &fakeI2C{calibrated: true}
	if err := newSensor(bus).Init(); err != nil {
		t.Fatal(err)
	}
	if bus.gotInit {
		t.Fatal("initialize command sent to an already calibrated part")
	}
}

func TestInitForcesCalibration(t *testing.T) {
	bus := &fakeI2C{}
	if err := newSensor(bus).Init(); err != nil {
		t.Fatal(err)
	}
	if !bus.gotInit {
		t.Fatal("initialize command not sent")
	}
}

func TestReadWithBusyRetries(t *testing.T) {
	// rawTemp 0x60000 -> 25.0 C; rawHum 0x8CCCD -> 55.0 %RH.
	bus := &fakeI2C{calibrated: true, busyReads: 2, rawTemp: 0x60000, rawHum: 0x8CCCD}
	dev := newSensor(bus)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	m, err := Access(dev).Read(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if m.DeciCelsius != 250 {
		t.Fatalf("DeciCelsius = %d, want 250", m.DeciCelsius)
	}
	if m.DeciRelHumidity != 550 {
		t.Fatalf("DeciRelHumidity = %d, want 550", m.DeciRelHumidity)
	}
}

func TestCollectNotReadyWhileBusy(t *testing.T) {
	bus := &fakeI2C{calibrated: true, busyReads: 1}
	dev := newSensor(bus)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	s := Access(dev)
	if err := s.Trigger(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Collect(); err != ErrNotReady {
		t.Fatalf("Collect while busy = %v, want ErrNotReady", err)
	}
	if _, err := s.Collect(); err != nil {
		t.Fatalf("Collect after busy = %v", err)
	}
}

func TestCleanupResetsPart(t *testing.T) {
	bus := &fakeI2C{calibrated: true}
	dev := newSensor(bus)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if !bus.gotReset {
		t.Fatal("soft reset not sent")
	}
	if err := Access(dev).Trigger(); err != ErrNotReady {
		t.Fatalf("Trigger after cleanup = %v, want ErrNotReady", err)
	}
}

func TestInitWithoutBusFails(t *testing.T) {
	dev := device.New[State](Driver{})
	if err := dev.Init(); err != ErrNoBus {
		t.Fatalf("Init = %v, want ErrNoBus", err)
	}
}
