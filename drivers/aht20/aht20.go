// Package aht20 implements a stateless driver for the AHT20 temperature and
// humidity sensor over I²C.
//
// The driver avoids floating-point; fixed-point accessors return tenths of
// units (deci-°C and deci-%RH).
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
package aht20

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"

	"dedrv-go/device"
	"dedrv-go/x/mathx"
)

// Address is the fixed I²C address of the part.
const Address = 0x38

// Commands and status bits (per datasheet/common driver practice).
const (
	cmdTrigger    = 0xAC
	cmdInitialize = 0xBE
	cmdSoftReset  = 0xBA
	cmdStatus     = 0x71

	statusBusy       = 0x80
	statusCalibrated = 0x08
)

// Errors returned by the driver.
var (
	ErrNoBus    = errors.New("aht20: no bus handle")
	ErrNotReady = errors.New("aht20: not ready")
	ErrTimeout  = errors.New("aht20: timeout")
)

// State is the per-device driver state: the bus handle and address seeded at
// device construction, plus the last raw sample.
type State struct {
	Bus  drivers.I2C
	Addr uint16

	rawHum  uint32
	rawTemp uint32
	ready   bool
}

// Measurement is one converted sample.
type Measurement struct {
	// DeciCelsius is temperature in tenths of a degree Celsius.
	DeciCelsius int32
	// DeciRelHumidity is relative humidity in tenths of a percent, clamped
	// to [0,1000].
	DeciRelHumidity int32
}

// Driver operates AHT20 devices. Stateless; one value backs every sensor on
// every bus.
type Driver struct{}

// Init soft-checks calibration and forces initialization when needed. The
// sensor needs a short guard delay before the first trigger; callers should
// not expect an immediately ready sample.
func (Driver) Init(st *device.State[State]) error {
	var err error
	st.With(func(s *State) {
		if s.Bus == nil {
			err = ErrNoBus
			return
		}
		if s.Addr == 0 {
			s.Addr = Address
		}
		status := []byte{0}
		if e := s.Bus.Tx(s.Addr, []byte{cmdStatus}, status); e == nil && status[0]&statusCalibrated != 0 {
			s.ready = true
			return
		}
		// Tolerate devices that do not ACK the init immediately.
		_ = s.Bus.Tx(s.Addr, []byte{cmdInitialize, 0x08, 0x00}, nil)
		s.ready = true
	})
	if err == nil {
		time.Sleep(10 * time.Millisecond)
	}
	return err
}

// Cleanup issues a soft reset, returning the part to its power-on state.
// Give the device ~20ms afterwards before using it again.
func (Driver) Cleanup(st *device.State[State]) error {
	st.With(func(s *State) {
		if s.ready {
			_ = s.Bus.Tx(s.Addr, []byte{cmdSoftReset}, nil)
		}
		s.ready = false
	})
	return nil
}

// Trigger starts a measurement. Quick register write, no blocking; the part
// needs ~80ms to convert before Collect will succeed.
func (Driver) Trigger(st *device.State[State]) error {
	var err error
	st.With(func(s *State) {
		if !s.ready {
			err = ErrNotReady
			return
		}
		err = s.Bus.Tx(s.Addr, []byte{cmdTrigger, 0x33, 0x00}, nil)
	})
	return err
}

// Collect fetches one measurement. Returns ErrNotReady while the part is
// still converting; any bus error is returned as-is.
func (Driver) Collect(st *device.State[State]) (Measurement, error) {
	var m Measurement
	var err error
	st.With(func(s *State) {
		if !s.ready {
			err = ErrNotReady
			return
		}
		var data [7]byte
		if err = s.Bus.Tx(s.Addr, nil, data[:]); err != nil {
			return
		}
		if data[0]&statusCalibrated == 0 || data[0]&statusBusy != 0 {
			err = ErrNotReady
			return
		}
		s.rawHum = (uint32(data[1]) << 12) | (uint32(data[2]) << 4) | (uint32(data[3]) >> 4)
		s.rawTemp = (uint32(data[3]&0x0F) << 16) | (uint32(data[4]) << 8) | uint32(data[5])
		m = convert(s.rawHum, s.rawTemp)
	})
	return m, err
}

// Read performs a full cycle: Trigger followed by bounded polling until
// Collect succeeds or timeout elapses.
func (Driver) Read(st *device.State[State], timeout time.Duration) (Measurement, error) {
	d := Driver{}
	if err := d.Trigger(st); err != nil {
		return Measurement{}, err
	}
	deadline := time.Now().Add(timeout)
	for {
		m, err := d.Collect(st)
		switch err {
		case nil:
			return m, nil
		case ErrNotReady:
			if time.Now().After(deadline) {
				return Measurement{}, ErrTimeout
			}
			time.Sleep(15 * time.Millisecond)
		default:
			return Measurement{}, err
		}
	}
}

func convert(rawHum, rawTemp uint32) Measurement {
	return Measurement{
		DeciCelsius:     ((int32(rawTemp) * 2000) / 0x100000) - 500,
		DeciRelHumidity: mathx.Clamp((int32(rawHum)*1000)/0x100000, 0, 1000),
	}
}

// Sensor is the capability view over one AHT20 device.
type Sensor struct {
	dev *device.Device[State]
}

// Access returns the capability view for dev.
func Access(dev *device.Device[State]) Sensor { return Sensor{dev: dev} }

func (s Sensor) Trigger() error { return Driver{}.Trigger(s.dev.State()) }
func (s Sensor) Collect() (Measurement, error) {
	return Driver{}.Collect(s.dev.State())
}
func (s Sensor) Read(timeout time.Duration) (Measurement, error) {
	return Driver{}.Read(s.dev.State(), timeout)
}
