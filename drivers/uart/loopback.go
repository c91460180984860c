package uart

import "io"

// Loopback is a Port whose writes become its own reads. Useful on hosts
// without serial hardware and in tests.
type Loopback struct {
	buf  []byte
	baud uint32
}

func (l *Loopback) Configure(baud uint32) error {
	l.baud = baud
	return nil
}

func (l *Loopback) Write(p []byte) (int, error) {
	l.buf = append(l.buf, p...)
	return len(p), nil
}

func (l *Loopback) Read(p []byte) (int, error) {
	if len(l.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

// Baud reports the rate from the last Configure call.
func (l *Loopback) Baud() uint32 { return l.baud }
