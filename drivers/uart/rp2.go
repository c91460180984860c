//go:build rp2040 || rp2350

package uart

import (
	"context"
	"errors"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// rp2Port adapts a hardware UART to Port.
type rp2Port struct {
	u      *uartx.UART
	tx, rx machine.Pin
}

// NewPort returns the Port for the named hardware UART with the given pins.
func NewPort(id string, tx, rx machine.Pin) (Port, error) {
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errors.New("uart: unknown port " + id)
	}
	return &rp2Port{u: hw, tx: tx, rx: rx}, nil
}

func (p *rp2Port) Configure(baud uint32) error {
	// Defaults inside uartx apply when baud is zero.
	return p.u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       p.tx,
		RX:       p.rx,
	})
}

func (p *rp2Port) Write(b []byte) (int, error) { return p.u.Write(b) }

func (p *rp2Port) Read(b []byte) (int, error) {
	return p.u.RecvSomeContext(context.Background(), b)
}
