package st7565

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Bus is the transport to the controller.
//
// Every call is a complete transfer: the implementation selects command or
// data mode, asserts chip select, writes and releases chip select.
type Bus interface {
	// Command writes one command byte.
	Command(c byte) error
	// Data writes display RAM bytes.
	Data(p []byte) error
	// Reset pulses the reset line and waits for the controller to settle.
	Reset() error
}

// Reset timing from the ST7565R datasheet, with margin.
const (
	resetPulse  = 50 * time.Microsecond
	resetSettle = 5 * time.Millisecond
)

// spiBus is a 4-wire SPI Bus: the A0 line selects command (low) or data
// (high). cs and rst are optional.
type spiBus struct {
	c   conn.Conn
	dc  gpio.PinOut
	cs  gpio.PinOut
	rst gpio.PinOut
}

func (b *spiBus) Command(c byte) error {
	return b.tx(gpio.Low, []byte{c})
}

func (b *spiBus) Data(p []byte) error {
	return b.tx(gpio.High, p)
}

func (b *spiBus) tx(dc gpio.Level, w []byte) error {
	if err := b.dc.Out(dc); err != nil {
		return err
	}
	if b.cs != nil {
		if err := b.cs.Out(gpio.Low); err != nil {
			return err
		}
	}
	err := b.c.Tx(w, nil)
	if b.cs != nil {
		if cerr := b.cs.Out(gpio.High); err == nil {
			err = cerr
		}
	}
	return err
}

func (b *spiBus) Reset() error {
	if err := b.dc.Out(gpio.Low); err != nil {
		return err
	}
	if b.cs != nil {
		if err := b.cs.Out(gpio.High); err != nil {
			return err
		}
	}
	if b.rst == nil {
		return nil
	}
	if err := b.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7565: failed to pull RST low: %w", err)
	}
	time.Sleep(resetPulse)
	if err := b.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("st7565: failed to pull RST high: %w", err)
	}
	time.Sleep(resetSettle)
	return nil
}

func (b *spiBus) String() string {
	return b.c.String()
}
