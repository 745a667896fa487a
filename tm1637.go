package segment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/tm1637"
)

// Tm1637MaxDigits is the number of digit registers in a TM1637.
const Tm1637MaxDigits = 6

// tm1637Dev is the part of tm1637.Dev a Tm1637Module uses.
type tm1637Dev interface {
	Write(seg []byte) (int, error)
	SetBrightness(b tm1637.Brightness) error
}

// Tm1637Module shows a Buffer on a TM1637 LED controller. The chip does its
// own scanning and dimming, so the module only pushes the buffer out when
// it changes. The TM1637 has one brightness for the whole display: the
// brightest digit in the buffer sets it.
type Tm1637Module struct {
	dev tm1637Dev
	buf *Buffer

	segs       []byte
	brightness tm1637.Brightness
	flushed    bool
}

// NewTm1637Module returns a module sending buf to the TM1637 wired to clk
// and data.
func NewTm1637Module(clk, data gpio.PinIO, buf *Buffer) (*Tm1637Module, error) {
	if buf == nil {
		return nil, ErrNoPatterns
	}
	if buf.NumDigits() == 0 {
		return nil, ErrNoDigits
	}
	if buf.NumDigits() > Tm1637MaxDigits {
		return nil, fmt.Errorf("a TM1637 drives at most %d digits, not %d", Tm1637MaxDigits, buf.NumDigits())
	}
	dev, err := tm1637.New(clk, data)
	if err != nil {
		return nil, fmt.Errorf("opening TM1637: %w", err)
	}
	return newTm1637Module(dev, buf), nil
}

func newTm1637Module(dev tm1637Dev, buf *Buffer) *Tm1637Module {
	return &Tm1637Module{dev: dev, buf: buf, segs: make([]byte, buf.NumDigits())}
}

// tm1637Brightness maps 0-255 onto off plus the chip's 8 levels.
func tm1637Brightness(b uint8) tm1637.Brightness {
	if b == 0 {
		return tm1637.Off
	}
	return tm1637.Brightness1 + tm1637.Brightness(b/32)
}

// Flush sends whatever has changed in the buffer since the last Flush.
func (m *Tm1637Module) Flush() error {
	changed := !m.flushed
	var max uint8
	for i := range m.segs {
		p := m.buf.PatternAt(uint8(i))
		if m.segs[i] != p.Pattern {
			m.segs[i] = p.Pattern
			changed = true
		}
		if p.Brightness > max {
			max = p.Brightness
		}
	}
	if changed {
		if _, err := m.dev.Write(m.segs); err != nil {
			return fmt.Errorf("writing TM1637 segments: %w", err)
		}
	}
	// The display stays off until the first brightness command.
	if b := tm1637Brightness(max); !m.flushed || b != m.brightness {
		if err := m.dev.SetBrightness(b); err != nil {
			return fmt.Errorf("setting TM1637 brightness: %w", err)
		}
		m.brightness = b
	}
	m.flushed = true
	return nil
}

// Run flushes the buffer every interval until ctx is done, then turns the
// display off.
func (m *Tm1637Module) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("must flush at a positive interval")
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := m.Flush(); err != nil {
			return err
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return m.End()
		}
	}
}

// End turns the display off. The next Flush turns it back on.
func (m *Tm1637Module) End() error {
	m.flushed = false
	if err := m.dev.SetBrightness(tm1637.Off); err != nil {
		return fmt.Errorf("turning TM1637 off: %w", err)
	}
	return nil
}
