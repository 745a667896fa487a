package segment

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// event is one write to a pin.
type event struct {
	pin   string
	level gpio.Level
}

// eventLog records the writes made to a set of pins, in order.
type eventLog struct {
	events []event
}

func (l *eventLog) reset() { l.events = nil }

// writes returns the levels written to one pin.
func (l *eventLog) writes(pin string) []gpio.Level {
	var ls []gpio.Level
	for _, e := range l.events {
		if e.pin == pin {
			ls = append(ls, e.level)
		}
	}
	return ls
}

// recPin is a gpiotest.Pin that also logs every Out.
type recPin struct {
	*gpiotest.Pin
	log *eventLog
}

func (p *recPin) Out(l gpio.Level) error {
	p.log.events = append(p.log.events, event{pin: p.N, level: l})
	return p.Pin.Out(l)
}

func newPin(log *eventLog, name string) *recPin {
	return &recPin{Pin: &gpiotest.Pin{N: name}, log: log}
}

func newDigitPins(log *eventLog, n int) []gpio.PinIO {
	ps := make([]gpio.PinIO, n)
	for i := range ps {
		ps[i] = newPin(log, "D"+string(rune('0'+i)))
	}
	return ps
}

// fakeConn records the bytes written to an SPI connection.
type fakeConn struct {
	writes [][]byte
}

func (c *fakeConn) String() string { return "fakeConn" }

func (c *fakeConn) Tx(w, r []byte) error {
	c.writes = append(c.writes, append([]byte(nil), w...))
	return nil
}

func (c *fakeConn) Duplex() conn.Duplex { return conn.Half }

func (c *fakeConn) TxPackets(ps []spi.Packet) error {
	for _, p := range ps {
		c.Tx(p.W, p.R)
	}
	return nil
}

// fakePort hands out a fakeConn and remembers how it was asked for.
type fakePort struct {
	conn *fakeConn
	f    physic.Frequency
	mode spi.Mode
	bits int
}

func (p *fakePort) String() string { return "fakePort" }

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.f, p.mode, p.bits = f, mode, bits
	return p.conn, nil
}

func (p *fakePort) LimitSpeed(f physic.Frequency) error { return nil }

// fakeMatrix records what a Scanner asks of the hardware.
type fakeMatrix struct {
	on       []bool
	draws    []uint8
	changes  int // enable and disable calls that changed a line
	maxOn    int // most digits ever on at once
	began    bool
	ended    bool
	enables  []uint8
	disables []uint8
}

func newFakeMatrix(numDigits int) *fakeMatrix {
	return &fakeMatrix{on: make([]bool, numDigits)}
}

func (m *fakeMatrix) Begin() { m.began = true }
func (m *fakeMatrix) End()   { m.ended = true }

func (m *fakeMatrix) DrawSegments(p uint8) { m.draws = append(m.draws, p) }

func (m *fakeMatrix) EnableDigit(d uint8) {
	m.enables = append(m.enables, d)
	m.set(d, true)
}

func (m *fakeMatrix) DisableDigit(d uint8) {
	m.disables = append(m.disables, d)
	m.set(d, false)
}

func (m *fakeMatrix) set(d uint8, on bool) {
	if m.on[d] != on {
		m.changes++
	}
	m.on[d] = on
	n := 0
	for _, o := range m.on {
		if o {
			n++
		}
	}
	if n > m.maxOn {
		m.maxOn = n
	}
}
