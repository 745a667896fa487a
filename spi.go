package segment

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultSPIFrequency is comfortably within what a 74HC595 can take at 3.3V.
const DefaultSPIFrequency = physic.MegaHertz

// ConnectSPI connects to a port in the mode a 74HC595 expects: data sampled
// on the rising clock edge, 8 bits per word. The register latches when chip
// select is released, so CS goes to ST_CP.
func ConnectSPI(p spi.Port, f physic.Frequency) (spi.Conn, error) {
	if f == 0 {
		f = DefaultSPIFrequency
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", p, err)
	}
	return c, nil
}

// SPIMatrix is wired like SerialMatrix, but the segment pattern is sent by
// an SPI controller instead of by toggling pins.
type SPIMatrix struct {
	Conn   spi.Conn
	Digits []gpio.PinIO

	CommonCathode bool

	buf [1]byte
}

// Begin turns every digit off.
func (m *SPIMatrix) Begin() {
	_, off := digitLevels(m.CommonCathode)
	for d := range m.Digits {
		setDigit(m.Digits, uint8(d), off)
	}
}

// End turns every digit off and releases the digit lines.
func (m *SPIMatrix) End() {
	m.Begin()
	releaseAll(m.Digits...)
}

// DrawSegments sends the pattern in one transfer.
func (m *SPIMatrix) DrawSegments(pattern uint8) {
	m.buf[0] = segmentBits(pattern, m.CommonCathode)
	m.Conn.Tx(m.buf[:], nil)
}

// EnableDigit turns a digit on.
func (m *SPIMatrix) EnableDigit(digit uint8) {
	on, _ := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, on)
}

// DisableDigit turns a digit off.
func (m *SPIMatrix) DisableDigit(digit uint8) {
	_, off := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, off)
}

// DualShiftRegister drives a display with two chained shift registers: the
// first holds one bit per digit (up to 8 digits), the second the segments.
// Each update is one 16-bit transfer, digit byte first.
//
// Since the digit lines live in the same transfer as the segments,
// DrawSegments only remembers the pattern; EnableDigit sends it.
type DualShiftRegister struct {
	Conn spi.Conn

	CommonCathode bool

	pattern uint8
	buf     [2]byte
}

// Begin blanks both registers.
func (m *DualShiftRegister) Begin() { m.clear() }

// End blanks both registers.
func (m *DualShiftRegister) End() { m.clear() }

// DrawSegments sets the pattern sent by the next EnableDigit.
func (m *DualShiftRegister) DrawSegments(pattern uint8) {
	m.pattern = pattern
}

// EnableDigit turns on one digit, showing the last drawn pattern.
func (m *DualShiftRegister) EnableDigit(digit uint8) {
	if digit >= 8 {
		return
	}
	m.send(1<<digit, m.pattern)
}

// DisableDigit blanks the display; only one digit is ever on.
func (m *DualShiftRegister) DisableDigit(uint8) { m.clear() }

func (m *DualShiftRegister) clear() { m.send(0, 0) }

// send writes logical digit and segment bits, converting both to line levels.
func (m *DualShiftRegister) send(digits, segments uint8) {
	if !m.CommonCathode {
		m.buf[0] = digits
	} else {
		m.buf[0] = ^digits
	}
	m.buf[1] = segmentBits(segments, m.CommonCathode)
	m.Conn.Tx(m.buf[:], nil)
}
