package segment

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// SerialMatrix drives a display whose segments hang off a 74HC595 (or any
// serial-in, parallel-out latch) that is bit-banged over three lines, and
// whose digits each have their own common line.
type SerialMatrix struct {
	Latch, Data, Clock gpio.PinIO   // required: ST_CP, DS, SH_CP on a 74HC595
	Digits             []gpio.PinIO // common line of each digit

	CommonCathode bool          // false means common anode
	Delay         time.Duration // optional, held after each clock edge
}

// Begin turns every digit off and idles the serial lines.
func (m *SerialMatrix) Begin() {
	_, off := digitLevels(m.CommonCathode)
	for d := range m.Digits {
		setDigit(m.Digits, uint8(d), off)
	}
	m.Data.Out(gpio.Low)
	m.Clock.Out(gpio.Low)
	m.Latch.Out(gpio.High)
}

// End turns every digit off and releases all the lines.
func (m *SerialMatrix) End() {
	_, off := digitLevels(m.CommonCathode)
	for d := range m.Digits {
		setDigit(m.Digits, uint8(d), off)
	}
	releaseAll(m.Digits...)
	releaseAll(m.Latch, m.Data, m.Clock)
}

// DrawSegments shifts the pattern into the shift register, most significant
// bit first, and then latches it onto the outputs.
func (m *SerialMatrix) DrawSegments(pattern uint8) {
	m.Latch.Out(gpio.Low)
	shiftOut(m.Data, m.Clock, segmentBits(pattern, m.CommonCathode), m.Delay)
	m.Latch.Out(gpio.High)
}

// EnableDigit turns a digit on.
func (m *SerialMatrix) EnableDigit(digit uint8) {
	on, _ := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, on)
}

// DisableDigit turns a digit off.
func (m *SerialMatrix) DisableDigit(digit uint8) {
	_, off := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, off)
}

// shiftOut clocks out 8 bits, MSB first. The receiver samples data on the
// rising edge of clock.
func shiftOut(data, clock gpio.PinIO, b uint8, delay time.Duration) {
	for mask := uint8(0x80); mask != 0; mask >>= 1 {
		clock.Out(gpio.Low)
		data.Out(b&mask != 0)
		if delay > 0 {
			time.Sleep(delay)
		}
		clock.Out(gpio.High)
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}
