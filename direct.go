package segment

import "periph.io/x/conn/v3/gpio"

// DirectMatrix drives a display with every segment and every digit wired to
// its own line. Segments[0] is segment A and Segments[7] the decimal point.
type DirectMatrix struct {
	Segments [8]gpio.PinIO // nil entries are skipped
	Digits   []gpio.PinIO

	CommonCathode bool
}

// Begin turns every digit and segment off.
func (m *DirectMatrix) Begin() {
	_, off := digitLevels(m.CommonCathode)
	for d := range m.Digits {
		setDigit(m.Digits, uint8(d), off)
	}
	m.DrawSegments(0)
}

// End turns everything off and releases the lines.
func (m *DirectMatrix) End() {
	m.Begin()
	releaseAll(m.Digits...)
	releaseAll(m.Segments[:]...)
}

// DrawSegments writes one bit of the pattern to each segment line.
func (m *DirectMatrix) DrawSegments(pattern uint8) {
	bits := segmentBits(pattern, m.CommonCathode)
	for i, s := range m.Segments {
		if s == nil {
			continue
		}
		s.Out(bits&(1<<i) != 0)
	}
}

// EnableDigit turns a digit on.
func (m *DirectMatrix) EnableDigit(digit uint8) {
	on, _ := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, on)
}

// DisableDigit turns a digit off.
func (m *DirectMatrix) DisableDigit(digit uint8) {
	_, off := digitLevels(m.CommonCathode)
	setDigit(m.Digits, digit, off)
}
