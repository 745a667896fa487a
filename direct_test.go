package segment

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestDirectMatrix(t *testing.T) {
	testCases := []struct {
		name          string
		commonCathode bool
	}{
		{"common cathode", true},
		{"common anode", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log := &eventLog{}
			m := &DirectMatrix{Digits: newDigitPins(log, 3), CommonCathode: tc.commonCathode}
			for i := range m.Segments {
				m.Segments[i] = newPin(log, "S"+string(rune('A'+i)))
			}
			on, off := gpio.Level(!tc.commonCathode), gpio.Level(tc.commonCathode)
			segOn := gpio.Level(tc.commonCathode)

			m.Begin()
			for i, s := range m.Segments {
				if s.Read() == segOn {
					t.Errorf("segment %d lit after Begin", i)
				}
			}

			m.DrawSegments(0b10000011) // A, B and DP
			for i, s := range m.Segments {
				lit := i == 0 || i == 1 || i == 7
				if got := s.Read() == segOn; got != lit {
					t.Errorf("segment %d lit = %t, want %t", i, got, lit)
				}
			}

			m.EnableDigit(0)
			if m.Digits[0].Read() != on {
				t.Errorf("digit 0 not on")
			}
			m.End()
			if m.Digits[0].Read() != off {
				t.Errorf("digit 0 not off after End")
			}
		})
	}
}

func TestDirectMatrixSkipsMissingSegments(t *testing.T) {
	log := &eventLog{}
	m := &DirectMatrix{Digits: newDigitPins(log, 1), CommonCathode: true}
	m.Segments[0] = newPin(log, "SA")
	m.DrawSegments(0xFF)
	if got := log.writes("SA"); len(got) != 1 || got[0] != gpio.High {
		t.Errorf("segment A writes = %v, want [High]", got)
	}
}
