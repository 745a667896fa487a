package segment

import (
	"context"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Scanner multiplexes the digits of a display. Each call to RenderFieldNow
// advances one sub-field: numSubFields sub-fields make up the time slot of a
// digit, and a digit stays lit for the first numSubFields*brightness/256 of
// them (all of them at FullBrightness).
//
// A Scanner is not safe for concurrent use. RenderFieldNow must be called
// from one goroutine at a time, at a steady rate of at least
// numDigits * numSubFields * frames per second to avoid flicker.
type Scanner struct {
	matrix       LedMatrix
	patterns     PatternSource
	numDigits    uint8
	numSubFields uint16

	currentDigit       uint8
	prevDigit          uint8
	currentSubField    uint16
	currentSubFieldMax uint16
	isPrevDigitOn      bool

	segmentPattern  uint8
	segmentsDrawn   bool // segmentPattern is what the matrix holds
	preparedToSleep bool
}

// New returns a Scanner that draws patterns on matrix.
func New(matrix LedMatrix, patterns PatternSource, numDigits uint8, numSubFields uint16) (*Scanner, error) {
	if matrix == nil {
		return nil, ErrNoMatrix
	}
	if patterns == nil {
		return nil, ErrNoPatterns
	}
	if numDigits == 0 {
		return nil, ErrNoDigits
	}
	if numSubFields == 0 {
		return nil, ErrNoSubFields
	}
	s := &Scanner{
		matrix:       matrix,
		patterns:     patterns,
		numDigits:    numDigits,
		numSubFields: numSubFields,
	}
	s.reset()
	return s, nil
}

func (s *Scanner) reset() {
	s.currentDigit = 0
	s.prevDigit = s.numDigits - 1
	s.currentSubField = 0
	s.currentSubFieldMax = 0
	s.isPrevDigitOn = false
	s.segmentsDrawn = false
	s.preparedToSleep = false
}

// Begin readies the matrix and starts scanning from the first digit.
func (s *Scanner) Begin() {
	s.matrix.Begin()
	s.reset()
}

// End turns the display off and releases the matrix.
func (s *Scanner) End() {
	s.PrepareToSleep()
	s.matrix.End()
}

// NumDigits returns the number of digits being scanned.
func (s *Scanner) NumDigits() uint8 { return s.numDigits }

// NumSubFields returns the number of sub-fields in each digit's time slot.
func (s *Scanner) NumSubFields() uint16 { return s.numSubFields }

// subFieldMax is the number of sub-fields a digit at the given brightness
// stays lit for.
func subFieldMax(numSubFields uint16, brightness uint8) uint16 {
	return uint16(uint32(numSubFields) * uint32(brightness) / 256)
}

// RenderFieldNow renders one sub-field. It does nothing while the scanner is
// prepared to sleep.
func (s *Scanner) RenderFieldNow() {
	if s.preparedToSleep {
		return
	}

	dp := s.patterns.PatternAt(s.currentDigit)
	var isCurrentDigitOn bool
	if s.currentDigit != s.prevDigit {
		s.matrix.DisableDigit(s.prevDigit)
		s.currentSubFieldMax = subFieldMax(s.numSubFields, dp.Brightness)
	} else {
		isCurrentDigitOn = s.isPrevDigitOn
		// A single digit never changes, so pick up brightness changes at
		// the start of each slot.
		if s.currentSubField == 0 {
			s.currentSubFieldMax = subFieldMax(s.numSubFields, dp.Brightness)
		}
	}

	if dp.Brightness < FullBrightness && s.currentSubField >= s.currentSubFieldMax {
		if isCurrentDigitOn {
			s.matrix.DisableDigit(s.currentDigit)
			isCurrentDigitOn = false
		}
	} else if !isCurrentDigitOn {
		if !s.segmentsDrawn || dp.Pattern != s.segmentPattern {
			s.matrix.DrawSegments(dp.Pattern)
			s.segmentPattern = dp.Pattern
			s.segmentsDrawn = true
		}
		s.matrix.EnableDigit(s.currentDigit)
		isCurrentDigitOn = true
	}

	s.currentSubField++
	s.prevDigit = s.currentDigit
	s.isPrevDigitOn = isCurrentDigitOn

	if s.currentSubField >= s.numSubFields {
		s.currentDigit++
		if s.currentDigit >= s.numDigits {
			s.currentDigit = 0
		}
		s.currentSubField = 0
	}
}

// PrepareToSleep turns off the digit that was last lit and stops
// RenderFieldNow from doing anything until Resume is called.
func (s *Scanner) PrepareToSleep() {
	s.matrix.DisableDigit(s.prevDigit)
	s.isPrevDigitOn = false
	s.preparedToSleep = true
}

// Resume undoes PrepareToSleep. Scanning carries on where it stopped.
func (s *Scanner) Resume() {
	s.preparedToSleep = false
}

// Sleeping reports whether the scanner is prepared to sleep.
func (s *Scanner) Sleeping() bool { return s.preparedToSleep }

// FieldRate returns how often RenderFieldNow must be called to show fps
// complete frames per second.
func (s *Scanner) FieldRate(fps uint) physic.Frequency {
	return physic.Frequency(uint64(fps)*uint64(s.numDigits)*uint64(s.numSubFields)) * physic.Hertz
}

// Run calls RenderFieldNow at the rate needed for fps frames per second,
// until ctx is done. The display is put to sleep before returning.
func (s *Scanner) Run(ctx context.Context, fps uint) error {
	if fps == 0 {
		return ErrFrameRate
	}
	period := s.FieldRate(fps).Period()
	if period <= 0 {
		period = time.Nanosecond
	}
	s.Resume()
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.RenderFieldNow()
		case <-ctx.Done():
			s.PrepareToSleep()
			return nil
		}
	}
}
