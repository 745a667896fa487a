// Package segment drives multiplexed 7-segment LED displays from GPIO pins
// (using periph.io). A Scanner lights one digit at a time, fast enough that
// the eye sees them all, and dims each digit by switching it off for part of
// its time slot.
package segment // import "github.com/DrJosh9000/segment"

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Errors returned by New and Scanner.Run.
var (
	ErrNoDigits    = errors.New("must have at least one digit")
	ErrNoSubFields = errors.New("must have at least one sub-field per digit")
	ErrNoMatrix    = errors.New("must provide an LED matrix")
	ErrNoPatterns  = errors.New("must provide a pattern source")
	ErrFrameRate   = errors.New("must run at least one frame per second")
)

// FullBrightness keeps a digit lit for its whole time slot.
const FullBrightness = 255

// DimmablePattern is the segment pattern and brightness of one digit.
// Segment bits are DP G F E D C B A, from bit 7 down to bit 0.
type DimmablePattern struct {
	Pattern    uint8
	Brightness uint8
}

// PatternSource yields the pattern to show on each digit.
type PatternSource interface {
	PatternAt(digit uint8) DimmablePattern
}

// LedMatrix is the hardware a Scanner draws on. None of the methods may
// block for longer than it takes to toggle a handful of lines.
type LedMatrix interface {
	// Begin puts every line into its idle state, with all digits off.
	Begin()
	// End turns every digit off and releases the lines.
	End()
	// DrawSegments loads the segment pattern shown by the next enabled digit.
	DrawSegments(pattern uint8)
	// EnableDigit turns on the common line of a digit.
	EnableDigit(digit uint8)
	// DisableDigit turns off the common line of a digit.
	DisableDigit(digit uint8)
}

// digitLevels returns the levels that turn a digit's common line on and off.
// A common cathode is sunk (driven low) to light the digit.
func digitLevels(commonCathode bool) (on, off gpio.Level) {
	if commonCathode {
		return gpio.Low, gpio.High
	}
	return gpio.High, gpio.Low
}

// segmentBits converts a logical pattern into the bits to put on the segment
// lines. Common anode displays light a segment by sinking it.
func segmentBits(pattern uint8, commonCathode bool) uint8 {
	if commonCathode {
		return pattern
	}
	return ^pattern
}

// setDigit drives the common line of digit, if there is one.
func setDigit(digits []gpio.PinIO, digit uint8, l gpio.Level) {
	if int(digit) >= len(digits) || digits[digit] == nil {
		return
	}
	digits[digit].Out(l)
}

// releaseAll puts the lines into high impedance.
func releaseAll(pins ...gpio.PinIO) {
	for _, p := range pins {
		if p == nil {
			continue
		}
		p.In(gpio.PullNoChange, gpio.NoEdge)
	}
}
