package segment

import (
	"context"
	"time"
)

// Hex characters beyond 0x0-0xF understood by NumberWriter.
const (
	HexSpace = 0x10
	HexMinus = 0x11

	numHexChars = 0x12
)

// Segment patterns for 0-F, space, and minus.
var hexPatterns = [numHexChars]uint8{
	//DP GFEDCBA
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
	0b01110111, // A
	0b01111100, // b
	0b00111001, // C
	0b01011110, // d
	0b01111001, // E
	0b01110001, // F
	0b00000000, // space
	0b01000000, // -
}

// NumberWriter writes hexadecimal and decimal numbers into a Buffer.
type NumberWriter struct {
	Buffer *Buffer
}

// WriteHexCharAt writes hex character c (0x0-0xF, HexSpace or HexMinus) at
// pos. Anything else is written as a space.
func (w NumberWriter) WriteHexCharAt(pos, c uint8) {
	if c >= numHexChars {
		c = HexSpace
	}
	w.Buffer.WritePatternAt(pos, hexPatterns[c])
}

// WriteHexCharsAt writes a run of hex characters starting at pos.
func (w NumberWriter) WriteHexCharsAt(pos uint8, cs []uint8) {
	for _, c := range cs {
		w.WriteHexCharAt(pos, c)
		pos++
	}
}

// WriteHexByteAt writes b as two hex digits.
func (w NumberWriter) WriteHexByteAt(pos, b uint8) {
	w.WriteHexCharAt(pos, b>>4)
	w.WriteHexCharAt(pos+1, b&0x0F)
}

// WriteHexWordAt writes x as four hex digits.
func (w NumberWriter) WriteHexWordAt(pos uint8, x uint16) {
	w.WriteHexByteAt(pos, uint8(x>>8))
	w.WriteHexByteAt(pos+2, uint8(x))
}

// WriteUnsignedDecimalAt writes num in decimal, left aligned at pos. It
// returns the number of digits written.
func (w NumberWriter) WriteUnsignedDecimalAt(pos uint8, num uint16) int {
	var buf [5]uint8
	start := toDecimal(num, buf[:])
	w.WriteHexCharsAt(pos, buf[start:])
	return len(buf) - start
}

// WriteSignedDecimalAt is WriteUnsignedDecimalAt with a leading minus for
// negative numbers.
func (w NumberWriter) WriteSignedDecimalAt(pos uint8, num int16) int {
	var buf [6]uint8
	abs := uint16(num)
	if num < 0 {
		abs = uint16(-int32(num))
	}
	start := toDecimal(abs, buf[:])
	if num < 0 {
		start--
		buf[start] = HexMinus
	}
	w.WriteHexCharsAt(pos, buf[start:])
	return len(buf) - start
}

// WriteUnsignedDecimalBoxedAt writes num right aligned in the boxSize
// digits starting at pos, filling the left with hex character pad. Every
// digit of the box is written, so the box never shows blank in between.
// Numbers too long for the box lose their leading digits.
func (w NumberWriter) WriteUnsignedDecimalBoxedAt(pos uint8, num uint16, boxSize, pad uint8) {
	var buf [5]uint8
	digits := buf[toDecimal(num, buf[:]):]
	if len(digits) > int(boxSize) {
		digits = digits[len(digits)-int(boxSize):]
	}
	for i := len(digits); i < int(boxSize); i++ {
		w.WriteHexCharAt(pos, pad)
		pos++
	}
	w.WriteHexCharsAt(pos, digits)
}

// toDecimal fills the tail of buf with the decimal digits of num and returns
// the index of the first one.
func toDecimal(num uint16, buf []uint8) int {
	pos := len(buf)
	for {
		pos--
		buf[pos] = uint8(num % 10)
		num /= 10
		if num == 0 {
			return pos
		}
	}
}

// CycleDigits animates a simple test pattern of scrolling hex digits.
func (w NumberWriter) CycleDigits(ctx context.Context, interval time.Duration) {
	n := int(w.Buffer.NumDigits())
	off := 0
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		for i := 0; i < n; i++ {
			w.WriteHexCharAt(uint8(i), uint8((off+i)%16))
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
		off++
		off %= 16
	}
}
