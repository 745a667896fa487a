package segment

import "sync/atomic"

const decimalPoint = 0b10000000

// Buffer holds the DimmablePattern of every digit. Each entry is stored as
// one word that is loaded and stored atomically, so one goroutine can update
// the buffer while another is scanning it.
type Buffer struct {
	entries []uint32 // brightness<<8 | pattern
}

// NewBuffer returns a blank buffer for numDigits digits, all at full
// brightness.
func NewBuffer(numDigits uint8) *Buffer {
	b := &Buffer{entries: make([]uint32, numDigits)}
	for i := range b.entries {
		b.entries[i] = pack(DimmablePattern{Brightness: FullBrightness})
	}
	return b
}

func pack(p DimmablePattern) uint32 {
	return uint32(p.Brightness)<<8 | uint32(p.Pattern)
}

func unpack(v uint32) DimmablePattern {
	return DimmablePattern{Pattern: uint8(v), Brightness: uint8(v >> 8)}
}

// NumDigits returns the number of digits in the buffer.
func (b *Buffer) NumDigits() uint8 {
	return uint8(len(b.entries))
}

// PatternAt returns the pattern and brightness of a digit. Digits outside
// the buffer read as blank.
func (b *Buffer) PatternAt(digit uint8) DimmablePattern {
	if int(digit) >= len(b.entries) {
		return DimmablePattern{}
	}
	return unpack(atomic.LoadUint32(&b.entries[digit]))
}

// SetPattern sets both the pattern and brightness of a digit. Digits outside
// the buffer are ignored.
func (b *Buffer) SetPattern(digit, pattern, brightness uint8) {
	if int(digit) >= len(b.entries) {
		return
	}
	atomic.StoreUint32(&b.entries[digit], pack(DimmablePattern{pattern, brightness}))
}

// WritePatternAt sets the pattern of a digit, leaving its brightness alone.
func (b *Buffer) WritePatternAt(digit, pattern uint8) {
	b.update(digit, func(p *DimmablePattern) { p.Pattern = pattern })
}

// SetBrightness sets the brightness of a digit, leaving its pattern alone.
func (b *Buffer) SetBrightness(digit, brightness uint8) {
	b.update(digit, func(p *DimmablePattern) { p.Brightness = brightness })
}

// SetGlobalBrightness sets the brightness of every digit.
func (b *Buffer) SetGlobalBrightness(brightness uint8) {
	for i := range b.entries {
		b.SetBrightness(uint8(i), brightness)
	}
}

// SetDecimalPoint turns the decimal point of a digit on or off.
func (b *Buffer) SetDecimalPoint(digit uint8, on bool) {
	b.update(digit, func(p *DimmablePattern) {
		if on {
			p.Pattern |= decimalPoint
		} else {
			p.Pattern &^= decimalPoint
		}
	})
}

// Clear blanks every digit. Brightness is kept.
func (b *Buffer) Clear() {
	for i := range b.entries {
		b.WritePatternAt(uint8(i), 0)
	}
}

func (b *Buffer) update(digit uint8, f func(*DimmablePattern)) {
	if int(digit) >= len(b.entries) {
		return
	}
	e := &b.entries[digit]
	for {
		old := atomic.LoadUint32(e)
		p := unpack(old)
		f(&p)
		if atomic.CompareAndSwapUint32(e, old, pack(p)) {
			return
		}
	}
}
