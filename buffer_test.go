package segment

import (
	"sync"
	"testing"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer(4)
	if got := b.NumDigits(); got != 4 {
		t.Errorf("NumDigits() = %d, want 4", got)
	}
	if got, want := b.PatternAt(0), (DimmablePattern{0, FullBrightness}); got != want {
		t.Errorf("new buffer PatternAt(0) = %+v, want %+v", got, want)
	}

	b.SetPattern(1, 0x3F, 100)
	b.WritePatternAt(1, 0x06)
	b.SetBrightness(2, 7)
	b.SetDecimalPoint(3, true)
	want := []DimmablePattern{
		{0x00, 255},
		{0x06, 100},
		{0x00, 7},
		{0x80, 255},
	}
	for i, w := range want {
		if got := b.PatternAt(uint8(i)); got != w {
			t.Errorf("PatternAt(%d) = %+v, want %+v", i, got, w)
		}
	}

	// Out of range digits are ignored.
	b.SetPattern(4, 0xFF, 0)
	b.SetBrightness(200, 1)
	if got := b.PatternAt(4); got != (DimmablePattern{}) {
		t.Errorf("PatternAt(4) = %+v, want zero", got)
	}

	b.SetDecimalPoint(3, false)
	b.SetGlobalBrightness(50)
	b.Clear()
	for i := uint8(0); i < 4; i++ {
		if got := b.PatternAt(i); got != (DimmablePattern{0, 50}) {
			t.Errorf("after Clear, PatternAt(%d) = %+v", i, got)
		}
	}
}

func TestBufferConcurrentUpdates(t *testing.T) {
	b := NewBuffer(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				b.WritePatternAt(0, 0x3F)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				b.SetBrightness(0, 42)
				b.PatternAt(0)
			}
		}(i)
	}
	wg.Wait()
	if got := b.PatternAt(0); got != (DimmablePattern{0x3F, 42}) {
		t.Errorf("PatternAt(0) = %+v, want {0x3F 42}", got)
	}
}
