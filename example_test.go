package segment

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func ExampleScanner() {
	host.Init()
	m := &SerialMatrix{
		Latch: gpioreg.ByName("GPIO23"),
		Data:  gpioreg.ByName("GPIO27"),
		Clock: gpioreg.ByName("GPIO22"),
		Digits: []gpio.PinIO{
			gpioreg.ByName("GPIO5"),
			gpioreg.ByName("GPIO6"),
			gpioreg.ByName("GPIO13"),
			gpioreg.ByName("GPIO19"),
		},
		CommonCathode: true,
	}
	buf := NewBuffer(4)
	s, err := New(m, buf, 4, 16)
	if err != nil {
		return
	}
	s.Begin()
	defer s.End()

	CharWriter{Buffer: buf}.WriteStringAt(0, "12.34")
	buf.SetBrightness(3, 64) // dim the last digit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Run(ctx, 60)
}

func ExampleNumberWriter() {
	buf := NewBuffer(4)
	NumberWriter{Buffer: buf}.WriteSignedDecimalAt(0, -123)
	for d := uint8(0); d < buf.NumDigits(); d++ {
		fmt.Printf("%08b\n", buf.PatternAt(d).Pattern)
	}
	// Output:
	// 01000000
	// 00000110
	// 01011011
	// 01001111
}
