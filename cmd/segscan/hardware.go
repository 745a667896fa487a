package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DrJosh9000/segment"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	backend       = "serial"
	latchPin      = "GPIO23"
	dataPin       = "GPIO27"
	clockPin      = "GPIO22"
	digitPins     = []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"}
	segmentPins   []string
	spiBus        = ""
	spiHz         = int64(1000000)
	numSubFields  = uint16(16)
	framesPerSec  = uint(60)
	commonCathode = true
	brightness    = uint8(segment.FullBrightness)
	tm1637Digits  = uint8(4)
	tm1637Refresh = 20 * time.Millisecond
)

func addHardwareFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&backend, "backend", backend, "How the display is wired: serial, spi, direct, dual or tm1637")
	f.StringVar(&latchPin, "latch", latchPin, "Latch (ST_CP) pin for the serial backend")
	f.StringVar(&dataPin, "data", dataPin, "Data (DS) pin for the serial backend, DIO for tm1637")
	f.StringVar(&clockPin, "clock", clockPin, "Clock (SH_CP) pin for the serial backend, CLK for tm1637")
	f.StringSliceVar(&digitPins, "digits", digitPins, "Common pin of each digit, leftmost first")
	f.StringSliceVar(&segmentPins, "segments", segmentPins, "Segment pins A to DP for the direct backend")
	f.StringVar(&spiBus, "spi", spiBus, "SPI port for the spi and dual backends (empty for default)")
	f.Int64Var(&spiHz, "spi-hz", spiHz, "SPI clock frequency in Hz")
	f.Uint16Var(&numSubFields, "subfields", numSubFields, "Brightness steps per digit")
	f.UintVar(&framesPerSec, "fps", framesPerSec, "Frames per second")
	f.BoolVar(&commonCathode, "common-cathode", commonCathode, "Display is common cathode (false for common anode)")
	f.Uint8Var(&brightness, "brightness", brightness, "Brightness of every digit, 0-255")
	f.Uint8Var(&tm1637Digits, "tm1637-digits", tm1637Digits, "Number of digits on a tm1637 module (at most 6)")
	f.DurationVar(&tm1637Refresh, "tm1637-refresh", tm1637Refresh, "How often to send changes to a tm1637")
}

// display is a buffer together with whatever shows it.
type display struct {
	buf   *segment.Buffer
	desc  string
	run   func(ctx context.Context) error
	close func() error
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	return p, nil
}

func pinsByName(names []string) ([]gpio.PinIO, error) {
	ps := make([]gpio.PinIO, len(names))
	for i, n := range names {
		p, err := pinByName(n)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// openMatrix builds the LED matrix described by the flags.
func openMatrix() (m segment.LedMatrix, numDigits int, closer func() error, err error) {
	closer = func() error { return nil }
	kind := strings.ToLower(backend)
	switch kind {
	case "serial":
		sm := &segment.SerialMatrix{CommonCathode: commonCathode}
		if sm.Latch, err = pinByName(latchPin); err != nil {
			return nil, 0, nil, err
		}
		if sm.Data, err = pinByName(dataPin); err != nil {
			return nil, 0, nil, err
		}
		if sm.Clock, err = pinByName(clockPin); err != nil {
			return nil, 0, nil, err
		}
		if sm.Digits, err = pinsByName(digitPins); err != nil {
			return nil, 0, nil, err
		}
		return sm, len(sm.Digits), closer, nil

	case "direct":
		if len(segmentPins) == 0 || len(segmentPins) > 8 {
			return nil, 0, nil, errors.New("direct backend needs 1 to 8 --segments")
		}
		dm := &segment.DirectMatrix{CommonCathode: commonCathode}
		segs, err := pinsByName(segmentPins)
		if err != nil {
			return nil, 0, nil, err
		}
		copy(dm.Segments[:], segs)
		if dm.Digits, err = pinsByName(digitPins); err != nil {
			return nil, 0, nil, err
		}
		return dm, len(dm.Digits), closer, nil

	case "spi", "dual":
		p, err := spireg.Open(spiBus)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("opening SPI port: %w", err)
		}
		c, err := segment.ConnectSPI(p, physic.Frequency(spiHz)*physic.Hertz)
		if err != nil {
			p.Close()
			return nil, 0, nil, err
		}
		if kind == "dual" {
			if len(digitPins) > 8 {
				p.Close()
				return nil, 0, nil, errors.New("dual backend drives at most 8 digits")
			}
			return &segment.DualShiftRegister{Conn: c, CommonCathode: commonCathode}, len(digitPins), p.Close, nil
		}
		digits, err := pinsByName(digitPins)
		if err != nil {
			p.Close()
			return nil, 0, nil, err
		}
		return &segment.SPIMatrix{Conn: c, Digits: digits, CommonCathode: commonCathode}, len(digits), p.Close, nil
	}
	return nil, 0, nil, fmt.Errorf("unknown backend %q", backend)
}

// openTm1637 builds a display on a TM1637 module, which scans by itself.
func openTm1637() (*display, error) {
	clk, err := pinByName(clockPin)
	if err != nil {
		return nil, err
	}
	dio, err := pinByName(dataPin)
	if err != nil {
		return nil, err
	}
	buf := segment.NewBuffer(tm1637Digits)
	buf.SetGlobalBrightness(brightness)
	m, err := segment.NewTm1637Module(clk, dio, buf)
	if err != nil {
		return nil, err
	}
	return &display{
		buf:   buf,
		desc:  fmt.Sprintf("TM1637 with %d digits, refreshed every %v", tm1637Digits, tm1637Refresh),
		run:   func(ctx context.Context) error { return m.Run(ctx, tm1637Refresh) },
		close: m.End,
	}, nil
}

// openScanner builds a scanner from the flags.
func openScanner() (*display, error) {
	m, n, closer, err := openMatrix()
	if err != nil {
		return nil, err
	}
	if n > 255 {
		closer()
		return nil, errors.New("too many digits")
	}
	buf := segment.NewBuffer(uint8(n))
	buf.SetGlobalBrightness(brightness)
	s, err := segment.New(m, buf, uint8(n), numSubFields)
	if err != nil {
		closer()
		return nil, fmt.Errorf("creating scanner: %w", err)
	}
	s.Begin()
	return &display{
		buf: buf,
		desc: fmt.Sprintf("scanning %d digits, %d sub-fields, %d fps (%v)",
			s.NumDigits(), s.NumSubFields(), framesPerSec, s.FieldRate(framesPerSec)),
		run: func(ctx context.Context) error { return s.Run(ctx, framesPerSec) },
		close: func() error {
			s.End()
			return closer()
		},
	}, nil
}

// openDisplay initialises periph.io and builds the display the flags ask for.
func openDisplay() (*display, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialising periph.io: %w", err)
	}
	if strings.ToLower(backend) == "tm1637" {
		return openTm1637()
	}
	return openScanner()
}

// NumDigits returns the number of digits on the display.
func (d *display) NumDigits() uint8 { return d.buf.NumDigits() }

// Close turns the display off and releases the hardware.
func (d *display) Close() error { return d.close() }
