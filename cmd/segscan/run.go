package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"
	"unicode/utf8"

	"github.com/DrJosh9000/segment"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var countInterval = time.Second

func countCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:  "count",
		Args: cobra.ExactArgs(0),
		RunE: count,
	}
	cmd.Flags().DurationVar(&countInterval, "interval", countInterval, "Time between counts")

	return &cmd
}

func listenStop() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// countModulus is where count wraps back to zero on a display of n digits.
func countModulus(n uint8) uint32 {
	m := uint32(1)
	for i := uint8(0); i < n && m <= 0xFFFF; i++ {
		m *= 10
	}
	if m > 0x10000 {
		m = 0x10000
	}
	return m
}

// scan runs the display and producer together until one fails or the
// process is interrupted.
func scan(d *display, producer func(ctx context.Context) error) error {
	ctx, stop := listenStop()
	defer stop()

	log.Print(d.desc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.run(ctx) })
	g.Go(func() error { return producer(ctx) })
	return g.Wait()
}

func text(_ *cobra.Command, args []string) error {
	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer d.Close()

	n := segment.CharWriter{Buffer: d.buf}.WriteStringAt(0, args[0])
	if n < utf8.RuneCountInString(args[0]) {
		log.Printf("display only fits %d digits", d.NumDigits())
	}

	return scan(d, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
}

func count(_ *cobra.Command, _ []string) error {
	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer d.Close()

	w := segment.NumberWriter{Buffer: d.buf}
	mod := countModulus(d.NumDigits())
	return scan(d, func(ctx context.Context) error {
		t := time.NewTicker(countInterval)
		defer t.Stop()
		for n := uint32(0); ; n = (n + 1) % mod {
			w.WriteUnsignedDecimalBoxedAt(0, uint16(n), d.NumDigits(), segment.HexSpace)
			select {
			case <-t.C:
			case <-ctx.Done():
				return nil
			}
		}
	})
}
