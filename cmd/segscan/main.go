// Command segscan shows text or a counter on a multiplexed 7-segment display
// wired to GPIO pins.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:  "segscan",
		Args: cobra.ExactArgs(0),
	}
	addHardwareFlags(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:  "text STRING",
		Args: cobra.ExactArgs(1),
		RunE: text,
	})
	cmd.AddCommand(countCommand())

	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
