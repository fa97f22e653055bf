package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wanderplan/internal/itinerary"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE|-",
	Short: "Sanitize and validate a raw model reply, then render it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read reply: %w", err)
		}

		it, err := itinerary.Validate(itinerary.Sanitize(string(raw)))
		if err != nil {
			return fmt.Errorf("%s: %w", itinerary.KindOf(err), err)
		}
		return RenderText(cmd.OutOrStdout(), it)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
