package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wanderplan/internal/itinerary"
)

var promptPrefs preferenceFlags

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the model prompt for the given preferences without calling any model",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := promptPrefs.preferences().Normalize()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), itinerary.BuildPrompt(prefs))
		return err
	},
}

func init() {
	promptPrefs.register(promptCmd.Flags())
	rootCmd.AddCommand(promptCmd)
}
