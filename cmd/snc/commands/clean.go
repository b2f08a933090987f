package commands

import (
	"github.com/spf13/cobra"

	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the workspace state and caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, _ := cmd.Flags().GetBool("log")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Store: false,
				Log:   false,
			}

			switch {
			case all:
				opts.All = true
			case log:
				opts.Log = true
			default:
				// Default behavior: clean stored state and artifacts
				opts.Store = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("log", "l", false, "Remove only the debug log")
	cmd.Flags().BoolP("all", "a", false, "Remove the whole workspace directory")

	return cmd
}
