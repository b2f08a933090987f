package commands

import (
	"github.com/spf13/cobra"

	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Compile a narrative document and recompile on change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			parallel, _ := cmd.Flags().GetInt("parallel")
			provider, _ := cmd.Flags().GetString("provider")

			out := cmd.OutOrStdout()
			opts := app.CompileOptions{
				Full:     full,
				NoCache:  noCache,
				Parallel: parallel,
				Provider: provider,
			}
			return c.app.Watch(cmd.Context(), args[0], opts, func(res *domain.CompileResult) {
				renderResult(out, res)
			})
		},
	}
	cmd.Flags().Bool("full", false, "Recompile every token from scratch on the initial pass")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the artifact cache and force generation")
	cmd.Flags().IntP("parallel", "p", 0, "Override the configured compilation parallelism")
	cmd.Flags().String("provider", "", "Override the configured generation provider")
	return cmd
}
