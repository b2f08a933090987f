package commands

import (
	"github.com/spf13/cobra"

	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a narrative document into code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			parallel, _ := cmd.Flags().GetInt("parallel")
			provider, _ := cmd.Flags().GetString("provider")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			asJSON, _ := cmd.Flags().GetBool("json")

			out := cmd.OutOrStdout()

			if dryRun {
				plan, err := c.app.Plan(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return renderJSON(out, plan)
				}
				renderPlan(out, plan)
				return nil
			}

			res, err := c.app.Compile(cmd.Context(), args[0], app.CompileOptions{
				Full:     full,
				NoCache:  noCache,
				Parallel: parallel,
				Provider: provider,
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := renderJSON(out, res); err != nil {
					return err
				}
			} else {
				renderResult(out, res)
			}
			if !res.Ok() {
				return domain.ErrCompilationFailed
			}
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Recompile every token from scratch, ignoring stored state")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the artifact cache and force generation")
	cmd.Flags().IntP("parallel", "p", 0, "Override the configured compilation parallelism")
	cmd.Flags().String("provider", "", "Override the configured generation provider")
	cmd.Flags().Bool("dry-run", false, "Show the compilation plan without calling any provider")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}
