package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <file>",
		Short: "Show what a compile run would do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			report, err := c.app.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), report)
			}
			renderStatus(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
