package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tsmeta/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show which files would be compiled and why the others are skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			compile, _ := cmd.Flags().GetBool("compile")
			return c.app.Check(cmd.Context(), c.request(cmd, nil, pipelineFlags), app.CheckOptions{
				Compile: compile,
			})
		},
	}
	addPipelineFlags(cmd)
	cmd.Flags().Bool("compile", false, "Run the compiler on eligible files instead of stopping before it")
	return cmd
}
