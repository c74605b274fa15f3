package cli

import (
	"github.com/spf13/cobra"
)

func newLimitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the configured validation limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limits := a.cfg.Limits
			cmd.Printf("Max projects:                   %d\n", limits.MaxProjects)
			cmd.Printf("Max tasks per project:          %d\n", limits.MaxTasksPerProject)
			cmd.Printf("Max project name length:        %d\n", limits.MaxProjectNameLength)
			cmd.Printf("Max project description length: %d\n", limits.MaxProjectDescriptionLength)
			cmd.Printf("Max task title length:          %d\n", limits.MaxTaskTitleLength)
			cmd.Printf("Max task description length:    %d\n", limits.MaxTaskDescriptionLength)
			return nil
		},
	}
}
