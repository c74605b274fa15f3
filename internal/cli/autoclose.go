package cli

import (
	"github.com/spf13/cobra"
)

// newAutocloseCmd is the batch counterpart of the in-server scheduler,
// meant for periodic invocation from cron or similar.
func newAutocloseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "autoclose-overdue",
		Short: "Close every task that is currently overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closed, err := a.tasks.AutoCloseOverdue(cmd.Context())
			if closed > 0 {
				cmd.Printf("Auto-closed %d overdue task(s)\n", closed)
			} else {
				cmd.Println("No overdue tasks found to close")
			}
			return err
		},
	}
}
