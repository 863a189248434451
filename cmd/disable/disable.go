// cmd/disable/disable.go

package disable

import (
	"github.com/spf13/cobra"
)

// DisableCmd is the "quell disable" verb.
var DisableCmd = NewDisableCmd()

// NewDisableCmd builds the disable verb and its subcommands.
func NewDisableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Stop and disable things that should not run on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewServicesCmd())
	return cmd
}
