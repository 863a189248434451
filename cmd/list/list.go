// cmd/list/list.go

package list

import (
	"github.com/spf13/cobra"
)

// ListCmd is the "quell list" verb.
var ListCmd = NewListCmd()

// NewListCmd builds the list verb and its subcommands.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the current state of hardening targets without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewServicesCmd())
	return cmd
}
