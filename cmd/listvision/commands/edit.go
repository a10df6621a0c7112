package commands

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/tui"
)

func editCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the row list in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.newController())
		},
	}
}
