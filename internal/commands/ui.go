package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	Long:  "Open the interactive UI: log in, manage tasks and subtasks, and (as admin) create users and browse the audit log.",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), application)
	}),
}
