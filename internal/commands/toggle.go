package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle [task-id] [subtask-id]",
	Aliases: []string{"done"},
	Short:   "Mark a subtask done, or back to open",
	Args:    cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}
		subTaskID, err := parseID("subtask", args[1])
		if err != nil {
			return err
		}
		session, err := currentSession(cmd)
		if err != nil {
			return err
		}

		sub, err := application.Tasks(session.Username).ToggleSubTask(cmd.Context(), taskID, subTaskID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if sub.Completed {
			fmt.Fprintf(out, "✅ Completed subtask #%d: %s\n", sub.ID, sub.Title)
		} else {
			fmt.Fprintf(out, "↩️  Reopened subtask #%d: %s\n", sub.ID, sub.Title)
		}
		return nil
	}),
}
