package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a primary task",
	Long: `Add a primary task to your list. All arguments form the title.

Example:
  tally add Plan the offsite`,
	Args: cobra.ArbitraryArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		session, err := currentSession(cmd)
		if err != nil {
			return err
		}

		task, err := application.Tasks(session.Username).AddPrimaryTask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added task #%d: %s\n", task.ID, task.Title)
		return nil
	}),
}

var subCmd = &cobra.Command{
	Use:   "sub [task-id] [subtask title]",
	Short: "Add a subtask to a task",
	Long: `Add a subtask to one of your tasks. Task ids are shown by 'tally ls'.

Example:
  tally sub 1712345678901 Book the venue`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}
		session, err := currentSession(cmd)
		if err != nil {
			return err
		}

		sub, err := application.Tasks(session.Username).AddSubTask(cmd.Context(), taskID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added subtask #%d to task #%d: %s\n", sub.ID, taskID, sub.Title)
		return nil
	}),
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID '%s'", kind, arg)
	}
	return id, nil
}
