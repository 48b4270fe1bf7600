package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tasks"
	"github.com/balkashynov/tally/internal/tui"
)

const barWidth = 20

var listCmd = &cobra.Command{
	Use:     "ls [query]",
	Aliases: []string{"list"},
	Short:   "List tasks with their progress",
	Long:    "List your tasks and subtasks. A query keeps only tasks whose title or subtask titles contain it (case insensitive).",
	Args:    cobra.ArbitraryArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		session, err := currentSession(cmd)
		if err != nil {
			return err
		}

		list, err := application.Tasks(session.Username).Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No tasks found. Use 'tally add \"task title\"' to create your first task.")
			return nil
		}

		query := strings.Join(args, " ")
		list = tasks.Filter(list, query)
		if len(list) == 0 {
			fmt.Fprintf(out, "No tasks match %q.\n", query)
			return nil
		}

		renderTasks(out, list)
		return nil
	}),
}

// renderTasks prints each task with its progress bar followed by its subtasks
func renderTasks(out io.Writer, list []models.Task) {
	fmt.Fprintf(out, "%-15s %-*s %5s  %s\n", "ID", barWidth, "PROGRESS", "", "TITLE")
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, task := range list {
		p := tasks.Progress(task)
		fmt.Fprintf(out, "%-15d %s %4d%%  %s\n", task.ID, progressBar(p), tasks.Percent(p), task.Title)

		for _, sub := range task.SubTasks {
			mark := " "
			if sub.Completed {
				mark = "x"
			}
			fmt.Fprintf(out, "%-15s [%s] %-15d %s\n", "", mark, sub.ID, sub.Title)
		}
	}
}

// progressBar draws a fixed-width bar in the progress color
func progressBar(progress float64) string {
	filled := int(progress / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tui.ProgressHex(progress))).
		Render(bar)
}
