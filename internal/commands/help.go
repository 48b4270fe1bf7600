package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for tally",
	Long:  `Display detailed help for all tally commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp(cmd.OutOrStdout())
	},
}

func showCustomHelp(out io.Writer) {
	fmt.Fprint(out, `
tally - CLI todo list with subtasks and progress

SESSION:

  login                   Log in (session kept for 7 days)
    -u, --username        Username
    -p, --password        Password
  logout                  End the current session
  whoami                  Show the logged in user

TASKS:

  add <title>             Add a primary task
  sub <task-id> <title>   Add a subtask to a task
  toggle <task> <sub>     Mark a subtask done or open again
  ls [query]              List tasks with progress bars
                          (query matches task and subtask titles)

ADMIN:

  user add <name>         Create a user
    -p, --password        Password
    -r, --role            user|admin (default user)
  user ls                 List users
  audit                   Show the audit log, newest first
    -n, --limit           Show only the newest n entries

INTERFACES:

  ui                      Interactive terminal UI
  serve                   JSON API over HTTP
    --addr                Listen address (default localhost:8080)

GLOBAL FLAGS:

  --backend               sqlite|redis|memory (default sqlite)
                          memory keeps nothing between runs, use it with ui or serve
  --db                    SQLite path (default ~/.tally/tally.db)
  --redis-url             Redis URL for the redis backend
  --log-level             debug|info|warn|error (default warn)
  --config                Config file (default ~/.tally/config.yaml)

Every flag can also be set as TALLY_<NAME>, e.g. TALLY_BACKEND=redis.

`)
}
