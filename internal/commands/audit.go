package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log, newest first (admin only)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		if _, err := adminSession(cmd); err != nil {
			return err
		}
		entries, err := application.Audit.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No audit entries.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		fmt.Fprintf(out, "%-24s %-16s %-15s %s\n", "TIMESTAMP", "USERNAME", "ACTION", "DETAILS")
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for _, e := range entries {
			fmt.Fprintf(out, "%-24s %-16s %-15s %s\n", e.Timestamp, e.Username, e.Action, e.Details)
		}
		return nil
	}),
}

func init() {
	auditCmd.Flags().IntP("limit", "n", 0, "Show only the newest n entries")
}
