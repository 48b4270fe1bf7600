package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/models"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users (admin only)",
}

var userAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		actor, err := adminSession(cmd)
		if err != nil {
			return err
		}
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		if err := application.Auth.CreateUser(cmd.Context(), actor, args[0], password, models.Role(role)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Created user %s with role %s\n", args[0], role)
		return nil
	}),
}

var userListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		if _, err := adminSession(cmd); err != nil {
			return err
		}
		users, err := application.Auth.Users(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users yet. Use 'tally user add <name> -p <password>' to create one.")
			return nil
		}
		fmt.Fprintf(out, "%-24s %s\n", "USERNAME", "ROLE")
		fmt.Fprintln(out, strings.Repeat("-", 32))
		for _, u := range users {
			fmt.Fprintf(out, "%-24s %s\n", u.Username, u.Role)
		}
		return nil
	}),
}

func init() {
	userAddCmd.Flags().StringP("password", "p", "", "Password for the new user")
	userAddCmd.Flags().StringP("role", "r", string(models.RoleUser), "Role: user|admin")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
}
