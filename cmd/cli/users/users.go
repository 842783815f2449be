package users

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/todo-api/cmd/cli/client"
	"github.com/crucial707/todo-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type user struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Browse registered users",
	}
	usersCmd.AddCommand(listUsersCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var list []user
			if err := c.Do(cmd.Context(), http.MethodGet, "/users", nil, &list); err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]any, 0, len(list))
			for _, u := range list {
				rows = append(rows, []any{u.ID, u.Name, u.Email, u.CreatedAt.Format(time.DateTime)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}
