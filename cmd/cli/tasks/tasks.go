package tasks

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crucial707/todo-api/cmd/cli/client"
	"github.com/crucial707/todo-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     int       `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage your tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		createTaskCmd(),
		updateTaskCmd(),
		deleteTaskCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			path := "/tasks"
			if status != "" {
				path += "?" + url.Values{"status": {status}}.Encode()
			}

			var list []task
			if err := c.Do(cmd.Context(), http.MethodGet, path, nil, &list); err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}

			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]any, 0, len(list))
			for _, t := range list {
				rows = append(rows, []any{t.ID, t.Title, t.Status, t.UpdatedAt.Format(time.DateTime)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Status", "Updated"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status (pending, in_progress, done)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createTaskCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var created task
			payload := map[string]string{"title": title, "description": description}
			if err := c.Do(cmd.Context(), http.MethodPost, "/tasks", payload, &created); err != nil {
				return fmt.Errorf("create task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s [%s]\n", created.ID, created.Title, created.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.MarkFlagRequired("title")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateTaskCmd() *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task's title, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			// Only flags the user actually set go into the patch.
			patch := map[string]string{}
			if cmd.Flags().Changed("title") {
				patch["title"] = title
			}
			if cmd.Flags().Changed("description") {
				patch["description"] = description
			}
			if cmd.Flags().Changed("status") {
				patch["status"] = status
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass --title, --description or --status")
			}

			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var updated task
			if err := c.Do(cmd.Context(), http.MethodPut, "/tasks/"+strconv.Itoa(id), patch, &updated); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d: %s [%s]\n", updated.ID, updated.Title, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status (pending, in_progress, done)")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			if err := c.Do(cmd.Context(), http.MethodDelete, "/tasks/"+strconv.Itoa(id), nil, nil); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
}
