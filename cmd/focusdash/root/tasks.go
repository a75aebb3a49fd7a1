package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
)

func newTasksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and edit tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(opts),
		newTasksAddCmd(opts),
		newTasksDoneCmd(opts),
		newTasksPriorityCmd(opts),
		newTasksRmCmd(opts),
		newTasksMoveCmd(opts),
	)
	return cmd
}

func newTasksListCmd(opts *options) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := repo.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.SetStatusFilter(filter)
			sess.SetTaskSearch(search)
			snap := sess.Snapshot()
			out := cmd.OutOrStdout()

			printf(out, "%s\n", dimStyle.Render(fmt.Sprintf("%d active, %d completed", snap.Counts.Active, snap.Counts.Completed)))
			if len(snap.Tasks) == 0 {
				printf(out, "%s\n", dimStyle.Render("No tasks."))
				return nil
			}
			for i, t := range snap.Tasks {
				printf(out, "%s\n", formatTask(i+1, t))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "all|active|completed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only tasks containing this text")
	return cmd
}

func newTasksAddCmd(opts *options) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Priority
			if cmd.Flags().Changed("priority") {
				var err error
				if p, err = models.ParsePriority(priority); err != nil {
					return err
				}
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := sess.AddTask(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if p != "" && p != t.Priority {
				if t, err = sess.SetTaskPriority(t.ID, p); err != nil {
					return err
				}
			}
			printf(cmd.OutOrStdout(), "%s %d\n", okStyle.Render("Added task"), t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "low|medium|high")
	return cmd
}

func newTasksDoneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := sess.ToggleTask(id)
			if err != nil {
				return err
			}
			state := "active"
			if t.Completed {
				state = "completed"
			}
			printf(cmd.OutOrStdout(), "%s %d %s\n", okStyle.Render("Task"), t.ID, state)
			return nil
		},
	}
}

func newTasksPriorityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <low|medium|high>",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := sess.SetTaskPriority(id, models.Priority(args[1]))
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s %d %s\n", okStyle.Render("Task"), t.ID, t.Priority)
			return nil
		},
	}
}

func newTasksRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			deleted, err := sess.DeleteTask(id)
			if err != nil {
				return err
			}
			if deleted {
				printf(cmd.OutOrStdout(), "%s %d\n", okStyle.Render("Deleted task"), id)
			}
			return nil
		},
	}
}

func newTasksMoveCmd(opts *options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task between positions as shown by list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := repo.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.SetStatusFilter(filter)
			if err := sess.MoveTask(from, to); err != nil {
				return err
			}
			for i, t := range sess.VisibleTasks() {
				printf(cmd.OutOrStdout(), "%s\n", formatTask(i+1, t))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "positions refer to the list under this filter")
	return cmd
}

// parsePosition converts a 1-based list position to an index
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}

func formatTask(pos int, t models.Task) string {
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = "[x]"
		text = dimStyle.Render(text)
	}
	return fmt.Sprintf("%3d. %s %-6s %s %s", pos, check, t.Priority, text, dimStyle.Render("#"+strconv.FormatInt(t.ID, 10)))
}
