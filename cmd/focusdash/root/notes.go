package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
)

func newNotesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List and edit notes",
	}
	cmd.AddCommand(
		newNotesListCmd(opts),
		newNotesAddCmd(opts),
		newNotesEditCmd(opts),
		newNotesRmCmd(opts),
	)
	return cmd
}

func newNotesListCmd(opts *options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.SetNoteFilter(search)
			notes := sess.Snapshot().Notes
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				printf(out, "%s\n", dimStyle.Render("No notes."))
				return nil
			}
			for _, n := range notes {
				printNote(cmd, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only notes whose title, content or tags contain this text")
	return cmd
}

func newNotesAddCmd(opts *options) *cobra.Command {
	var content, tags string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := sess.SaveNote(strings.Join(args, " "), content, tags)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s %d\n", okStyle.Render("Created note"), n.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "note body")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma separated tags")
	return cmd
}

func newNotesEditCmd(opts *options) *cobra.Command {
	var title, content, tags string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note; omitted fields keep their value",
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

			cur, err := sess.EditNote(id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = cur.Title
			}
			if !cmd.Flags().Changed("content") {
				content = cur.Content
			}
			if !cmd.Flags().Changed("tags") {
				tags = repo.JoinTags(cur.Tags)
			}

			n, err := sess.SaveNote(title, content, tags)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s %d\n", okStyle.Render("Updated note"), n.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new body")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "new comma separated tags")
	return cmd
}

func newNotesRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
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

			deleted, err := sess.DeleteNote(id)
			if err != nil {
				return err
			}
			if deleted {
				printf(cmd.OutOrStdout(), "%s %d\n", okStyle.Render("Deleted note"), id)
			}
			return nil
		},
	}
}

func printNote(cmd *cobra.Command, n models.Note) {
	out := cmd.OutOrStdout()
	printf(out, "%s %s\n", dimStyle.Render(strconv.FormatInt(n.ID, 10)), headStyle.Render(n.Title))
	meta := n.UpdatedAt.Local().Format("Jan 2, 2006 3:04 PM")
	if len(n.Tags) > 0 {
		meta += "  #" + strings.Join(n.Tags, " #")
	}
	printf(out, "  %s\n", dimStyle.Render(meta))
	if n.Content != "" {
		for _, line := range strings.Split(n.Content, "\n") {
			printf(out, "  %s\n", line)
		}
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
