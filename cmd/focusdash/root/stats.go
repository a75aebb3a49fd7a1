package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/dashboard"
)

type statsDoc struct {
	StudySeconds      int      `json:"studySeconds" yaml:"studySeconds"`
	StudyTime         string   `json:"studyTime" yaml:"studyTime"`
	Completed         int      `json:"completed" yaml:"completed"`
	Total             int      `json:"total" yaml:"total"`
	CompletionRate    int      `json:"completionRate" yaml:"completionRate"`
	ProductivityScore int      `json:"productivityScore" yaml:"productivityScore"`
	Insights          []string `json:"insights" yaml:"insights"`
}

func newStatsCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show today's dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			m := sess.RefreshDashboard()
			if format != "text" {
				doc := statsDoc{
					StudySeconds:      m.StudySeconds,
					StudyTime:         dashboard.FormatStudyTime(m.StudySeconds),
					Completed:         m.Completed,
					Total:             m.Total,
					CompletionRate:    m.CompletionRate,
					ProductivityScore: m.ProductivityScore,
				}
				for _, in := range m.Insights {
					doc.Insights = append(doc.Insights, in.Text)
				}
				return encode(cmd.OutOrStdout(), format, doc)
			}

			out := cmd.OutOrStdout()
			printf(out, "%s\n", headStyle.Render("Today"))
			printf(out, "  Study time          %s\n", dashboard.FormatStudyTime(m.StudySeconds))
			printf(out, "  Tasks completed     %d/%d\n", m.Completed, m.Total)
			printf(out, "  Completion rate     %d%%\n", m.CompletionRate)
			printf(out, "  Productivity score  %d/100\n", m.ProductivityScore)
			printf(out, "\n%s\n", headStyle.Render("Insights"))
			for _, in := range m.Insights {
				style := dimStyle
				if in.Achieved {
					style = okStyle
				}
				printf(out, "  %s\n", style.Render(in.Text))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", fmt.Sprintf("text|%s|%s", formatJSON, formatYAML))
	return cmd
}
