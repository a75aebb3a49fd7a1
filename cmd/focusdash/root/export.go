package root

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// exportDoc is every stored key decoded into one document
type exportDoc struct {
	Theme          models.Theme           `json:"theme" yaml:"theme"`
	DailyStudyTime models.StudyTimeRecord `json:"dailyStudyTime" yaml:"dailyStudyTime"`
	Notes          []models.Note          `json:"notes" yaml:"notes"`
	Tasks          []models.Task          `json:"tasks" yaml:"tasks"`
}

func newExportCmd(opts *options) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all stored data as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatYAML)
			}
			store, cleanup, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := collect(store)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return encode(w, format, doc)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "json|yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func collect(store repo.Store) (exportDoc, error) {
	notes, err := repo.OpenNotes(store)
	if err != nil {
		return exportDoc{}, err
	}
	tasks, err := repo.OpenTasks(store)
	if err != nil {
		return exportDoc{}, err
	}
	study, err := repo.OpenStudyTime(store)
	if err != nil {
		return exportDoc{}, err
	}
	themes, err := repo.OpenThemes(store)
	if err != nil {
		return exportDoc{}, err
	}
	return exportDoc{
		Theme:          themes.Get(),
		DailyStudyTime: study.Record(),
		Notes:          notes.List(""),
		Tasks:          tasks.All(),
	}, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
