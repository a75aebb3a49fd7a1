package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/models"
)

func newThemeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					_, err = sess.ToggleTheme()
				case string(models.ThemeDark), string(models.ThemeLight):
					err = sess.SetTheme(models.Theme(args[0]))
				default:
					err = fmt.Errorf("unknown theme %q (want dark, light or toggle)", args[0])
				}
				if err != nil {
					return err
				}
			}
			printf(cmd.OutOrStdout(), "%s\n", sess.Snapshot().Theme)
			return nil
		},
	}
}
