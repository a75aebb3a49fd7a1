package root

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/config"
	"github.com/tgienger/focusdash/internal/db"
	"github.com/tgienger/focusdash/internal/logging"
	"github.com/tgienger/focusdash/internal/session"
	"github.com/tgienger/focusdash/internal/ui"
)

// options holds the persistent flags shared by every subcommand
type options struct {
	configFile string
	assumeYes  bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "focusdash",
		Short:         "Pomodoro timer, notes, tasks and a daily dashboard",
		Long:          "focusdash is a local-first productivity dashboard. Run it without arguments for the TUI.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/focusdash/config.yaml)")
	pf.String("db", "", "path to the data file")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-file", "", "log file path")
	pf.BoolVarP(&opts.assumeYes, "yes", "y", false, "answer yes to confirmations")

	cmd.AddCommand(
		newNotesCmd(opts),
		newTasksCmd(opts),
		newTimerCmd(opts),
		newStatsCmd(opts),
		newThemeCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on error
func Execute(version string) {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// openStore resolves config, installs logging and opens the data file
func openStore(cmd *cobra.Command, opts *options) (*db.DB, func(), error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	instance, logFile, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	store, err := db.New(cfg.DBPath, db.WithOwner(instance))
	if err != nil {
		_ = logFile.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = logFile.Close()
	}
	return store, cleanup, nil
}

// openSession opens the store and a session rendering to the console
func openSession(cmd *cobra.Command, opts *options) (*session.Session, func(), error) {
	store, cleanup, err := openStore(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	view := newConsoleView(cmd.InOrStdin(), cmd.OutOrStdout(), opts.assumeYes)
	sess, err := session.Open(store, view)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return sess, cleanup, nil
}

func runTUI(cmd *cobra.Command, opts *options) error {
	store, cleanup, err := openStore(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := ui.NewApp(store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
