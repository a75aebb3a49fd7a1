package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgienger/focusdash/internal/dashboard"
	"github.com/tgienger/focusdash/internal/timer"
)

func newTimerCmd(opts *options) *cobra.Command {
	var mode string
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run one countdown in the terminal",
		Long:  "Runs a single countdown without the TUI. Study seconds are recorded as they elapse. Interrupt to pause and exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := timer.ParseMode(mode)
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.ChangeMode(m)
			out := cmd.OutOrStdout()
			engine := sess.Timer()
			engine.Subscribe(func(ev timer.Event) {
				switch ev.Kind {
				case timer.EventTick:
					printf(out, "\r%s %s ", headStyle.Render(ev.State.Mode.Label()), dashboard.FormatClock(ev.State.Remaining))
				case timer.EventCompleted:
					printf(out, "\r%s %s\n", headStyle.Render(ev.State.Mode.Label()), dashboard.FormatClock(0))
					printf(out, "%s\n", okStyle.Render(fmt.Sprintf("%s complete! Up next: %s.", ev.State.Mode.Label(), ev.Next.Label())))
				}
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			printf(out, "%s %s ", headStyle.Render(m.Label()), dashboard.FormatClock(m.Duration()))
			err = engine.Run(ctx, every)
			if errors.Is(err, context.Canceled) {
				printf(out, "\n%s %s\n", warnStyle.Render("Paused at"), dashboard.FormatClock(engine.State().Remaining))
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "study", "study|short|long")
	cmd.Flags().DurationVar(&every, "tick", time.Second, "tick interval")
	_ = cmd.Flags().MarkHidden("tick")
	return cmd
}
