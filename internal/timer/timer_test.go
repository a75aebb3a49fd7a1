package timer

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingAccruer struct {
	seconds int
	err     error
}

func (c *countingAccruer) Accrue(s int) error {
	if c.err != nil {
		return c.err
	}
	c.seconds += s
	return nil
}

// runToCompletion ticks a started engine until it completes
func runToCompletion(t *testing.T, e *Engine) Event {
	t.Helper()
	gen := e.Start()
	for i := 0; i <= Study.Duration(); i++ {
		ev, ok, err := e.Tick(gen)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if !ok {
			t.Fatalf("tick %d ignored", i)
		}
		if ev.Kind == EventCompleted {
			return ev
		}
	}
	t.Fatalf("engine never completed")
	return Event{}
}

func TestNewEngineIsIdleStudy(t *testing.T) {
	e := New(nil)
	want := State{Mode: Study, Remaining: 1500}
	if got := e.State(); got != want {
		t.Fatalf("State = %+v, want %+v", got, want)
	}
}

func TestStudyCompletionAdvancesToShortBreak(t *testing.T) {
	acc := &countingAccruer{}
	e := New(acc)
	gen := e.Start()

	var last Event
	for i := 0; i < 1500; i++ {
		ev, ok, err := e.Tick(gen)
		if !ok || err != nil {
			t.Fatalf("tick %d: ok=%v err=%v", i, ok, err)
		}
		last = ev
	}

	if last.Kind != EventCompleted {
		t.Fatalf("1500th tick kind = %v, want completed", last.Kind)
	}
	if last.State.Remaining != 0 || last.State.Running || last.State.Mode != Study {
		t.Fatalf("completed state = %+v", last.State)
	}
	want := State{Mode: ShortBreak, Remaining: 300, Running: false, Sessions: 1}
	if got := e.State(); got != want {
		t.Fatalf("after completion State = %+v, want %+v", got, want)
	}
	if last.Next != ShortBreak {
		t.Fatalf("Next = %v", last.Next)
	}
	if acc.seconds != 1500 {
		t.Fatalf("accrued %d seconds, want 1500", acc.seconds)
	}

	// The completed generation is dead.
	if _, ok, _ := e.Tick(gen); ok {
		t.Fatalf("tick after completion was applied")
	}
}

func TestEveryFourthStudySessionEarnsLongBreak(t *testing.T) {
	e := New(nil)
	var nexts []Mode
	for e.State().Sessions < 8 {
		ev := runToCompletion(t, e)
		if ev.State.Mode == Study {
			nexts = append(nexts, ev.Next)
		} else if ev.Next != Study {
			t.Fatalf("break %v advanced to %v, want study", ev.State.Mode, ev.Next)
		}
	}

	want := []Mode{ShortBreak, ShortBreak, ShortBreak, LongBreak, ShortBreak, ShortBreak, ShortBreak, LongBreak}
	if len(nexts) != len(want) {
		t.Fatalf("got %d study completions", len(nexts))
	}
	for i := range want {
		if nexts[i] != want[i] {
			t.Fatalf("completion %d advanced to %v, want %v", i+1, nexts[i], want[i])
		}
	}
}

func TestBreaksDoNotAccrue(t *testing.T) {
	acc := &countingAccruer{}
	e := New(acc)
	e.ChangeMode(ShortBreak)
	ev := runToCompletion(t, e)

	if acc.seconds != 0 {
		t.Fatalf("break accrued %d seconds", acc.seconds)
	}
	if ev.Next != Study || e.State().Sessions != 0 {
		t.Fatalf("after break: next=%v sessions=%d", ev.Next, e.State().Sessions)
	}
}

func TestPausePreservesRemaining(t *testing.T) {
	e := New(nil)
	gen := e.Start()
	for i := 0; i < 10; i++ {
		_, _, _ = e.Tick(gen)
	}
	e.Pause()

	if got := e.State(); got.Running || got.Remaining != 1490 {
		t.Fatalf("after pause State = %+v", got)
	}
	if _, ok, _ := e.Tick(gen); ok {
		t.Fatalf("stale tick applied after pause")
	}
	if e.State().Remaining != 1490 {
		t.Fatalf("stale tick changed remaining")
	}

	gen = e.Start()
	if _, ok, _ := e.Tick(gen); !ok || e.State().Remaining != 1489 {
		t.Fatalf("resume did not continue from 1490: %+v", e.State())
	}
}

func TestStaleTickAfterModeChangeIsIgnored(t *testing.T) {
	e := New(nil)
	oldGen := e.Start()
	_, _, _ = e.Tick(oldGen)

	e.ChangeMode(LongBreak)
	newGen := e.Start()
	if _, ok, _ := e.Tick(oldGen); ok {
		t.Fatalf("queued tick from previous mode was applied")
	}
	if got := e.State().Remaining; got != 900 {
		t.Fatalf("remaining = %d, want 900", got)
	}
	if _, ok, _ := e.Tick(newGen); !ok || e.State().Remaining != 899 {
		t.Fatalf("current tick not applied: %+v", e.State())
	}
}

func TestResetRefillsCurrentMode(t *testing.T) {
	e := New(nil)
	e.ChangeMode(ShortBreak)
	gen := e.Start()
	_, _, _ = e.Tick(gen)
	e.Reset()

	want := State{Mode: ShortBreak, Remaining: 300}
	if got := e.State(); got != want {
		t.Fatalf("after reset State = %+v, want %+v", got, want)
	}
	if _, ok, _ := e.Tick(gen); ok {
		t.Fatalf("tick applied after reset")
	}
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	e := New(nil)
	a := e.Start()
	b := e.Start()
	if a != b {
		t.Fatalf("Start while running changed generation %d -> %d", a, b)
	}
	if e.Toggle() || e.State().Running {
		t.Fatalf("Toggle did not pause")
	}
	if !e.Toggle() || !e.State().Running {
		t.Fatalf("Toggle did not start")
	}
}

func TestAccrualFailureStillTicks(t *testing.T) {
	e := New(&countingAccruer{err: errors.New("disk full")})
	gen := e.Start()

	_, ok, err := e.Tick(gen)
	if !ok || err == nil {
		t.Fatalf("Tick ok=%v err=%v, want applied with error", ok, err)
	}
	if e.State().Remaining != 1499 {
		t.Fatalf("remaining = %d", e.State().Remaining)
	}
}

func TestSubscribersSeeEvents(t *testing.T) {
	e := New(nil)
	e.ChangeMode(ShortBreak)
	var ticks, completions int
	e.Subscribe(func(ev Event) {
		switch ev.Kind {
		case EventTick:
			ticks++
		case EventCompleted:
			completions++
		}
	})
	runToCompletion(t, e)

	if ticks != 299 || completions != 1 {
		t.Fatalf("ticks=%d completions=%d", ticks, completions)
	}
}

func TestProgress(t *testing.T) {
	e := New(nil)
	if e.Progress() != 0 {
		t.Fatalf("initial progress = %v", e.Progress())
	}
	gen := e.Start()
	for i := 0; i < 750; i++ {
		_, _, _ = e.Tick(gen)
	}
	if e.Progress() != 0.5 {
		t.Fatalf("progress = %v, want 0.5", e.Progress())
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Fatalf("ParseMode(nap) succeeded")
	}
}

func TestRunCompletesShortCountdown(t *testing.T) {
	e := New(nil)
	e.ChangeMode(ShortBreak)
	var done bool
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventCompleted {
			done = true
		}
	})

	if err := e.Run(context.Background(), time.Microsecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !done || e.State().Mode != Study || e.State().Running {
		t.Fatalf("after Run State = %+v done=%v", e.State(), done)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.Run(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if e.State().Running || e.State().Remaining != 1500 {
		t.Fatalf("after cancel State = %+v", e.State())
	}
}

func TestRunRejectsNonPositiveInterval(t *testing.T) {
	for _, every := range []time.Duration{0, -time.Second} {
		e := New(nil)
		if err := e.Run(context.Background(), every); err == nil {
			t.Fatalf("Run(%s) accepted", every)
		}
		if e.State().Running {
			t.Fatalf("Run(%s) left the engine running", every)
		}
	}
}
