package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
	"github.com/aristath/radar-runner/internal/launcher"
	"github.com/aristath/radar-runner/internal/modules/market_hours"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Settings are the read-only calendar inputs shared by every cycle.
type Settings struct {
	Holidays market_hours.HolidaySet
	Window   market_hours.Window
	Location *time.Location
}

// Builder turns a task into an invocation at a given moment.
type Builder interface {
	Build(task domain.TaskDescriptor, ec domain.ExecutionContext) domain.Invocation
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Sleeper blocks for d or until ctx is done, returning ctx's error in the
// latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// DirMaker creates a directory and its parents; an existing directory is success.
type DirMaker func(dir string) error

// Sleep is the real Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CycleReport describes what one cycle decided and did.
type CycleReport struct {
	ID         string
	Task       domain.TaskDescriptor
	Decision   market_hours.Decision
	Invocation *domain.Invocation
	Result     launcher.Result
	Err        error
}

// Launched reports whether the cycle started (or tried to start) the program.
func (c CycleReport) Launched() bool {
	return c.Invocation != nil
}

// Runner drives one task: one-shot or periodic. It is not safe for
// concurrent use; a process runs a single loop.
type Runner struct {
	settings Settings
	builder  Builder
	launcher launcher.Launcher
	now      Clock
	sleep    Sleeper
	mkdir    DirMaker
	log      zerolog.Logger
}

// Option customises a Runner.
type Option func(*Runner)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.now = c }
}

// WithSleeper replaces the blocking sleep between cycles.
func WithSleeper(s Sleeper) Option {
	return func(r *Runner) { r.sleep = s }
}

// WithDirMaker replaces directory creation for output paths.
func WithDirMaker(m DirMaker) Option {
	return func(r *Runner) { r.mkdir = m }
}

// New creates a Runner.
func New(settings Settings, builder Builder, l launcher.Launcher, log zerolog.Logger, opts ...Option) *Runner {
	if settings.Location == nil {
		settings.Location = time.Local
	}

	r := &Runner{
		settings: settings,
		builder:  builder,
		launcher: l,
		now:      time.Now,
		sleep:    Sleep,
		mkdir:    mkdirAll,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Decide evaluates the execution decision for the current moment without
// launching anything.
func (r *Runner) Decide(force bool) market_hours.Decision {
	ec := domain.NewExecutionContext(r.now(), r.settings.Location)
	return market_hours.Evaluate(force, ec.Date(), ec.Hour(), r.settings.Holidays, r.settings.Window)
}

// Cycle runs one decision and, when it allows, one launch. Failures are
// logged and reported, never returned: the caller's loop always continues.
func (r *Runner) Cycle(ctx context.Context, task domain.TaskDescriptor, force bool) CycleReport {
	ec := domain.NewExecutionContext(r.now(), r.settings.Location)
	report := CycleReport{
		ID:       uuid.NewString(),
		Task:     task,
		Decision: market_hours.Evaluate(force, ec.Date(), ec.Hour(), r.settings.Holidays, r.settings.Window),
	}

	log := r.log.With().
		Str("cycle_id", report.ID).
		Str("task", task.Label()).
		Logger()

	log.Info().
		Str("date", report.Decision.Date).
		Int("hour", report.Decision.Hour).
		Str("window", report.Decision.Window.String()).
		Bool("business_day", report.Decision.BusinessDay).
		Bool("in_window", report.Decision.InWindow).
		Bool("forced", report.Decision.Forced).
		Bool("should_run", report.Decision.Run).
		Msg("Execution decision")

	if !report.Decision.Run {
		log.Info().
			Str("window", report.Decision.Window.String()).
			Msg("Outside the window or not a business day, waiting for the next window")
		return report
	}

	inv := r.builder.Build(task, ec)
	report.Invocation = &inv

	if len(task.Payload.Codes) == 0 {
		log.Warn().Str("category", task.Payload.Category).Msg("No asset codes configured, launching without codes")
	}

	if inv.OutputPath != "" {
		if err := r.mkdir(filepath.Dir(inv.OutputPath)); err != nil {
			log.Warn().Err(err).Str("output", inv.OutputPath).Msg("Failed to create output directory")
		}
	}

	log.Info().
		Str("command", inv.String()).
		Str("output", inv.OutputPath).
		Msg("Starting external program")

	result, err := r.launcher.Launch(ctx, inv)
	report.Result = result
	report.Err = err

	switch {
	case err != nil:
		log.Error().Err(err).Str("program", inv.Program).Msg("Failed to run external program")
	case !result.Success():
		log.Warn().
			Int("exit_code", result.ExitCode).
			Dur("duration", result.Duration).
			Msg("External program finished with failure")
	default:
		log.Info().
			Int("exit_code", result.ExitCode).
			Dur("duration", result.Duration).
			Msg("External program finished")
	}

	return report
}

// RunOnce runs a single forced cycle and returns when the program exits.
func (r *Runner) RunOnce(ctx context.Context, task domain.TaskDescriptor) CycleReport {
	r.log.Info().
		Str("task", task.Label()).
		Int("codes", len(task.Payload.Codes)).
		Msg("Running once, bypassing schedule")

	return r.Cycle(ctx, task, true)
}

// RunPeriodic repeats decision, launch and sleep until ctx is done. Missed
// windows are not backfilled. It returns ctx's error on stop.
func (r *Runner) RunPeriodic(ctx context.Context, task domain.TaskDescriptor, schedule Schedule) error {
	if schedule.Schedule == nil {
		return fmt.Errorf("no schedule for task %s", task.Label())
	}

	r.log.Info().
		Str("task", task.Label()).
		Int("codes", len(task.Payload.Codes)).
		Str("schedule", schedule.Spec).
		Str("window", r.settings.Window.String()).
		Msg("Starting periodic task")

	for {
		r.Cycle(ctx, task, false)

		now := r.now().In(r.settings.Location)
		next := schedule.Next(now)
		if next.IsZero() {
			return fmt.Errorf("schedule %q has no next activation after %s", schedule.Spec, now.Format(time.RFC3339))
		}
		wait := next.Sub(now)

		r.log.Info().
			Str("task", task.Label()).
			Time("next_run", next).
			Dur("wait", wait).
			Msg("Waiting for next cycle")

		if err := r.sleep(ctx, wait); err != nil {
			r.log.Info().Str("task", task.Label()).Msg("Scheduler stopped")
			return err
		}
	}
}

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
