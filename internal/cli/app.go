package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/radar-runner/internal/config"
	"github.com/aristath/radar-runner/internal/domain"
	"github.com/aristath/radar-runner/internal/invocation"
	"github.com/aristath/radar-runner/internal/launcher"
	"github.com/aristath/radar-runner/internal/scheduler"
	"github.com/aristath/radar-runner/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles everything a subcommand needs, loaded once per process.
type app struct {
	cfg    *config.Config
	runner config.RunnerConfig
	log    zerolog.Logger
}

// loadApp resolves configuration and builds the logger. Flags set on the
// command line take precedence over the environment.
func loadApp(cmd *cobra.Command) *app {
	cfg := config.Load()
	if cfgFile != "" {
		cfg.ConfigFile = cfgFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("pretty") {
		cfg.LogPretty = logPretty
	}
	if program != "" {
		cfg.Program = program
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: cmd.ErrOrStderr(),
	})
	logger.SetGlobalLogger(log)

	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	runnerCfg := config.NewProvider(cfg.ConfigFile, log).Load(time.Now())
	if cfg.Program != "" {
		runnerCfg.Program = cfg.Program
	}

	return &app{
		cfg:    cfg,
		runner: runnerCfg,
		log:    log,
	}
}

// newRunner wires the scheduler for this process.
func (a *app) newRunner() *scheduler.Runner {
	settings := scheduler.Settings{
		Holidays: a.runner.HolidaySet(),
		Window:   a.runner.Window(),
		Location: a.runner.Location(),
	}
	builder := invocation.NewBuilder(a.runner.Program, a.cfg.DataDir)

	return scheduler.New(settings, builder, launcher.New(a.log), a.log,
		scheduler.WithDirMaker(config.EnsureDir),
	)
}

// schedule resolves the periodic schedule of kind, logging a rejected cron
// expression and falling back to the configured frequency.
func (a *app) schedule(kind domain.TaskKind) scheduler.Schedule {
	var expr string
	var fallback time.Duration

	switch {
	case kind.IsQuote():
		expr, fallback = a.runner.QuoteSchedule, a.runner.QuoteInterval()
	case kind.IsIndicator():
		expr, fallback = a.runner.IndicatorSchedule, a.runner.IndicatorInterval()
	default:
		expr, fallback = a.runner.HistoricalSchedule, a.runner.HistoricalInterval()
	}

	s, err := scheduler.ParseSchedule(expr, fallback)
	if err != nil {
		a.log.Warn().Err(err).Dur("fallback", fallback).Msg("Ignoring schedule, using fixed frequency")
	}
	return s
}

// categoryTask builds the task for a category argument.
func (a *app) categoryTask(kind domain.TaskKind, category string) (domain.TaskDescriptor, error) {
	codes, ok := a.runner.CodesFor(category)
	if !ok || category == config.CategoryQuotes {
		return domain.TaskDescriptor{}, fmt.Errorf("unknown category %q (available: %v)", category, a.runner.CategoryNames())
	}
	return domain.NewTask(kind, category, codes), nil
}

// quotesTask builds the live-quote task.
func (a *app) quotesTask(kind domain.TaskKind) domain.TaskDescriptor {
	return domain.NewTask(kind, config.CategoryQuotes, a.runner.QuoteCodes)
}

// runTask runs task once or forever depending on its kind.
func (a *app) runTask(task domain.TaskDescriptor) error {
	runner := a.newRunner()

	if task.Kind.IsSnapshot() {
		runner.RunOnce(context.Background(), task)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.RunPeriodic(ctx, task, a.schedule(task.Kind)); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
