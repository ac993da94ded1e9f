package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule computes when the next periodic cycle starts.
type Schedule struct {
	cron.Schedule
	// Spec is the human-readable form used in log lines.
	Spec string
}

// Interval returns a schedule that waits a constant d after each cycle.
// Delays are rounded to whole seconds, with a one second minimum.
func Interval(d time.Duration) Schedule {
	return Schedule{
		Schedule: cron.Every(d),
		Spec:     "@every " + d.String(),
	}
}

// ParseSchedule parses a standard 5-field cron expression or descriptor
// ("@hourly", "@every 10m"). An empty expression yields Interval(fallback).
// An invalid one, or one that can never fire (e.g. "0 0 30 2 *"), yields
// Interval(fallback) together with the error.
func ParseSchedule(expr string, fallback time.Duration) (Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Interval(fallback), nil
	}

	parsed, err := cron.ParseStandard(expr)
	if err != nil {
		return Interval(fallback), fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	if parsed.Next(time.Now()).IsZero() {
		return Interval(fallback), fmt.Errorf("schedule %q never fires", expr)
	}
	return Schedule{Schedule: parsed, Spec: expr}, nil
}
