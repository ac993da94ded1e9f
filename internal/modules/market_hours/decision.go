package market_hours

import (
	"time"

	"github.com/aristath/radar-runner/internal/domain"
)

// Decision is the outcome of one execution check, with the inputs that led
// to it so callers can log them.
type Decision struct {
	Date        string
	Hour        int
	Window      Window
	Forced      bool
	BusinessDay bool
	InWindow    bool
	Run         bool
}

// Evaluate computes the execution decision for date and hour.
// Run = force || (business day && hour inside window).
func Evaluate(force bool, date time.Time, hour int, holidays HolidaySet, window Window) Decision {
	businessDay := IsBusinessDay(date, holidays)
	inWindow := window.Contains(hour)

	return Decision{
		Date:        date.Format(domain.DateLayout),
		Hour:        hour,
		Window:      window,
		Forced:      force,
		BusinessDay: businessDay,
		InWindow:    inWindow,
		Run:         force || (businessDay && inWindow),
	}
}

// ShouldRun reports whether the collector may run now.
func ShouldRun(force bool, date time.Time, hour int, holidays HolidaySet, window Window) bool {
	return Evaluate(force, date, hour, holidays, window).Run
}
