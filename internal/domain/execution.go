package domain

import "time"

// DateLayout is the canonical date form used for holidays and log lines.
const DateLayout = "2006-01-02"

// ExecutionContext is the wall-clock moment a decision is evaluated at,
// expressed in the market's time zone.
type ExecutionContext struct {
	Now time.Time
}

// NewExecutionContext converts t into loc. A nil loc keeps t's own zone.
func NewExecutionContext(t time.Time, loc *time.Location) ExecutionContext {
	if loc != nil {
		t = t.In(loc)
	}
	return ExecutionContext{Now: t}
}

// Date returns midnight of the current calendar day in the context's zone.
func (c ExecutionContext) Date() time.Time {
	y, m, d := c.Now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Now.Location())
}

// DateString returns the current date as YYYY-MM-DD.
func (c ExecutionContext) DateString() string {
	return c.Now.Format(DateLayout)
}

// Hour returns the hour of day, 0-23.
func (c ExecutionContext) Hour() int {
	return c.Now.Hour()
}
