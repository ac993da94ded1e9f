package market_hours

import "fmt"

// Window is the inclusive hour range in which periodic runs are allowed.
// Start > End is accepted and yields a window that never opens.
type Window struct {
	Start int
	End   int
}

// InWindow reports whether start <= hour <= end. Both bounds are inclusive so
// the whole end hour is covered.
func InWindow(hour, start, end int) bool {
	return start <= hour && hour <= end
}

// Contains reports whether hour falls inside the window.
func (w Window) Contains(hour int) bool {
	return InWindow(hour, w.Start, w.End)
}

// Degenerate reports whether the window can never open.
func (w Window) Degenerate() bool {
	return w.Start > w.End
}

// String renders the window as "start..end".
func (w Window) String() string {
	return fmt.Sprintf("%d..%d", w.Start, w.End)
}
