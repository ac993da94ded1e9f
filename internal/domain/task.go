package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a task kind name is not recognised.
var ErrUnknownKind = errors.New("unknown task kind")

// TaskKind identifies which external collection a task drives.
type TaskKind int

const (
	// KindQuoteSnapshot collects live quotes once, bypassing the schedule.
	KindQuoteSnapshot TaskKind = iota
	// KindQuotePeriodic collects live quotes on every eligible cycle.
	KindQuotePeriodic
	// KindHistoricalExport exports a timestamped historical file per run.
	KindHistoricalExport
	// KindIndicatorPeriodic refreshes the per-category indicator file on every eligible cycle.
	KindIndicatorPeriodic
	// KindIndicatorSnapshot refreshes the per-category indicator file once.
	KindIndicatorSnapshot
)

var kindNames = map[TaskKind]string{
	KindQuoteSnapshot:     "cotacoes-agora",
	KindQuotePeriodic:     "cotacoes",
	KindHistoricalExport:  "historico",
	KindIndicatorPeriodic: "indicadores",
	KindIndicatorSnapshot: "indicadores-agora",
}

// String returns the command name of the kind.
func (k TaskKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TaskKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k TaskKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsSnapshot reports whether the kind runs exactly once with force=true.
func (k TaskKind) IsSnapshot() bool {
	return k == KindQuoteSnapshot || k == KindIndicatorSnapshot
}

// IsQuote reports whether the kind collects live quotes.
func (k TaskKind) IsQuote() bool {
	return k == KindQuoteSnapshot || k == KindQuotePeriodic
}

// IsIndicator reports whether the kind refreshes indicator files.
func (k TaskKind) IsIndicator() bool {
	return k == KindIndicatorPeriodic || k == KindIndicatorSnapshot
}

// ParseTaskKind resolves a command name into a TaskKind.
func ParseTaskKind(name string) (TaskKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// TaskPayload is the per-task data carried alongside the kind.
type TaskPayload struct {
	// Category is the asset grouping tag (e.g. "acao", "fundo").
	Category string
	// Codes are passed to the external program in this order.
	Codes []string
}

// TaskDescriptor identifies one schedulable unit.
type TaskDescriptor struct {
	Kind    TaskKind
	Payload TaskPayload
}

// NewTask builds a descriptor. The codes slice is copied so later edits to
// the caller's slice never leak into a running loop.
func NewTask(kind TaskKind, category string, codes []string) TaskDescriptor {
	copied := make([]string, len(codes))
	copy(copied, codes)
	return TaskDescriptor{
		Kind: kind,
		Payload: TaskPayload{
			Category: category,
			Codes:    copied,
		},
	}
}

// Label is the tag used in log lines for this task.
func (t TaskDescriptor) Label() string {
	if t.Payload.Category == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + ":" + t.Payload.Category
}
