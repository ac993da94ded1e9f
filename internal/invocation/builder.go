// Package invocation maps task descriptors to concrete calls of the external
// collector. The mapping is pure: no filesystem access and no process spawning.
package invocation

import (
	"path/filepath"

	"github.com/aristath/radar-runner/internal/domain"
)

// TimestampLayout names historical export files, e.g. 2025-12-25_14h-30m-05s.
const TimestampLayout = "2006-01-02_15h-04m-05s"

// QuotesFileName is the fixed live-quote output file.
const QuotesFileName = "cotacoes.csv"

// HistoricalDir is the data-dir relative directory of historical exports.
var HistoricalDir = filepath.Join("dados", "historico")

type outputPolicy int

const (
	outputNone outputPolicy = iota
	outputTimestamped
	outputQuotes
	outputPerCategory
)

// protocol describes how one task kind is called on the external program.
type protocol struct {
	subcommand   string
	withCategory bool
	output       outputPolicy
}

var protocols = map[domain.TaskKind]protocol{
	domain.KindQuoteSnapshot:     {subcommand: "cotacoes", output: outputQuotes},
	domain.KindQuotePeriodic:     {subcommand: "cotacoes", output: outputQuotes},
	domain.KindHistoricalExport:  {subcommand: "export", withCategory: true, output: outputTimestamped},
	domain.KindIndicatorPeriodic: {subcommand: "indicadores", withCategory: true, output: outputPerCategory},
	domain.KindIndicatorSnapshot: {subcommand: "indicadores", withCategory: true, output: outputPerCategory},
}

// Builder builds invocations of a single external program.
type Builder struct {
	program string
	dataDir string
}

// NewBuilder creates a builder for program writing under dataDir.
func NewBuilder(program, dataDir string) *Builder {
	return &Builder{
		program: program,
		dataDir: dataDir,
	}
}

// Program returns the external program path.
func (b *Builder) Program() string {
	return b.program
}

// Build resolves task at the moment in ec into an Invocation. Codes are
// appended in order after the subcommand (and category, where the kind takes
// one). An empty code list still yields an invocation.
func (b *Builder) Build(task domain.TaskDescriptor, ec domain.ExecutionContext) domain.Invocation {
	proto, ok := protocols[task.Kind]
	if !ok {
		// Unknown kinds are passed through by name with no output file
		proto = protocol{subcommand: task.Kind.String()}
	}

	args := make([]string, 0, len(task.Payload.Codes)+2)
	args = append(args, proto.subcommand)
	if proto.withCategory {
		args = append(args, task.Payload.Category)
	}
	args = append(args, task.Payload.Codes...)

	return domain.Invocation{
		Program:    b.program,
		Args:       args,
		OutputPath: b.outputPath(proto.output, task.Payload.Category, ec),
	}
}

func (b *Builder) outputPath(policy outputPolicy, category string, ec domain.ExecutionContext) string {
	switch policy {
	case outputTimestamped:
		name := category + "_" + ec.Now.Format(TimestampLayout) + ".csv"
		return filepath.Join(b.dataDir, HistoricalDir, name)
	case outputQuotes:
		return filepath.Join(b.dataDir, QuotesFileName)
	case outputPerCategory:
		return filepath.Join(b.dataDir, category+".csv")
	default:
		return ""
	}
}
