package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a periodic run would start now, without launching",
	Args:  cobra.NoArgs,
	RunE:  statusRun,
}

func statusRun(cmd *cobra.Command, args []string) error {
	a := loadApp(cmd)
	decision := a.newRunner().Decide(false)
	loc := a.runner.Location()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "NOW\t%s\n", time.Now().In(loc).Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "TIMEZONE\t%s\n", loc)
	_, _ = fmt.Fprintf(w, "DATE\t%s\n", decision.Date)
	_, _ = fmt.Fprintf(w, "HOUR\t%d\n", decision.Hour)
	_, _ = fmt.Fprintf(w, "WINDOW\t%s\n", decision.Window)
	_, _ = fmt.Fprintf(w, "BUSINESS DAY\t%t\n", decision.BusinessDay)
	_, _ = fmt.Fprintf(w, "IN WINDOW\t%t\n", decision.InWindow)
	_, _ = fmt.Fprintf(w, "WOULD RUN\t%t\n", decision.Run)

	for _, kind := range []domain.TaskKind{domain.KindQuotePeriodic, domain.KindHistoricalExport, domain.KindIndicatorPeriodic} {
		_, _ = fmt.Fprintf(w, "SCHEDULE %s\t%s\n", kind, a.schedule(kind).Spec)
	}

	return w.Flush()
}
