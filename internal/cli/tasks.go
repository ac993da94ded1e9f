package cli

import (
	"github.com/aristath/radar-runner/internal/domain"
	"github.com/spf13/cobra"
)

var quotesNowCmd = &cobra.Command{
	Use:   "cotacoes-agora",
	Short: "Collect live quotes once, ignoring the schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp(cmd)
		return a.runTask(a.quotesTask(domain.KindQuoteSnapshot))
	},
}

var quotesCmd = &cobra.Command{
	Use:   "cotacoes",
	Short: "Collect live quotes periodically inside the configured window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp(cmd)
		return a.runTask(a.quotesTask(domain.KindQuotePeriodic))
	},
}

var historicalCmd = &cobra.Command{
	Use:       "historico <categoria>",
	Short:     "Export historical data periodically (acao, fundo or a configured category)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"acao", "fundo"},
	RunE:      categoryRunE(domain.KindHistoricalExport),
}

var indicatorsCmd = &cobra.Command{
	Use:   "indicadores <categoria>",
	Short: "Refresh a category's indicator file periodically",
	Args:  cobra.ExactArgs(1),
	RunE:  categoryRunE(domain.KindIndicatorPeriodic),
}

var indicatorsNowCmd = &cobra.Command{
	Use:   "indicadores-agora <categoria>",
	Short: "Refresh a category's indicator file once, ignoring the schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  categoryRunE(domain.KindIndicatorSnapshot),
}

func categoryRunE(kind domain.TaskKind) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := loadApp(cmd)
		task, err := a.categoryTask(kind, args[0])
		if err != nil {
			return err
		}
		return a.runTask(task)
	}
}
