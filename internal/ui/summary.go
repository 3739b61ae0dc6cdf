package ui

import (
	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show course budgets and pool usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			PrintSummary(cmd.OutOrStdout(), summary.Summarize(b.store.Snapshot(), b.store.Grid()))
			return nil
		},
	}
}
