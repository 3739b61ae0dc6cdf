package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/logging"
)

func (a *App) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved board",
		Long: `Delete the saved board. The sample board is loaded on the next start.
Custom colours are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !yes {
				return fmt.Errorf("this deletes every pool, course and session; pass --yes to confirm")
			}
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			if err := b.repo.ResetState(ctx); err != nil {
				return fmt.Errorf("resetting board: %w", err)
			}
			a.board = nil
			fmt.Fprintln(cmd.OutOrStdout(), "Board reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
