package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/summary"
)

func (a *App) poolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Manage pools",
		Long: `Add, list and edit the pools sessions are scheduled on.

Pools are referenced by their number in "poolboard pool list", their id or
their title.`,
	}
	cmd.AddCommand(
		a.poolAddCmd(),
		a.poolListCmd(),
		a.poolRemoveCmd(),
		a.poolDaysCmd(),
		a.poolHoursCmd(),
		a.poolMoveCmd(),
		a.poolReorderCmd(),
	)
	return cmd
}

func (a *App) poolAddCmd() *cobra.Command {
	var (
		days  string
		hours string
	)
	cmd := &cobra.Command{
		Use:   "add <title> [location]",
		Short: "Add a pool",
		Long: `Add a pool with its active days and opening hours.

Examples:
  poolboard pool add "Main Pool" "Sports Centre" --days mon,wed,fri
  poolboard pool add Lido --days sat,sun --hours 9-13`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}

			form := forms.Pool{Title: args[0]}
			if len(args) > 1 {
				form.Location = args[1]
			}
			if form.Days, err = schedule.ParseWeekdays(days); err != nil {
				return err
			}
			g := b.store.Grid()
			form.StartHour, form.EndHour = g.DefaultStartHour, g.DefaultEndHour
			if hours != "" {
				if form.StartHour, form.EndHour, err = clock.ParseHourRange(hours); err != nil {
					return err
				}
			}
			if err := b.validator.Check(form); err != nil {
				return err
			}

			id := b.store.AddPool(form.Title, form.Location, form.Days)
			if hours != "" {
				b.store.UpdatePoolTimeRange(id, form.StartHour, form.EndHour)
			}
			if err := b.save(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added pool %s (%s, %s)\n",
				formatPool(form.Title), formatDays(form.Days), clock.Range(form.StartHour*60, form.EndHour*60))
			return nil
		},
	}
	cmd.Flags().StringVar(&days, "days", "mon,tue,wed,thu,fri", "Active days, comma separated")
	cmd.Flags().StringVar(&hours, "hours", "", "Opening hours as START-END, e.g. 8-18")
	return cmd
}

func (a *App) poolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pools",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			st := b.store.Snapshot()
			if len(st.Pools) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted("No pools. Add one with: poolboard pool add <title> --days mon,wed"))
				return nil
			}
			PrintPools(cmd.OutOrStdout(), st, summary.Summarize(st, b.store.Grid()), b.store.Grid())
			return nil
		},
	}
}

func (a *App) poolRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <pool>",
		Aliases: []string{"remove"},
		Short:   "Remove a pool and its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			p, err := b.pool(args[0])
			if err != nil {
				return err
			}
			removed := 0
			for _, se := range b.store.Sessions() {
				if se.PoolID == p.ID {
					removed++
				}
			}
			b.store.RemovePool(p.ID)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed pool %s and %d sessions\n", formatPool(p.Title), removed)
			return nil
		},
	}
}

func (a *App) poolDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <pool> <days>",
		Short: "Set the active days of a pool",
		Long: `Replace the active days of a pool.

Sessions on a day that is no longer active are kept and show up again
when the day is re-enabled.

Example:
  poolboard pool days 1 mon,tue,thu`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			p, err := b.pool(args[0])
			if err != nil {
				return err
			}
			days, err := schedule.ParseWeekdays(args[1])
			if err != nil {
				return err
			}
			start, end := p.HourRange(b.store.Grid())
			if err := b.validator.Check(forms.Pool{Title: p.Title, Location: p.Location, Days: days, StartHour: start, EndHour: end}); err != nil {
				return err
			}
			b.store.UpdatePoolDays(p.ID, days)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now runs on %s\n", formatPool(p.Title), formatDays(days))
			return nil
		},
	}
}

func (a *App) poolHoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hours <pool> <START-END>",
		Short: "Set the opening hours of a pool",
		Long: `Set the hour range shown for a pool.

Example:
  poolboard pool hours 1 7-21`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			p, err := b.pool(args[0])
			if err != nil {
				return err
			}
			start, end, err := clock.ParseHourRange(args[1])
			if err != nil {
				return err
			}
			if err := b.validator.Check(forms.Hours{StartHour: start, EndHour: end}); err != nil {
				return err
			}
			b.store.UpdatePoolTimeRange(p.ID, start, end)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is open %s\n", formatPool(p.Title), clock.Range(start*60, end*60))
			return nil
		},
	}
}

func (a *App) poolMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <pool> <x> <y>",
		Short: "Move a pool on the canvas",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			p, err := b.pool(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}
			b.store.UpdatePoolPosition(p.ID, x, y)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved pool %s to (%g, %g)\n", formatPool(p.Title), x, y)
			return nil
		},
	}
}

func (a *App) poolReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <pool> <over>",
		Short: "Move a pool to the position of another in the list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			active, err := b.pool(args[0])
			if err != nil {
				return err
			}
			over, err := b.pool(args[1])
			if err != nil {
				return err
			}
			b.store.ReorderPools(active.ID, over.ID)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n",
				formatPool(active.Title), b.store.PoolIndex(active.ID)+1)
			return nil
		},
	}
}
