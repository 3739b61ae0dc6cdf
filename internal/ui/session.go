package ui

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/placement"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

func (a *App) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Place, move and resize sessions",
		Long: `Work with scheduled sessions from the shell.

Sessions are referenced by the id prefix shown in "poolboard session list".
Placing and moving snaps to 15 minutes and keeps the block inside the pool's
opening hours, the same as dragging on the board.`,
	}
	cmd.AddCommand(
		a.sessionAddCmd(),
		a.sessionListCmd(),
		a.sessionMoveCmd(),
		a.sessionResizeCmd(),
		a.sessionRemoveCmd(),
	)
	return cmd
}

func (a *App) sessionAddCmd() *cobra.Command {
	var end string
	cmd := &cobra.Command{
		Use:   "add <course> <pool> <day> <HH:MM>",
		Short: "Schedule a course block on a pool day",
		Long: `Schedule a session starting at the given time.

Without --end the block has the default session length and is placed like a
drop from the bank. With --end both times are snapped to 15 minutes and the
block is kept inside the pool's opening hours.

Examples:
  poolboard session add Bronze "Main Pool" mon 09:00
  poolboard session add 1 1 wed 17:30 --end 19:00`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			c, err := b.course(args[0])
			if err != nil {
				return err
			}
			p, err := b.pool(args[1])
			if err != nil {
				return err
			}
			day, err := schedule.ParseWeekday(args[2])
			if err != nil {
				return err
			}
			if !p.HasDay(day) {
				return fmt.Errorf("%s does not run on %s", p.Title, day)
			}

			var out placement.Outcome
			if end != "" {
				form, err := forms.SessionFromText(c.ID, p.ID, args[2], args[3], end)
				if err != nil {
					return err
				}
				if err := b.validator.Check(form); err != nil {
					return err
				}
				from, to := snapInterval(p, b.store.Grid(), form.Start, form.End)
				id := b.store.CreateSession(form.CourseID, form.PoolID, form.Day, from, to)
				out = placement.Outcome{Action: placement.ActionCreate, SessionID: id,
					PoolID: p.ID, Day: day, Start: from, End: to}
			} else {
				start, err := clock.Parse(args[3])
				if err != nil {
					return err
				}
				out = b.drop(drag.BankItem(c.ID, a.config.Grid.DefaultSessionMinutes), p, day, start)
			}
			if out.Action != placement.ActionCreate {
				return fmt.Errorf("could not place %s on %s", c.Name, p.Title)
			}
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s %s %s %s\n",
				c.Name, formatPool(p.Title), day.Short(), clock.Range(out.Start, out.End),
				formatMuted("["+shortID(out.SessionID)+"]"))
			return nil
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "End time HH:MM")
	return cmd
}

func (a *App) sessionListCmd() *cobra.Command {
	var (
		poolRef   string
		courseRef string
		dayRef    string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sessions by pool and day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			filter := func(schedule.Session) bool { return true }
			if poolRef != "" {
				p, err := b.pool(poolRef)
				if err != nil {
					return err
				}
				prev := filter
				filter = func(se schedule.Session) bool { return prev(se) && se.PoolID == p.ID }
			}
			if courseRef != "" {
				c, err := b.course(courseRef)
				if err != nil {
					return err
				}
				prev := filter
				filter = func(se schedule.Session) bool { return prev(se) && se.CourseID == c.ID }
			}
			if dayRef != "" {
				d, err := schedule.ParseWeekday(dayRef)
				if err != nil {
					return err
				}
				prev := filter
				filter = func(se schedule.Session) bool { return prev(se) && se.Day == d }
			}

			st := b.store.Snapshot()
			sessions := slices.DeleteFunc(st.Sessions, func(se schedule.Session) bool { return !filter(se) })
			listSessions(cmd.OutOrStdout(), st, sessions, b.store)
			return nil
		},
	}
	cmd.Flags().StringVar(&poolRef, "pool", "", "Only sessions on this pool")
	cmd.Flags().StringVar(&courseRef, "course", "", "Only sessions of this course")
	cmd.Flags().StringVar(&dayRef, "day", "", "Only sessions on this day")
	return cmd
}

// snapInterval snaps a typed interval to 15 minutes and fits it inside the
// pool's hours, keeping the duration where it fits.
func snapInterval(p schedule.Pool, g geometry.Grid, start, end int) (int, int) {
	start = int(geometry.SnapToGrid(float64(start)))
	end = int(geometry.SnapToGrid(float64(end)))
	start, end = placement.ClampInterval(p, g, start, max(end-start, geometry.SnapMinutes))
	_, endHour := p.HourRange(g)
	end = min(end, endHour*60)
	if end <= start {
		end = start + geometry.SnapMinutes
	}
	return start, end
}

// listSessions prints sessions sorted by pool order, day and start time.
func listSessions(w io.Writer, st schedule.State, sessions []schedule.Session, store *schedule.Store) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, formatMuted("No sessions scheduled."))
		return
	}
	slices.SortStableFunc(sessions, func(x, y schedule.Session) int {
		return cmp.Or(
			cmp.Compare(store.PoolIndex(x.PoolID), store.PoolIndex(y.PoolID)),
			cmp.Compare(x.Day.Index(), y.Day.Index()),
			cmp.Compare(x.Start, y.Start),
		)
	})
	PrintSessions(w, st, sessions)
}

func (a *App) sessionMoveCmd() *cobra.Command {
	var (
		poolRef string
		dayRef  string
		start   string
	)
	cmd := &cobra.Command{
		Use:   "move <session>",
		Short: "Move a session to another pool, day or time",
		Long: `Move a session, keeping its duration.

Omitted flags keep the current value.

Example:
  poolboard session move 3f2a --day thu --start 10:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			se, err := b.session(args[0])
			if err != nil {
				return err
			}

			p, err := b.store.Pool(se.PoolID)
			if poolRef != "" {
				p, err = b.pool(poolRef)
			}
			if err != nil {
				return err
			}
			day := se.Day
			if dayRef != "" {
				if day, err = schedule.ParseWeekday(dayRef); err != nil {
					return err
				}
			}
			if !p.HasDay(day) {
				return fmt.Errorf("%s does not run on %s", p.Title, day)
			}
			minute := se.Start
			if start != "" {
				if minute, err = clock.Parse(start); err != nil {
					return err
				}
			}

			out := b.drop(drag.SessionItem(se), p, day, minute)
			if out.Action != placement.ActionMove {
				return fmt.Errorf("could not move session %s", shortID(se.ID))
			}
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved session to %s %s %s\n",
				formatPool(p.Title), day.Short(), clock.Range(out.Start, out.End))
			return nil
		},
	}
	cmd.Flags().StringVar(&poolRef, "pool", "", "Target pool")
	cmd.Flags().StringVar(&dayRef, "day", "", "Target day")
	cmd.Flags().StringVar(&start, "start", "", "Target start time HH:MM")
	return cmd
}

func (a *App) sessionResizeCmd() *cobra.Command {
	var end string
	cmd := &cobra.Command{
		Use:   "resize <session>",
		Short: "Change when a session ends",
		Long: `Move the end of a session, as dragging its bottom edge does.

The end is snapped to 15 minutes and kept after the start and within the
pool's opening hours.

Example:
  poolboard session resize 3f2a --end 11:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			se, err := b.session(args[0])
			if err != nil {
				return err
			}
			minute, err := clock.Parse(end)
			if err != nil {
				return err
			}
			if minute <= se.Start {
				return fmt.Errorf("end %s must be after start %s", clock.Format(minute), clock.Format(se.Start))
			}

			g := b.store.Grid()
			out := b.committer.Resize(se.ID, se.End, g.MinutesToPixels(float64(minute-se.End)), 1)
			if out.Action != placement.ActionResize {
				fmt.Fprintf(cmd.OutOrStdout(), "Session already ends at %s\n", clock.Format(se.End))
				return nil
			}
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session now runs %s\n", clock.Range(out.Start, out.End))
			return nil
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "New end time HH:MM")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *App) sessionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <session>",
		Aliases: []string{"remove"},
		Short:   "Remove a session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			se, err := b.session(args[0])
			if err != nil {
				return err
			}
			b.store.DeleteSession(se.ID)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", shortID(se.ID))
			return nil
		},
	}
}
