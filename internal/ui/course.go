package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/palette"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/summary"
)

func (a *App) courseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses",
		Long: `Add, list and edit courses and their hour budgets.

Courses are referenced by their number in "poolboard course list", their id
or their name.`,
	}
	cmd.AddCommand(
		a.courseAddCmd(),
		a.courseListCmd(),
		a.courseEditCmd(),
		a.courseRemoveCmd(),
	)
	return cmd
}

// resolveColor accepts a hex colour or a 1-based index into the palette
// (built-in entries first, then custom colours).
func (b *board) resolveColor(ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		choices := palette.NewCustom(b.colors).Choices()
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("colour %d out of range 1-%d", n, len(choices))
		}
		return choices[n-1], nil
	}
	return palette.Normalize(ref)
}

func (a *App) courseAddCmd() *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <name> <hours>",
		Short: "Add a course with an hour budget",
		Long: `Add a course to the bank.

Without --color the next palette colour is used. --color accepts a hex value
or a palette number from "poolboard colors list".

Examples:
  poolboard course add Bronze 10
  poolboard course add "Aqua fit" 6.5 --color "#06b6d4"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[1], err)
			}
			form := forms.Course{Name: args[0], TotalHours: hours}
			if color != "" {
				if form.Color, err = b.resolveColor(color); err != nil {
					return err
				}
			}
			if err := b.validator.Check(form); err != nil {
				return err
			}

			id := b.store.AddCourse(form.Name, form.TotalHours, form.Color)
			if err := b.save(ctx); err != nil {
				return err
			}
			c, _ := b.store.Course(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Added course %s %s with %s\n",
				formatSwatch(c.Color), c.Name, clock.Duration(int(hours*60)))
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Hex colour or palette number")
	return cmd
}

func (a *App) courseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List courses and their remaining budget",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			st := b.store.Snapshot()
			if len(st.Courses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted("No courses. Add one with: poolboard course add <name> <hours>"))
				return nil
			}
			PrintCourses(cmd.OutOrStdout(), summary.Summarize(st, b.store.Grid()))
			return nil
		},
	}
}

func (a *App) courseEditCmd() *cobra.Command {
	var (
		name  string
		hours float64
		color string
	)
	cmd := &cobra.Command{
		Use:   "edit <course>",
		Short: "Rename, re-budget or recolour a course",
		Long: `Change a course. Only the given flags are applied.

Lowering the budget below the scheduled time is allowed; the course then
shows as over budget.

Example:
  poolboard course edit Bronze --hours 12 --color 3`,
		Args: cobra.ExactArgs(1),
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

			form := forms.Course{Name: c.Name, TotalHours: c.TotalHours, Color: c.Color}
			var patch schedule.CoursePatch
			if cmd.Flags().Changed("name") {
				form.Name = name
				patch.Name = schedule.Ptr(name)
			}
			if cmd.Flags().Changed("hours") {
				form.TotalHours = hours
				patch.TotalHours = schedule.Ptr(hours)
			}
			if cmd.Flags().Changed("color") {
				if form.Color, err = b.resolveColor(color); err != nil {
					return err
				}
				patch.Color = schedule.Ptr(form.Color)
			}
			if patch == (schedule.CoursePatch{}) {
				return fmt.Errorf("nothing to change: pass --name, --hours or --color")
			}
			if err := b.validator.Check(form); err != nil {
				return err
			}

			b.store.UpdateCourse(c.ID, patch)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated course %s %s\n", formatSwatch(form.Color), form.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New total hours")
	cmd.Flags().StringVar(&color, "color", "", "Hex colour or palette number")
	return cmd
}

func (a *App) courseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <course>",
		Aliases: []string{"remove"},
		Short:   "Remove a course and its sessions",
		Args:    cobra.ExactArgs(1),
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
			removed := len(b.store.SessionsForCourse(c.ID))
			b.store.RemoveCourse(c.ID)
			if err := b.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed course %s and %d sessions\n", c.Name, removed)
			return nil
		},
	}
}
