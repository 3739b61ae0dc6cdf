package ui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/export"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/summary"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func (a *App) exportCmd() *cobra.Command {
	var (
		out       string
		title     string
		budget    bool
		toClipboard bool
	)
	cmd := &cobra.Command{
		Use:   "export [csv|pdf|json]",
		Short: "Export the timetable",
		Long: `Export every session as a timetable ordered by pool, day and time.

csv and pdf write the timetable, or the course budget table with --budget.
json writes the whole board in the format "poolboard import" reads.

Examples:
  poolboard export csv > timetable.csv
  poolboard export pdf --out timetable.pdf
  poolboard export csv --budget --clipboard`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(export.FormatCSV), string(export.FormatPDF), string(export.FormatJSON)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := export.FormatCSV
			if len(args) == 1 {
				f, err := export.ParseFormat(args[0])
				if err != nil {
					return err
				}
				format = f
			}
			if format == export.FormatPDF && out == "" && !toClipboard && isTerminal() {
				return fmt.Errorf("refusing to write pdf to a terminal; use --out")
			}
			if format == export.FormatPDF && toClipboard {
				return fmt.Errorf("pdf cannot be copied to the clipboard")
			}

			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			st := b.store.Snapshot()

			var data []byte
			switch {
			case budget && format == export.FormatJSON:
				return fmt.Errorf("--budget is only supported for csv and pdf")
			case budget && format == export.FormatCSV:
				data, err = export.CSV(export.Budget(summary.Summarize(st, b.store.Grid())))
			case budget:
				data, err = export.PDF(export.Budget(summary.Summarize(st, b.store.Grid())), title)
			default:
				data, err = export.Render(format, st, title)
			}
			if err != nil {
				return err
			}

			switch {
			case toClipboard:
				if err := clipboardWrite(string(data)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
			case out != "":
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			default:
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "Pool timetable", "PDF title")
	cmd.Flags().BoolVar(&budget, "budget", false, "Export the course budget table instead of the timetable")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy to the clipboard")
	return cmd
}
