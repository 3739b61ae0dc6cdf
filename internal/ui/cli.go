package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/config"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/storage"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool

	kv    storage.KV // opened on first use unless injected
	board *board
}

// Option configures an App.
type Option func(*App)

// WithKV makes the App use kv instead of opening the configured backend.
// The App still closes it.
func WithKV(kv storage.KV) Option {
	return func(a *App) {
		a.kv = kv
	}
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "poolboard",
		Short: "Drag courses onto pool timetables",
		Long: `Poolboard schedules courses with an hour budget onto pools.

Run without a sub-command to open the board: drag courses from the bank
onto a pool day, drag blocks to move them and drag their bottom edge to
resize. The sub-commands do the same from the shell.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBoard(cmd.Context())
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.poolCmd())
	a.root.AddCommand(a.courseCmd())
	a.root.AddCommand(a.sessionCmd())
	a.root.AddCommand(a.colorsCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.resetCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "poolboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetArgs overrides the command line, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the storage backend and flushes the logger.
func (a *App) Close() error {
	if a.board != nil {
		_ = a.board.log.Sync()
	}
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv = nil
	return err
}
