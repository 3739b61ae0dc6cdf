package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/config"
	"github.com/javiermolinar/poolboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  poolboard config
  poolboard config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if show {
				printConfig(cmd.OutOrStdout(), a.config)
				return nil
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := prompter{r: reader, w: out}
	cfg.Grid.DefaultStartHour = p.int("Default start hour", cfg.Grid.DefaultStartHour)
	cfg.Grid.DefaultEndHour = p.int("Default end hour", cfg.Grid.DefaultEndHour)
	cfg.Grid.DefaultSessionMinutes = p.int("Default session minutes", cfg.Grid.DefaultSessionMinutes)
	cfg.History.Limit = p.int("Undo history limit", cfg.History.Limit)
	cfg.Storage.Backend = p.choice("Storage backend",
		[]string{config.BackendSQLite, config.BackendRedis, config.BackendMemory}, cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	case config.BackendRedis:
		cfg.Storage.RedisAddr = p.value("Redis address", cfg.Storage.RedisAddr)
		cfg.Storage.RedisDB = p.int("Redis database", cfg.Storage.RedisDB)
	}
	cfg.Log.Level = p.choice("Log level", []string{"debug", "info", "warn", "error"}, cfg.Log.Level)
	cfg.UI.Theme = p.choice("UI theme", theme.Available(), cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  default_start_hour      = %d\n", cfg.Grid.DefaultStartHour)
	fmt.Fprintf(w, "  default_end_hour        = %d\n", cfg.Grid.DefaultEndHour)
	fmt.Fprintf(w, "  default_session_minutes = %d\n", cfg.Grid.DefaultSessionMinutes)
	fmt.Fprintf(w, "  hour_row_height         = %g\n", cfg.Grid.HourRowHeight)
	fmt.Fprintf(w, "  day_column_width        = %g\n", cfg.Grid.DayColumnWidth)
	fmt.Fprintln(w, "\n[canvas]")
	fmt.Fprintf(w, "  min_scale               = %g\n", cfg.Canvas.MinScale)
	fmt.Fprintf(w, "  max_scale               = %g\n", cfg.Canvas.MaxScale)
	fmt.Fprintf(w, "  zoom_step               = %g\n", cfg.Canvas.ZoomStep)
	fmt.Fprintln(w, "\n[history]")
	fmt.Fprintf(w, "  limit                   = %d\n", cfg.History.Limit)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  backend                 = %s\n", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		fmt.Fprintf(w, "  db_path                 = %s\n", cfg.Storage.DBPath)
	case config.BackendRedis:
		fmt.Fprintf(w, "  redis_addr              = %s\n", cfg.Storage.RedisAddr)
		fmt.Fprintf(w, "  redis_db                = %d\n", cfg.Storage.RedisDB)
	}
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level                   = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format                  = %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file                    = %s\n", cfg.Log.File)
	}
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme                   = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter reads answers line by line, keeping the current value on empty input.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input, err := p.r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" || (err != nil && err != io.EOF) {
		return current
	}
	return input
}

func (p prompter) int(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  Invalid number %q\n", value)
		if p.r.Buffered() == 0 {
			return current
		}
	}
}

func (p prompter) choice(label string, options []string, current string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(p.value(full, current))
		for _, o := range options {
			if o == value {
				return value
			}
		}
		fmt.Fprintf(p.w, "  Invalid value %q. Available: %s\n", value, joined)
		if p.r.Buffered() == 0 {
			return current
		}
	}
}
