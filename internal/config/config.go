// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/placement"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Canvas  CanvasConfig  `toml:"canvas"`
	History HistoryConfig `toml:"history"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// GridConfig holds the canvas dimensions pools are drawn with.
type GridConfig struct {
	HourRowHeight         float64 `toml:"hour_row_height"`
	DayColumnWidth        float64 `toml:"day_column_width"`
	HourLabelWidth        float64 `toml:"hour_label_width"`
	HeaderHeight          float64 `toml:"header_height"`
	MinWidthBuffer        float64 `toml:"min_width_buffer"`
	PlacementOffset       float64 `toml:"placement_offset"`
	WhiteboardWidth       float64 `toml:"whiteboard_width"`
	WhiteboardHeight      float64 `toml:"whiteboard_height"`
	DefaultStartHour      int     `toml:"default_start_hour"`
	DefaultEndHour        int     `toml:"default_end_hour"`
	DefaultSessionMinutes int     `toml:"default_session_minutes"`
	FallbackSnapMinutes   int     `toml:"fallback_snap_minutes"`
}

// CanvasConfig holds zoom limits.
type CanvasConfig struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	ZoomStep float64 `toml:"zoom_step"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	Limit int `toml:"limit"` // undoable actions kept
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend       string `toml:"backend"` // "sqlite", "redis", "memory"
	DBPath        string `toml:"db_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	StateKey      string `toml:"state_key"`
	ColorsKey     string `toml:"colors_key"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty means stderr
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Default returns the default configuration.
func Default() *Config {
	g := geometry.DefaultGrid()
	l := drag.DefaultLimits()
	return &Config{
		Grid: GridConfig{
			HourRowHeight:         g.HourRowHeight,
			DayColumnWidth:        g.DayColumnWidth,
			HourLabelWidth:        g.HourLabelWidth,
			HeaderHeight:          g.HeaderHeight,
			MinWidthBuffer:        g.MinWidthBuffer,
			PlacementOffset:       g.PlacementOffset,
			WhiteboardWidth:       g.WhiteboardWidth,
			WhiteboardHeight:      g.WhiteboardHeight,
			DefaultStartHour:      g.DefaultStartHour,
			DefaultEndHour:        g.DefaultEndHour,
			DefaultSessionMinutes: placement.DefaultSessionMinutes,
			FallbackSnapMinutes:   placement.FallbackSnapMinutes,
		},
		Canvas: CanvasConfig{
			MinScale: l.MinScale,
			MaxScale: l.MaxScale,
			ZoomStep: l.Step,
		},
		History: HistoryConfig{
			Limit: 100,
		},
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			DBPath:    defaultDBPath(),
			RedisAddr: "localhost:6379",
			StateKey:  "schedule-store",
			ColorsKey: "custom-colors",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "poolboard.db"
	}
	return filepath.Join(home, ".local", "share", "poolboard", "poolboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "poolboard", "config.toml")
}

// DefaultEnvPath is the dotenv file read from the working directory.
const DefaultEnvPath = ".env"

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path and the .env file in
// the working directory.
func LoadFrom(path string) (*Config, error) {
	return LoadFiles(path, DefaultEnvPath)
}

// LoadFiles starts with defaults, overlays the TOML file if it exists, then
// applies POOLBOARD_* variables. Variables set in the process environment
// win over the ones in envPath.
func LoadFiles(path, envPath string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	dotenv, err := readDotEnv(envPath)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnvOverrides(cfg, lookup); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// readDotEnv parses a dotenv file without touching the process environment.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return values, nil
}

// applyEnvOverrides applies POOLBOARD_* overrides to the config.
func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	// Storage overrides
	if v := getenv("POOLBOARD_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := getenv("POOLBOARD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := getenv("POOLBOARD_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := getenv("POOLBOARD_REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := getenv("POOLBOARD_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POOLBOARD_REDIS_DB: %w", err)
		}
		cfg.Storage.RedisDB = n
	}
	if v := getenv("POOLBOARD_STATE_KEY"); v != "" {
		cfg.Storage.StateKey = v
	}

	// History overrides
	if v := getenv("POOLBOARD_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POOLBOARD_HISTORY_LIMIT: %w", err)
		}
		cfg.History.Limit = n
	}

	// Log overrides
	if v := getenv("POOLBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := getenv("POOLBOARD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := getenv("POOLBOARD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// UI overrides
	if v := getenv("POOLBOARD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	g := c.Grid
	for _, dim := range []struct {
		name  string
		value float64
	}{
		{"hour_row_height", g.HourRowHeight},
		{"day_column_width", g.DayColumnWidth},
		{"hour_label_width", g.HourLabelWidth},
		{"whiteboard_width", g.WhiteboardWidth},
		{"whiteboard_height", g.WhiteboardHeight},
	} {
		if dim.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", dim.name, dim.value)
		}
	}
	if g.HeaderHeight < 0 || g.MinWidthBuffer < 0 || g.PlacementOffset < 0 {
		return errors.New("header_height, min_width_buffer and placement_offset cannot be negative")
	}
	if g.DefaultStartHour < 0 || g.DefaultStartHour > 23 {
		return fmt.Errorf("default_start_hour must be in [0,23], got %d", g.DefaultStartHour)
	}
	if g.DefaultEndHour < 1 || g.DefaultEndHour > 24 {
		return fmt.Errorf("default_end_hour must be in [1,24], got %d", g.DefaultEndHour)
	}
	if g.DefaultEndHour <= g.DefaultStartHour {
		return errors.New("default_start_hour must be before default_end_hour")
	}
	if g.DefaultSessionMinutes <= 0 || g.DefaultSessionMinutes%geometry.SnapMinutes != 0 {
		return fmt.Errorf("default_session_minutes must be a positive multiple of %d", geometry.SnapMinutes)
	}
	if g.FallbackSnapMinutes <= 0 {
		return errors.New("fallback_snap_minutes must be positive")
	}

	if c.Canvas.MinScale <= 0 {
		return errors.New("min_scale must be positive")
	}
	if c.Canvas.MaxScale < c.Canvas.MinScale {
		return errors.New("max_scale must not be below min_scale")
	}
	if c.Canvas.ZoomStep <= 0 {
		return errors.New("zoom_step must be positive")
	}

	if c.History.Limit <= 0 {
		return errors.New("history limit must be positive")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("redis_addr must be set")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Storage.StateKey == "" || c.Storage.ColorsKey == "" {
		return errors.New("state_key and colors_key must be set")
	}
	if c.Storage.StateKey == c.Storage.ColorsKey {
		return errors.New("state_key and colors_key must differ")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	return nil
}

// Geometry returns the grid dimensions as used by the board.
func (c *Config) Geometry() geometry.Grid {
	return geometry.Grid{
		HourRowHeight:    c.Grid.HourRowHeight,
		DayColumnWidth:   c.Grid.DayColumnWidth,
		HourLabelWidth:   c.Grid.HourLabelWidth,
		HeaderHeight:     c.Grid.HeaderHeight,
		MinWidthBuffer:   c.Grid.MinWidthBuffer,
		PlacementOffset:  c.Grid.PlacementOffset,
		WhiteboardWidth:  c.Grid.WhiteboardWidth,
		WhiteboardHeight: c.Grid.WhiteboardHeight,
		DefaultStartHour: c.Grid.DefaultStartHour,
		DefaultEndHour:   c.Grid.DefaultEndHour,
	}
}

// ZoomLimits returns the canvas zoom bounds.
func (c *Config) ZoomLimits() drag.Limits {
	return drag.Limits{MinScale: c.Canvas.MinScale, MaxScale: c.Canvas.MaxScale, Step: c.Canvas.ZoomStep}
}

// Placement returns the drop commit settings.
func (c *Config) Placement() placement.Config {
	return placement.Config{
		DefaultSessionMinutes: c.Grid.DefaultSessionMinutes,
		FallbackSnapMinutes:   c.Grid.FallbackSnapMinutes,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
