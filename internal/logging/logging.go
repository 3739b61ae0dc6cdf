// Package logging builds the zap logger shared by the store, the drag
// pipeline and the CLI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/poolboard/internal/config"
)

// DebugLogPath is the fixed path --debug writes to.
const DebugLogPath = "poolboard-debug.log"

// Mode selects where log output goes.
type Mode int

const (
	// ModeCLI logs to the configured file or stderr.
	ModeCLI Mode = iota
	// ModeTUI logs only to a file; stderr would corrupt the screen.
	ModeTUI
)

// New builds a logger from cfg. debug forces debug level and writes to
// DebugLogPath. In ModeTUI without debug or a configured file, it returns a
// no-op logger.
func New(cfg config.LogConfig, mode Mode, debug bool) (*zap.Logger, error) {
	var zapCfg zap.Config
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Sampling = nil
	}

	switch cfg.Format {
	case "console":
		zapCfg.Encoding = "console"
	default:
		zapCfg.Encoding = "json"
	}

	if cfg.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}
	if debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	out := cfg.File
	if debug {
		out = DebugLogPath
	}
	switch {
	case out != "":
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
		zapCfg.OutputPaths = []string{out}
		zapCfg.ErrorOutputPaths = []string{out}
	case mode == ModeTUI:
		return zap.NewNop(), nil
	default:
		zapCfg.OutputPaths = []string{"stderr"}
		zapCfg.ErrorOutputPaths = []string{"stderr"}
	}

	l, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l.Named("poolboard"), nil
}
