package cli

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
)

// Environment fallbacks for the budget flags.
const (
	EnvMaxSteps     = "AUTOMATA_MAX_STEPS"
	EnvMaxIdleSteps = "AUTOMATA_MAX_IDLE_STEPS"
)

// Config carries the persistent flags shared by every command.
type Config struct {
	Debug        bool
	LogFile      string
	MaxSteps     int
	MaxIdleSteps int
}

// DefaultConfig returns the budgets from the environment, or the runtime defaults.
func DefaultConfig() Config {
	return Config{
		MaxSteps:     EnvInt(EnvMaxSteps, runtime.DefaultMaxSteps),
		MaxIdleSteps: EnvInt(EnvMaxIdleSteps, runtime.DefaultMaxIdleSteps),
	}
}

// EnvInt reads a positive integer from name. Unset or invalid values yield fallback.
func EnvInt(name string, fallback int) int {
	if val := os.Getenv(name); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// NewLogger configures the application logger.
// Debug lowers the level to Debug. Quiet commands (run, validate, graph) log nothing to
// the console unless Debug is set. LogFile always receives a JSON copy.
// The returned closer must be called on exit.
func (c Config) NewLogger(quiet bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	if c.LogFile != "" {
		return logging.NewWithFile(level, c.LogFile)
	}
	if quiet && !c.Debug {
		return logging.NewNop(), nopCloser{}, nil
	}
	return logging.New(level), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
