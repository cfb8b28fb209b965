package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/seatplan/engine"
)

// envPrefix namespaces every setting: SEATPLAN_CAPACITY, SEATPLAN_SEED, ...
const envPrefix = "SEATPLAN"

// Config holds settings read from the environment. Command-line flags
// override them.
type Config struct {
	Capacity  int           `envconfig:"CAPACITY" default:"4"`
	Tables    int           `envconfig:"TABLES" default:"0"`
	Seed      int64         `envconfig:"SEED" default:"0"` // 0 draws a fresh seed per run
	TimeLimit time.Duration `envconfig:"TIME_LIMIT" default:"5s"`
	MaxNodes  int           `envconfig:"MAX_NODES" default:"0"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info"`
	Workers   int           `envconfig:"WORKERS" default:"4"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// logger returns a text logger on stderr at the configured level.
func (c Config) logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// engineOptions maps the config onto engine options.
func (c Config) engineOptions(log *slog.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithTimeLimit(c.TimeLimit),
		engine.WithMaxNodes(c.MaxNodes),
	}
	if c.Seed != 0 {
		opts = append(opts, engine.WithSeed(c.Seed))
	}

	return opts
}
