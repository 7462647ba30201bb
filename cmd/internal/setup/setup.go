// Package setup holds the flags and construction shared by the
// tictactoe subcommands.
package setup

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/config"
)

type Flags struct {
	Config   string
	LogLevel string
}

func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "YAML config file; TTT_* environment variables override it")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Load reads the configuration, applies override for command-line
// flags, and builds a logger with the given encoding.
func (f *Flags) Load(encoding string, override func(*config.Config)) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, nil, err
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := cfg.Logger(encoding)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// NewPlayer builds a computer player by name.
func NewPlayer(kind string, cfg ai.MinimaxConfig) (ai.Player, error) {
	switch kind {
	case "minimax":
		return ai.NewMinimax(cfg), nil
	case "random":
		return ai.NewRandom(cfg.Seed), nil
	}
	return nil, fmt.Errorf("unknown player %q (want minimax or random)", kind)
}
