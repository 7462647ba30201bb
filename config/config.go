// Package config loads game settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/score"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Board    Board  `yaml:"board"`
	Score    Score  `yaml:"score"`
	AI       AI     `yaml:"ai"`
}

type Board struct {
	Size    int    `yaml:"size" env:"TTT_BOARD_SIZE" env-default:"3" validate:"min=1,max=7"`
	SymbolA string `yaml:"symbol-a" env:"TTT_SYMBOL_A" env-default:"X" validate:"len=1,excludesall=./"`
	SymbolB string `yaml:"symbol-b" env:"TTT_SYMBOL_B" env-default:"O" validate:"len=1,excludesall=./,nefield=SymbolA"`
	NoColor bool   `yaml:"no-color" env:"TTT_NO_COLOR"`
}

type Score struct {
	WinPoints int `yaml:"win-points" env:"TTT_WIN_POINTS" env-default:"2" validate:"gte=0"`
	TiePoints int `yaml:"tie-points" env:"TTT_TIE_POINTS" env-default:"1" validate:"gte=0"`
}

// cleanenv applies env-default to any field still at its zero value, so
// settings whose zero value is meaningful default to zero, and the move
// timeout is kept as text until Validate parses it.
type AI struct {
	Seed             int64  `yaml:"seed" env:"TTT_AI_SEED" env-default:"0"`
	Threads          int    `yaml:"threads" env:"TTT_AI_THREADS" env-default:"1" validate:"min=1,max=64"`
	Debug            int    `yaml:"debug" env:"TTT_AI_DEBUG" env-default:"0" validate:"gte=0"`
	NoPrune          bool   `yaml:"no-prune" env:"TTT_AI_NO_PRUNE"`
	NoDepthWeighting bool   `yaml:"no-depth-weighting" env:"TTT_AI_NO_DEPTH_WEIGHTING"`
	MoveTimeout      string `yaml:"move-timeout" env:"TTT_AI_MOVE_TIMEOUT" env-default:"10s" validate:"required"`

	moveTimeout time.Duration
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path, if it is not empty, then the environment, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load for callers that cannot continue without a config.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks a config after command-line overrides have been
// applied to it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.BoardConfig().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	d, err := time.ParseDuration(c.AI.MoveTimeout)
	if err != nil {
		return fmt.Errorf("invalid config: move-timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid config: move-timeout %s is negative", d)
	}
	c.AI.moveTimeout = d
	return nil
}

// MoveTimeout is the time a computer player gets for each move. Zero
// means no limit. It is set by Validate.
func (c *Config) MoveTimeout() time.Duration {
	return c.AI.moveTimeout
}

func (c *Config) BoardConfig() board.Config {
	return board.Config{
		Size:     c.Board.Size,
		Alphabet: board.Alphabet{A: c.Board.SymbolA, B: c.Board.SymbolB},
	}
}

func (c *Config) Points() score.Points {
	return score.Points{Win: c.Score.WinPoints, Tie: c.Score.TiePoints}
}

func (c *Config) Minimax(log *zap.Logger) ai.MinimaxConfig {
	return ai.MinimaxConfig{
		Seed:          c.AI.Seed,
		Debug:         c.AI.Debug,
		Threads:       c.AI.Threads,
		DepthWeighted: !c.AI.NoDepthWeighting,
		NoPrune:       c.AI.NoPrune,
		Logger:        log,
	}
}

// Logger builds a logger at the configured level. encoding is "console"
// or "json".
func (c *Config) Logger(encoding string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = encoding
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
