package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Board controls how a session board is laid out when a game starts.
type Board struct {
	DefaultSize      int `env:"DEFAULT_BOARD_SIZE" envDefault:"40"`
	MaxSize          int `env:"MAX_BOARD_SIZE" envDefault:"1000"`
	BranchInterval   int `env:"BRANCH_INTERVAL" envDefault:"10"`
	BranchOffset     int `env:"BRANCH_OFFSET" envDefault:"5"`
	LotteryInterval  int `env:"LOTTERY_INTERVAL" envDefault:"12"`
	MinigameInterval int `env:"MINIGAME_INTERVAL" envDefault:"8"`
}

type Lobby struct {
	MinPlayers int `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers int `env:"MAX_PLAYERS" envDefault:"4"`
}

type Lottery struct {
	Fee   int `env:"LOTTERY_FEE" envDefault:"5000"`
	Stake int `env:"LOTTERY_STAKE" envDefault:"50000"`
}

type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode        string `env:"GIN_MODE" envDefault:"release"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	Board   Board
	Lobby   Lobby
	Lottery Lottery
}

// Default returns the configuration used when no environment overrides exist.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		GinMode:  "release",
		LogLevel: "info",
		Board: Board{
			DefaultSize:      40,
			MaxSize:          1000,
			BranchInterval:   10,
			BranchOffset:     5,
			LotteryInterval:  12,
			MinigameInterval: 8,
		},
		Lobby:   Lobby{MinPlayers: 2, MaxPlayers: 4},
		Lottery: Lottery{Fee: 5000, Stake: 50000},
	}
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// boardSizeLimit caps MAX_BOARD_SIZE so a board allocation stays small.
const boardSizeLimit = 100_000

func (c Config) Validate() error {
	switch {
	case c.Board.DefaultSize <= 0:
		return errors.New("DEFAULT_BOARD_SIZE must be positive")
	case c.Board.MaxSize < c.Board.DefaultSize || c.Board.MaxSize > boardSizeLimit:
		return fmt.Errorf("MAX_BOARD_SIZE must be between DEFAULT_BOARD_SIZE and %d", boardSizeLimit)
	case c.Board.BranchInterval <= 0, c.Board.LotteryInterval <= 0, c.Board.MinigameInterval <= 0:
		return errors.New("board intervals must be positive")
	case c.Board.BranchOffset < 0:
		return errors.New("BRANCH_OFFSET must not be negative")
	case c.Lobby.MinPlayers <= 0 || c.Lobby.MinPlayers > c.Lobby.MaxPlayers:
		return fmt.Errorf("invalid lobby bounds %d..%d", c.Lobby.MinPlayers, c.Lobby.MaxPlayers)
	case c.Lottery.Fee <= 0 || c.Lottery.Stake <= 0:
		return errors.New("lottery amounts must be positive")
	}
	return nil
}
