// Package config loads the server configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TimeControl struct {
	Seconds   int `json:"seconds"`
	Increment int `json:"increment"`
}

type TimeControls struct {
	Player TimeControl `json:"player"`
}

type Config struct {
	// Layout is a board layout file; empty means the built-in layout.
	Layout         string              `json:"layout"`
	TimeControls   TimeControls        `json:"time_controls"`
	PlayerColour   model.PlayerColor   `json:"player_colour"`
	PromotionRule  model.PromotionRule `json:"promotion_rule"`
	ListenAddr     string              `json:"listen_addr"`
	AllowedOrigins []string            `json:"allowed_origins"`
	// DataDir holds the position store; empty keeps games in memory only.
	DataDir string `json:"data_dir"`
}

func Default() Config {
	return Config{
		TimeControls: TimeControls{
			Player: TimeControl{Seconds: 180, Increment: 2},
		},
		PlayerColour:   model.PlayerColorWhite,
		PromotionRule:  model.PromoteFarRank,
		ListenAddr:     ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !c.PlayerColour.Valid() {
		return fmt.Errorf("%w: player_colour %q", ErrInvalidConfig, c.PlayerColour)
	}
	if !c.PromotionRule.Valid() {
		return fmt.Errorf("%w: promotion_rule %q", ErrInvalidConfig, c.PromotionRule)
	}
	if c.TimeControls.Player.Seconds < 0 || c.TimeControls.Player.Increment < 0 {
		return fmt.Errorf("%w: negative time control", ErrInvalidConfig)
	}
	return nil
}

func (c Config) BaseTime() time.Duration {
	return time.Duration(c.TimeControls.Player.Seconds) * time.Second
}

func (c Config) Increment() time.Duration {
	return time.Duration(c.TimeControls.Player.Increment) * time.Second
}

// Board loads the configured layout and applies the promotion rule.
func (c Config) Board() (*model.BoardState, error) {
	board, err := model.LoadLayout(c.Layout)
	if err != nil {
		return nil, err
	}
	board.Promotion = c.PromotionRule
	return board, nil
}
