// Package config loads the board settings: defaults, then an optional YAML
// file, then JOGO_* environment variables, then validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/GabrielDSAlves/jogo/board/layout"
)

const EnvPrefix = "JOGO_"

type Config struct {
	Window    Window    `yaml:"window" envPrefix:"WINDOW_"`
	Board     Board     `yaml:"board" envPrefix:"BOARD_"`
	Generator Generator `yaml:"generator" envPrefix:"GENERATOR_"`
	Log       Log       `yaml:"log" envPrefix:"LOG_"`
}

type Window struct {
	Scale float64 `yaml:"scale" env:"SCALE" validate:"gt=0,lte=4"`
	TPS   int     `yaml:"tps" env:"TPS" validate:"gte=10,lte=240"`
}

type Board struct {
	Width      int `yaml:"width" env:"WIDTH" validate:"gte=820,lte=4096"`
	Height     int `yaml:"height" env:"HEIGHT" validate:"gte=480,lte=4096"`
	Margin     int `yaml:"margin" env:"MARGIN" validate:"gt=0"`
	AreaY      int `yaml:"area_y" env:"AREA_Y" validate:"gt=0"`
	AreaBottom int `yaml:"area_bottom" env:"AREA_BOTTOM" validate:"gte=0"`
	PieceSize  int `yaml:"piece_size" env:"PIECE_SIZE" validate:"gte=8,lte=200"`
	PieceGap   int `yaml:"piece_gap" env:"PIECE_GAP" validate:"gte=0"`
	// Divisions is the band count the board starts with.
	Divisions int `yaml:"divisions" env:"DIVISIONS" validate:"gte=0,lte=20"`
}

type Generator struct {
	// Seed 0 means seed from the clock.
	Seed uint32 `yaml:"seed" env:"SEED"`
}

type Log struct {
	Level string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
}

// Default mirrors layout.Default.
func Default() Config {
	g := layout.Default()
	return Config{
		Window: Window{Scale: 1, TPS: 60},
		Board: Board{
			Width:      g.Width,
			Height:     g.Height,
			Margin:     g.Margin,
			AreaY:      g.AreaY,
			AreaBottom: g.AreaBottom,
			PieceSize:  g.PieceSize,
			PieceGap:   g.PieceGap,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path (if non-empty), applies the process environment and
// validates the result.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment; nil means os.Environ.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and the derived board geometry.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %w", errors.Join(errs...))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Geometry().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Geometry maps the board section onto a layout.Geometry. Insets keep
// their defaults.
func (c Config) Geometry() layout.Geometry {
	g := layout.Default()
	g.Width = c.Board.Width
	g.Height = c.Board.Height
	g.Margin = c.Board.Margin
	g.AreaY = c.Board.AreaY
	g.AreaBottom = c.Board.AreaBottom
	g.PieceSize = c.Board.PieceSize
	g.PieceGap = c.Board.PieceGap
	return g
}
