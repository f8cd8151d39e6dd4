package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kungfusheep/kli"
)

// Config is the demo's YAML configuration. Every field is optional.
type Config struct {
	FPS           int     `yaml:"fps"`
	AmbiguousWide bool    `yaml:"ambiguous_wide"`
	Ellipsis      string  `yaml:"ellipsis"`
	Border        string  `yaml:"border"`
	Tiles         int     `yaml:"tiles"`
	Mouse         bool    `yaml:"mouse"`
	Inline        bool    `yaml:"inline"`
	LogLevel      string  `yaml:"log_level"`
	LogFile       string  `yaml:"log_file"`
	Colors        Palette `yaml:"colors"`
}

// Palette holds the scene colors.
type Palette struct {
	Heading     HexColor `yaml:"heading"`
	LeftBorder  HexColor `yaml:"left_border"`
	RightBorder HexColor `yaml:"right_border"`
	Tile        HexColor `yaml:"tile"`
	Background  HexColor `yaml:"background"`
}

// HexColor is a color written as "#rrggbb" in YAML.
type HexColor struct {
	kli.Color
}

// UnmarshalYAML parses a hex string.
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	c, err := kli.ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	h.Color = c
	return nil
}

// MarshalYAML writes the color as "#rrggbb".
func (h HexColor) MarshalYAML() (any, error) {
	return h.Hex()[:7], nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		FPS:      30,
		Ellipsis: kli.DefaultEllipsis,
		Border:   "round",
		Tiles:    13,
		Colors: Palette{
			Heading:     HexColor{kli.RGB(255, 190, 0)},
			LeftBorder:  HexColor{kli.RGB(190, 0, 255)},
			RightBorder: HexColor{kli.RGB(190, 255, 0)},
			Tile:        HexColor{kli.RGB(240, 150, 100)},
			Background:  HexColor{kli.Black},
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults; a missing file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS))
	}
	if c.Tiles < 0 {
		errs = append(errs, fmt.Errorf("tiles must not be negative, got %d", c.Tiles))
	}
	if _, ok := kli.BorderByName(c.Border); !ok {
		errs = append(errs, fmt.Errorf("unknown border %q", c.Border))
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Width returns the width classifier the config selects.
func (c *Config) Width() kli.WidthClassifier {
	return kli.WidthClassifier{AmbiguousWide: c.AmbiguousWide}
}
