// Package config loads the envelope defaults from a TOML file.
//
//	[envelope]
//	width = 50.0
//	height = 50.0
//	color = "#ff8800"
//	opacity = 1.0
//	reuse_resources = false
//
//	[preview]
//	width = 800
//	height = 600
//	supersample = 2
//	background = "#202020"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/envelope/pkg/envelope"
)

// FileName is the config file looked up in the home directory
const FileName = ".envelope.toml"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the content of a config file
type Config struct {
	Envelope EnvelopeConfig `toml:"envelope"`
	Preview  PreviewConfig  `toml:"preview"`
}

// EnvelopeConfig holds the defaults passed to envelope.Assemble
type EnvelopeConfig struct {
	Width          float64  `toml:"width"`
	Height         float64  `toml:"height"`
	Color          string   `toml:"color"`
	Opacity        *float64 `toml:"opacity"`
	ReuseResources bool     `toml:"reuse_resources"`
	ASCII          bool     `toml:"ascii"`
}

// PreviewConfig controls software-rendered previews
type PreviewConfig struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Supersample int    `toml:"supersample"`
	Background  string `toml:"background"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Envelope: EnvelopeConfig{
			Width:  envelope.DefaultWidth,
			Height: envelope.DefaultHeight,
		},
		Preview: PreviewConfig{
			Width:       800,
			Height:      600,
			Supersample: 2,
			Background:  "#202020",
		},
	}
}

// DefaultPath returns $HOME/.envelope.toml, or "" without a home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config file at path on top of the defaults.
// An empty path falls back to DefaultPath; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "file", path, "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("config loaded", "file", path)
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var problems []string

	if c.Envelope.Width < 0 {
		problems = append(problems, "envelope.width must not be negative")
	}
	if c.Envelope.Height < 0 {
		problems = append(problems, "envelope.height must not be negative")
	}
	if c.Envelope.Opacity != nil && *c.Envelope.Opacity < 0 {
		problems = append(problems, "envelope.opacity must not be negative")
	}
	if c.Envelope.Color != "" {
		if _, err := envelope.ParseColor(c.Envelope.Color); err != nil {
			problems = append(problems, "envelope.color: "+err.Error())
		}
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		problems = append(problems, "preview size must be positive")
	}
	if c.Preview.Supersample < 1 || c.Preview.Supersample > 8 {
		problems = append(problems, "preview.supersample must be between 1 and 8")
	}
	if _, err := envelope.ParseColor(c.Preview.Background); err != nil {
		problems = append(problems, "preview.background: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Options converts the envelope section into assembly options
func (c *Config) Options() envelope.Options {
	opts := envelope.Options{
		Width:          c.Envelope.Width,
		Height:         c.Envelope.Height,
		ReuseResources: c.Envelope.ReuseResources,
	}
	if c.Envelope.Color != "" {
		// Validate has already rejected malformed colors.
		if color, err := envelope.ParseColor(c.Envelope.Color); err == nil {
			opts = opts.WithColor(color)
		}
	}
	if c.Envelope.Opacity != nil {
		opts = opts.WithOpacity(*c.Envelope.Opacity)
	}
	return opts
}

// BackgroundColor returns the parsed preview background
func (c *Config) BackgroundColor() envelope.Color {
	color, err := envelope.ParseColor(c.Preview.Background)
	if err != nil {
		return 0
	}
	return color
}
