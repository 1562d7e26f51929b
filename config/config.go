// Package config resolves ncdemo settings.
// Precedence, lowest first: defaults, TOML file, NCDEMO_* environment, command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/ncdemo/demo"
	"github.com/lixenwraith/ncdemo/render"
	"github.com/lixenwraith/ncdemo/terminal"
)

// EnvPrefix namespaces environment overrides
const EnvPrefix = "NCDEMO"

// Config holds all demo settings
type Config struct {
	Backend     string   `toml:"backend" split_words:"true"`
	NoAltScreen bool     `toml:"no_alt_screen" split_words:"true"`
	Output      string   `toml:"output" split_words:"true"`
	TermType    string   `toml:"term" split_words:"true"`
	Color       string   `toml:"color" split_words:"true"`
	Fg          string   `toml:"fg" split_words:"true"`
	Row         int      `toml:"row" split_words:"true"`
	Col         int      `toml:"col" split_words:"true"`
	Pause       Duration `toml:"pause" split_words:"true"`
	Debug       bool     `toml:"debug" split_words:"true"`
	LogFile     string   `toml:"log_file" split_words:"true"`
	LogLevel    string   `toml:"log_level" split_words:"true"`
}

// Duration is a time.Duration spelled as "5s" in files and environment
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the canonical demo settings
func Default() *Config {
	plan := demo.DefaultPlan()
	return &Config{
		Backend: string(render.BackendTcell),
		Color:   terminal.ColorModeAuto.String(),
		Fg:      colorful.Color{R: float64(plan.Fg.R) / 255, G: float64(plan.Fg.G) / 255, B: float64(plan.Fg.B) / 255}.Hex(),
		Row:     plan.Row,
		Col:     plan.Col,
		Pause:   Duration(plan.Pause),
	}
}

// Load layers file and environment over defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over the current values; unknown keys are rejected
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from NCDEMO_* variables that are set.
// Keys are the field names split on word boundaries, e.g. NCDEMO_TERM_TYPE; unprefixed names are never read.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("config env: %w", err)
	}
	return nil
}

// Encode writes the config as TOML
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Resolved is a validated config in the types the driver consumes
type Resolved struct {
	Backend render.Backend
	Options render.Options // Out is left to the caller, see Config.Output
	Plan    demo.Plan
	Output  string
}

// Resolve validates every field and converts to driver types
func (c *Config) Resolve() (*Resolved, error) {
	backend, err := render.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}

	mode, err := terminal.ParseColorMode(c.Color)
	if err != nil {
		return nil, err
	}

	fg, err := ParseRGB(c.Fg)
	if err != nil {
		return nil, err
	}

	if c.Row < 0 || c.Col < 0 {
		return nil, fmt.Errorf("cursor target must be non-negative: row %d col %d", c.Row, c.Col)
	}
	if c.Pause < 0 {
		return nil, fmt.Errorf("pause must be non-negative: %s", time.Duration(c.Pause))
	}

	return &Resolved{
		Backend: backend,
		Options: render.Options{
			InhibitAltScreen: c.NoAltScreen,
			TermType:         c.TermType,
			ColorMode:        mode,
		},
		Plan: demo.Plan{
			Fg:    fg,
			Row:   c.Row,
			Col:   c.Col,
			Pause: time.Duration(c.Pause),
		},
		Output: c.Output,
	}, nil
}

// ParseRGB parses a hex color such as "#c800c8" or "#f0f"
func ParseRGB(s string) (terminal.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return terminal.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return terminal.RGB{R: r, G: g, B: b}, nil
}
