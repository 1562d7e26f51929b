package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ncdemo/demo"
	"github.com/lixenwraith/ncdemo/render"
	"github.com/lixenwraith/ncdemo/terminal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ncdemo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_ResolvesToCanonicalDemo(t *testing.T) {
	r, err := Default().Resolve()
	require.NoError(t, err)

	assert.Equal(t, render.BackendTcell, r.Backend)
	assert.Equal(t, demo.DefaultPlan(), r.Plan)
	assert.Equal(t, render.Options{ColorMode: terminal.ColorModeAuto}, r.Options)
	assert.Empty(t, r.Output)
	assert.Equal(t, "#c800c8", Default().Fg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
backend = "ansi"
no_alt_screen = true
term = "xterm-direct"
color = "truecolor"
fg = "#ff0000"
row = 3
col = 7
pause = "250ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	r, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, render.BackendANSI, r.Backend)
	assert.True(t, r.Options.InhibitAltScreen)
	assert.Equal(t, "xterm-direct", r.Options.TermType)
	assert.Equal(t, terminal.ColorModeTrueColor, r.Options.ColorMode)
	assert.Equal(t, demo.Plan{Fg: terminal.RGB{R: 255}, Row: 3, Col: 7, Pause: 250 * time.Millisecond}, r.Plan)
}

func TestLoad_FileKeepsUnsetDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `row = 2`))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Row)
	assert.Equal(t, 1, cfg.Col)
	assert.Equal(t, Duration(5*time.Second), cfg.Pause)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, `colour = "256"`))
	assert.Error(t, err)
}

func TestLoad_BadSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, "row = \n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ncdemo.toml:")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
backend = "ansi"
pause = "1s"
`)
	t.Setenv("NCDEMO_BACKEND", "tcell")
	t.Setenv("NCDEMO_PAUSE", "2s")
	t.Setenv("NCDEMO_NO_ALT_SCREEN", "true")
	t.Setenv("NCDEMO_FG", "#00ff00")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tcell", cfg.Backend)
	assert.Equal(t, Duration(2*time.Second), cfg.Pause)
	assert.True(t, cfg.NoAltScreen)
	assert.Equal(t, "#00ff00", cfg.Fg)
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("COLOR", "always")
	t.Setenv("DEBUG", "true")
	t.Setenv("ROW", "7")
	t.Setenv("OUTPUT", "/dev/null")
	t.Setenv("BACKEND", "notcurses")
	t.Setenv("TERM_TYPE", "dumb")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = cfg.Resolve()
	assert.NoError(t, err)
}

func TestLoad_EnvSplitsFieldNames(t *testing.T) {
	t.Setenv("NCDEMO_TERM_TYPE", "xterm-direct")
	t.Setenv("NCDEMO_LOG_LEVEL", "warn")
	t.Setenv("NCDEMO_ROW", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "xterm-direct", cfg.TermType)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Row)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("NCDEMO_PAUSE", "soon")
	_, err := Load("")
	assert.Error(t, err)
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Backend = "notcurses" }},
		{"color", func(c *Config) { c.Color = "16" }},
		{"fg", func(c *Config) { c.Fg = "magenta" }},
		{"row", func(c *Config) { c.Row = -1 }},
		{"col", func(c *Config) { c.Col = -1 }},
		{"pause", func(c *Config) { c.Pause = Duration(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			_, err := cfg.Resolve()
			assert.Error(t, err)
		})
	}
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#c800c8")
	require.NoError(t, err)
	assert.Equal(t, terminal.RGB{R: 200, G: 0, B: 200}, c)

	c, err = ParseRGB("#f0f")
	require.NoError(t, err)
	assert.Equal(t, terminal.RGB{R: 255, G: 0, B: 255}, c)

	_, err = ParseRGB("c800c8")
	assert.Error(t, err)
}

func TestEncode_LoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Backend = "ansi"
	cfg.Pause = Duration(1500 * time.Millisecond)

	data, err := cfg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.5s")

	path := writeConfig(t, string(data))
	loaded := &Config{}
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, cfg, loaded)
}
