package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeAuto      ColorMode = iota // resolved from environment at init
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return "auto"
	}
}

// ParseColorMode accepts the spellings used by the -color flag
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorModeAuto, nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorModeAuto, fmt.Errorf("unknown color mode %q", s)
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Cube256 returns the xterm 256-palette index for an RGB cube coordinate.
// r, g, b must be in [0,5]. Values outside that range are clamped.
func Cube256(r, g, b uint8) uint8 {
	r, g, b = min(r, 5), min(g, 5), min(b, 5)
	return 16 + 36*r + 6*g + b
}

// Gray256 returns the xterm 256-palette index for a grayscale step.
// step must be in [0,23] (maps to indices 232-255, levels 8-238).
func Gray256(step uint8) uint8 {
	return 232 + min(step, 23)
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)

	// Grayscale ramp is only a candidate when r ≈ g ≈ b
	gray := (r + g + b) / 3
	maxDiff := max(abs(r-gray), abs(g-gray), abs(b-gray))

	cr, cg, cb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]

	if maxDiff < 10 {
		if gray < 4 {
			return Cube256(0, 0, 0)
		}
		if gray > 243 {
			return Cube256(5, 5, 5)
		}
		step := uint8(min((gray-8)/10, 23))
		level := 8 + int(step)*10
		grayDist := abs(r-level) + abs(g-level) + abs(b-level)

		cubeDist := abs(r-int(cubeValues[cr])) +
			abs(g-int(cubeValues[cg])) +
			abs(b-int(cubeValues[cb]))

		if grayDist < cubeDist {
			return Gray256(step)
		}
	}

	return Cube256(cr, cg, cb)
}

// trueColorEnv lists variables set only by terminals known to render 24-bit color
var trueColorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// trueColorTermHints are term type fragments naming a direct-color entry
var trueColorTermHints = []string{"truecolor", "24bit", "direct"}

// DetectColorMode resolves ColorModeAuto from the environment.
// termType overrides $TERM when non-empty.
func DetectColorMode(termType string) ColorMode {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, key := range trueColorEnv {
		if os.Getenv(key) != "" {
			return ColorModeTrueColor
		}
	}

	if termType == "" {
		termType = os.Getenv("TERM")
	}
	termType = strings.ToLower(termType)
	for _, hint := range trueColorTermHints {
		if strings.Contains(termType, hint) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}
