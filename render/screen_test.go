package render

import (
	"errors"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimContext(t *testing.T) (*screenContext, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	return newScreenContext(screen), screen
}

func TestScreen_SetFgRGB8(t *testing.T) {
	ctx, _ := newSimContext(t)
	defer ctx.Stop()

	require.NoError(t, ctx.SetFgRGB8(200, 0, 200))
	fg, _, _ := ctx.style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 0, 200), fg)
}

func TestScreen_MoveAndRender(t *testing.T) {
	ctx, screen := newSimContext(t)
	defer ctx.Stop()

	require.NoError(t, ctx.Move(1, 1))
	require.NoError(t, ctx.Render())

	x, y, _ := screen.GetCursor()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)

	require.NoError(t, ctx.Move(3, 10))
	x, y, _ = screen.GetCursor()
	assert.Equal(t, 10, x, "column maps to x")
	assert.Equal(t, 3, y, "row maps to y")
}

func TestScreen_MoveOutOfBounds(t *testing.T) {
	ctx, _ := newSimContext(t)
	defer ctx.Stop()

	assert.ErrorIs(t, ctx.Move(24, 0), ErrOutOfBounds)
	assert.ErrorIs(t, ctx.Move(0, 80), ErrOutOfBounds)
	assert.ErrorIs(t, ctx.Move(-1, 0), ErrOutOfBounds)
	assert.NoError(t, ctx.Move(23, 79))
}

func TestScreen_StopOnce(t *testing.T) {
	ctx, _ := newSimContext(t)

	restored := 0
	ctx.restoreEnv = func() { restored++ }

	require.NoError(t, ctx.Stop())
	assert.ErrorIs(t, ctx.Stop(), ErrStopped)
	assert.Equal(t, 1, restored)

	assert.ErrorIs(t, ctx.SetFgRGB8(1, 1, 1), ErrStopped)
	assert.ErrorIs(t, ctx.Render(), ErrStopped)
	assert.ErrorIs(t, ctx.Move(0, 0), ErrStopped)
}

func TestSetAltScreenEnv(t *testing.T) {
	t.Run("inhibit then restore unset", func(t *testing.T) {
		t.Setenv(altScreenEnv, "")
		os.Unsetenv(altScreenEnv)

		restore := setAltScreenEnv(true)
		assert.Equal(t, "disable", os.Getenv(altScreenEnv))
		restore()
		_, had := os.LookupEnv(altScreenEnv)
		assert.False(t, had)
	})

	t.Run("allow overrides user setting", func(t *testing.T) {
		t.Setenv(altScreenEnv, "disable")

		restore := setAltScreenEnv(false)
		_, had := os.LookupEnv(altScreenEnv)
		assert.False(t, had)
		restore()
		assert.Equal(t, "disable", os.Getenv(altScreenEnv))
	})
}

func TestLookupTerminfo(t *testing.T) {
	ti, err := lookupTerminfo("xterm-256color")
	require.NoError(t, err)
	assert.NotEmpty(t, ti.SetCursor)

	_, err = lookupTerminfo("dumb")
	assert.ErrorIs(t, err, ErrUnsupported)

	t.Setenv("TERM", "")
	_, err = lookupTerminfo("")
	assert.ErrorIs(t, err, ErrUnsupported)
}

// failingOut starts failing on the given WriteErr call (1-based)
type failingOut struct {
	err    error
	failAt int
	calls  int
}

func (f *failingOut) WriteErr() error {
	f.calls++
	if f.calls >= f.failAt {
		return f.err
	}
	return nil
}

func TestScreen_RenderReportsWriteError(t *testing.T) {
	ctx, _ := newSimContext(t)
	cause := errors.New("input/output error")
	ctx.out = &failingOut{err: cause, failAt: 1}

	err := ctx.Render()
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, ctx.Stop(), "already reported by Render")
}

func TestScreen_StopReportsRestoreWriteError(t *testing.T) {
	ctx, _ := newSimContext(t)
	cause := errors.New("hangup")
	ctx.out = &failingOut{err: cause, failAt: 2}

	assert.ErrorIs(t, ctx.Stop(), cause)
}
