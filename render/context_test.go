package render

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{
		"":      BackendTcell,
		"tcell": BackendTcell,
		"ANSI":  BackendANSI,
		" ansi": BackendANSI,
	} {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBackend("notcurses")
	assert.Error(t, err)
}

func TestOpen_NotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	for _, b := range []Backend{BackendTcell, BackendANSI} {
		ctx, err := Open(b, Options{Out: f, TermType: "xterm-256color"})
		assert.ErrorIs(t, err, ErrNotTerminal, string(b))
		assert.Nil(t, ctx, string(b))
	}
}

func TestOpen_UnsupportedTermType(t *testing.T) {
	for _, b := range []Backend{BackendTcell, BackendANSI} {
		ctx, err := Open(b, Options{TermType: "dumb"})
		assert.ErrorIs(t, err, ErrUnsupported, string(b))
		assert.Nil(t, ctx, string(b))
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	ctx, err := Open(Backend("vt52"), Options{})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Nil(t, ctx)
}
