package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zap.AtomicLevel{
		"":        zap.NewAtomicLevelAt(zap.InfoLevel),
		"DEBUG":   zap.NewAtomicLevelAt(zap.DebugLevel),
		"warning": zap.NewAtomicLevelAt(zap.WarnLevel),
		"error":   zap.NewAtomicLevelAt(zap.ErrorLevel),
	} {
		lvl, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want.Level(), lvl)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	log, err := New("debug", false)
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zap.DebugLevel))

	dev, err := New("warn", true)
	require.NoError(t, err)
	require.False(t, dev.Core().Enabled(zap.InfoLevel))

	_, err = New("shouty", false)
	require.Error(t, err)
}
