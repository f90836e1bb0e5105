package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

// TestContextLogger ensures names and fields attached to a context reach the log entries.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "poller")
	ctx = WithKV(ctx, "cycle", 3)

	InfoKV(ctx, "Status changed", "state", "enabled")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "poller", entries[0].LoggerName)
	require.Equal(t, "Status changed", entries[0].Message)

	fields := entries[0].ContextMap()
	require.EqualValues(t, 3, fields["cycle"])
	require.Equal(t, "enabled", fields["state"])
}

// TestFromContext_FallsBackToGlobal checks that a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestNewWithWriter writes a line through a custom sink.
func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zapcore.InfoLevel)
	l.Debug("hidden")
	l.Infow("visible", "key", "value")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "visible")
	require.Contains(t, buf.String(), "value")
}
