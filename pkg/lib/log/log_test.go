package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		slog.SetDefault(prev)
		resetLevels()
	})
	return buf
}

func TestLazyLogger_Component(t *testing.T) {
	buf := captureOutput(t)

	l := Logger("core/test")
	l.Info("资源已注册", "resource", "tex-1")

	out := buf.String()
	assert.Contains(t, out, "component=core/test")
	assert.Contains(t, out, "resource=tex-1")
}

func TestLazyLogger_LevelFilter(t *testing.T) {
	buf := captureOutput(t)

	l := Logger("core/quiet")
	l.Debug("不应输出")
	assert.Empty(t, buf.String(), "默认级别为 info")

	SetComponentLevel("core/quiet", LevelDebug)
	l.Debug("应输出")
	assert.Contains(t, buf.String(), "应输出")
}

func TestApplyLevelSpec(t *testing.T) {
	captureOutput(t)

	ApplyLevelSpec("core/budget=debug, core/view=warn ,error,bogus=nope")

	assert.Equal(t, LevelDebug, LevelFor("core/budget"))
	assert.Equal(t, LevelWarn, LevelFor("core/view"))
	assert.Equal(t, LevelError, LevelFor("core/other"))
}

func TestConfigureFromEnv(t *testing.T) {
	captureOutput(t)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv(EnvLevel, "core/scheduler=debug,warn")
	t.Setenv(EnvFormat, "json")
	ConfigureFromEnv()

	assert.Equal(t, LevelDebug, LevelFor("core/scheduler"))
	assert.Equal(t, LevelWarn, LevelFor("core/any"))
	_, ok := slog.Default().Handler().(*slog.JSONHandler)
	require.True(t, ok)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"trace", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc", TruncateID("abc", 8))
	assert.Equal(t, "abcdefgh", TruncateID("abcdefghij", 8))
}
