package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: false, Writer: &buf})
	l.Error("dropped")
	require.Empty(t, buf.String())
}

func TestNew_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: true, Writer: &buf, Level: slog.LevelWarn})

	l.Info("hidden")
	require.Empty(t, buf.String())

	l.Warn("double free", "handle", "h(1:0)")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "handle=h(1:0)")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: true, Writer: &buf, Level: slog.LevelDebug, JSON: true})
	l.Debug("slot appended", "pos", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "slot appended", rec["msg"])
	require.Equal(t, "DEBUG", rec["level"])
	require.EqualValues(t, 3, rec["pos"])
}

func TestInit_ReplacesGlobal(t *testing.T) {
	orig := L
	t.Cleanup(func() { L = orig })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf})
	L.Info("hello")
	require.Contains(t, buf.String(), "msg=hello")

	Init(Options{})
	L.Error("gone")
	require.NotContains(t, buf.String(), "gone")
}
