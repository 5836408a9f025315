package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var out bytes.Buffer

	l := New(&out, WarnLevel)
	l.Infof("skipping %s", "a.ppm")
	l.Debug("details")
	l.Warnf("cannot open %s", "b.ppm")
	l.Error("failed")

	require.Equal(t, "[WARN] cannot open b.ppm\n[ERROR] failed\n", out.String())
	require.False(t, l.Enabled(InfoLevel))
	require.True(t, l.Enabled(ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("debug"))
	require.Equal(t, WarnLevel, ParseLevel("WARN"))
	require.Equal(t, ErrorLevel, ParseLevel("Error"))
	require.Equal(t, InfoLevel, ParseLevel("verbose"))
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLoggerWith(t *testing.T) {
	var out bytes.Buffer

	l := New(&out, InfoLevel)
	l.With("extract").With("a.ppm").Infof("wrote %d bytes", 36)
	l.Info("done")

	require.Equal(t, "[INFO] extract: a.ppm: wrote 36 bytes\n[INFO] done\n", out.String())
}
