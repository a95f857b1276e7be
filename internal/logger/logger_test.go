package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"INFO":   zapcore.InfoLevel,
		" warn ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"":       zapcore.InfoLevel,
		"trace":  zapcore.InfoLevel,
	} {
		assert.Equal(t, want, ParseLevel(in), "%q", in)
	}
}

func TestNew_JSONRecord(t *testing.T) {
	var buf bytes.Buffer
	log := New(zapcore.InfoLevel, &buf)

	log.Debug("не должно попасть")
	log.Info("новое лучшее решение", zap.Int("iteration", 3), zap.Float64("cost", 12.5))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "новое лучшее решение", rec["msg"])
	assert.Equal(t, 3.0, rec["iteration"])
	assert.Equal(t, 12.5, rec["cost"])
	assert.Contains(t, rec, "ts")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	log := FromEnv()
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
