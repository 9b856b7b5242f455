package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries parses every JSON line written to buf
func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"Info", InfoLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{" error ", ErrorLevel},
		{"fatal", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Debug("placing nodes", Count(3))
	logger.Info("graph loaded", Generation(7), SimulationID("sim-1"), Alpha(0.3))
	logger.Warn("graph validation issue", String("issue", "nodes[0].id: required"))
	logger.Error("fetch failed", SourceKind("http"), Error(errors.New("boom")))

	got := entries(t, &buf)
	require.Len(t, got, 4)

	levels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, entry := range got {
		assert.Equal(t, levels[i], entry["level"])
		assert.NotEmpty(t, entry["time"])
	}

	assert.Equal(t, "graph loaded", got[1]["msg"])
	assert.Equal(t, float64(7), got[1]["generation"])
	assert.Equal(t, "sim-1", got[1]["simulation_id"])
	assert.Equal(t, 0.3, got[1]["alpha"])
	assert.Equal(t, "http", got[3]["source"])
	assert.Equal(t, "boom", got[3]["error"])
}

func TestNilErrorAddsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("ok", Error(nil))

	entry := entries(t, &buf)[0]
	_, present := entry["error"]
	assert.False(t, present)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")
	assert.Len(t, entries(t, &buf), 2)

	logger.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, logger.GetLevel())

	buf.Reset()
	logger.Warn("dropped")
	assert.Zero(t, buf.Len())
}

func TestWithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("explorer"), SourceKind("file"))

	child.Info("node clicked", NodeID("alice"))
	entry := entries(t, &buf)[0]
	assert.Equal(t, "explorer", entry["component"])
	assert.Equal(t, "file", entry["source"])
	assert.Equal(t, "alice", entry["node_id"])

	logger.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, child.GetLevel())

	buf.Reset()
	child.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, DebugLevel).Warn("frame dropped", Generation(3))

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "frame dropped")
	assert.Contains(t, out, `"generation": 3`)
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(logger, "fetch", SourceKind("file"))
	op.End()
	op.EndError(errors.New("boom"))

	got := entries(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "INFO", got[0]["level"])
	assert.Equal(t, "ERROR", got[1]["level"])
	assert.Equal(t, "boom", got[1]["error"])
	for _, entry := range got {
		latency, ok := entry["latency"].(string)
		require.True(t, ok, "latency should encode as a duration string")
		_, err := time.ParseDuration(latency)
		assert.NoError(t, err)
	}
	assert.Positive(t, op.Elapsed())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("ignored", Count(1))
	assert.NotNil(t, l.With(Path("/tmp/graph.json")))
	assert.Equal(t, InfoLevel, l.GetLevel())
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(nil)

	Debug("d")
	Info("i")
	Warn("w")
	ErrorLog("e")
	With(String("service", "convograph")).Info("child")

	got := entries(t, &buf)
	require.Len(t, got, 5)
	assert.Equal(t, "ERROR", got[3]["level"])
	assert.Equal(t, "convograph", got[4]["service"])
}

func TestDefaultLoggerLazy(t *testing.T) {
	SetDefaultLogger(nil)
	t.Setenv("LOG_LEVEL", "error")
	defer SetDefaultLogger(nil)

	assert.Equal(t, ErrorLevel, DefaultLogger().GetLevel())
}

func BenchmarkJSONLoggerFiltered(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, ErrorLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("frame", Generation(uint64(i)), Alpha(0.5))
	}
}
