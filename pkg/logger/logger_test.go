package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel)

	l.Info("loaded", String("path", "train.csv"), Int("rows", 60), Float("mean", 1.5), Bool("strict", true))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "loaded", got["message"])
	assert.Equal(t, "train.csv", got["path"])
	assert.Equal(t, float64(60), got["rows"])
	assert.Equal(t, 1.5, got["mean"])
	assert.Equal(t, true, got["strict"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stderr"})
	assert.Error(t, err)
}

func TestCollectorCountsRepeatedWarnings(t *testing.T) {
	l := Nop()
	c := NewCollector()
	l.AttachCollector(c)

	for i := 0; i < 3; i++ {
		l.Warn("skipping malformed row", Int("line", i+2))
	}
	l.Error("write failed", Error(errors.New("disk full")))
	l.Info("not collected")

	assert.Equal(t, 3, c.Total("warn"))
	assert.Equal(t, 1, c.Total("error"))
	assert.Equal(t, 4, c.Total(""))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "skipping malformed row", entries[0].Message)
	assert.Equal(t, 3, entries[0].Count)
	assert.Equal(t, 2, entries[0].Fields["line"])

	flushed := c.Flush(l)
	assert.Len(t, flushed, 2)
	assert.Zero(t, c.Total(""))

	l.DetachCollector()
	l.Warn("after detach")
	assert.Zero(t, c.Total(""))
}
