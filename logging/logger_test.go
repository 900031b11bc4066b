package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "mixins", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.EqualValues(t, 3, rec["mixins"])
}

func TestNewLogger_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "DEBUG", Format: "unknown", Output: &buf})

	logger.Debug("parsing file", "path", "a/B.java")
	assert.Contains(t, buf.String(), "msg=\"parsing file\"")
	assert.Contains(t, buf.String(), "path=a/B.java")
}
