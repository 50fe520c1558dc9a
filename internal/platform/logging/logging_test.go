package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWritesKeyValueLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "test-svc")

	logger.Info("hidden")
	logger.Warn("shown", "op", "lookup")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "service=test-svc")
	assert.Contains(t, out, "op=lookup")
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "verbose", "svc")

	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), `msg="info line"`)
}
