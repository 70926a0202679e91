package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Debug("allowing access", zap.String("path", "/usr"))

	out := buf.String()
	assert.Contains(t, out, "debug")
	assert.Contains(t, out, "process-wrapper")
	assert.Contains(t, out, "allowing access")
	assert.Contains(t, out, `"path": "/usr"`)
}

func TestQuietWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("allowing access")
	l.Info("created ruleset")
	assert.Empty(t, buf.String())

	l.Warn("landlock unsupported")
	assert.Contains(t, buf.String(), "landlock unsupported")
}
