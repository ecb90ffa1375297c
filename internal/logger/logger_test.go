package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetLogger restores package state after a test.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_Silent_WhenNotVerbose(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())
}

func TestLevels_WriteWhenVerbose(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("d %d", 1)
	Info("i %d", 2)
	Warn("w %d", 3)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] d 1")
	assert.Contains(t, out, "[INFO] i 2")
	assert.Contains(t, out, "[WARN] w 3")
}
