package logger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Tests that output is stable.
func TestFormat(t *testing.T) {
	out := format(time.Now(), "msg", map[string]string{"b": "2", "a": "1"})
	lines := strings.Split(out, "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasSuffix(lines[0], "msg"))
	assert.Equal(t, "a: 1", strings.TrimSpace(lines[1]))
	assert.Equal(t, "b: 2", strings.TrimSpace(lines[2]))
}

// Tests that console logger doesn't panic on nil errors.
func TestConsoleLogger(t *testing.T) {
	l := NewConsoleLogger(Debug)
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn", "odd")
	l.Error("error", nil)
	l.Error("error", errors.New("test"))

	assert.Equal(t, "<nil>", errString(nil))
}
