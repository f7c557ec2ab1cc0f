package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests loading log level.
func TestLogLevel(t *testing.T) {
	in := []struct {
		In       string
		Expected LogLevel
	}{
		{In: "warning", Expected: Warning},
		{In: "warn", Expected: Warning},
		{In: "error", Expected: Error},
		{In: "err", Expected: Error},
		{In: "debug", Expected: Debug},
		{In: " DBG ", Expected: Debug},
		{In: "info", Expected: Info},
		{In: "incorrect", Expected: Info},
	}

	for _, v := range in {
		assert.Equal(t, v.Expected, getLogLevel(v.In), v.In)
	}
}

// Tests level filtering.
func TestLevelAllows(t *testing.T) {
	assert.True(t, Debug.allows(Debug))
	assert.False(t, Info.allows(Debug))
	assert.True(t, Info.allows(Warning))
	assert.False(t, Warning.allows(Info))
	assert.True(t, Warning.allows(Error))
	assert.False(t, Error.allows(Warning))
}

// Tests provider selection.
func TestNewLoggerProvider(t *testing.T) {
	l := NewLoggerProvider(&ConstructLogger{Provider: "logrus", RawConfig: []byte("level: debug\nformat: json")})
	lr, ok := l.(*logrusLogger)
	assert.True(t, ok)
	assert.Equal(t, "debug", lr.log.GetLevel().String())

	l = NewLoggerProvider(&ConstructLogger{Provider: "console", RawConfig: []byte("level: warn"),
		LevelOverride: "error"})
	cl, ok := l.(*consoleLogger)
	assert.True(t, ok)
	assert.Equal(t, Error, cl.level)

	l = NewLoggerProvider(&ConstructLogger{Provider: "unknown", RawConfig: []byte("{{ wrong")})
	_, ok = l.(*consoleLogger)
	assert.True(t, ok)
}

// Tests proper fields allocation.
func TestCorrectFields(t *testing.T) {
	r := withFields("f1", "f1", "f2", "f2")
	assert.Equal(t, 2, len(r))

	r = withFields("f1", "f1", "f2", "f2", "f3")
	assert.Equal(t, 2, len(r))
	assert.Equal(t, "f2", r["f2"])
}
