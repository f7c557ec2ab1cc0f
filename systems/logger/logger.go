// Package logger provides bridge logger implementations.
package logger

import (
	"strings"

	"github.com/go-home-io/ttlock/common"
	"gopkg.in/yaml.v2"
)

// LogLevel represents configured log level.
type LogLevel int

const (
	// Info describes info log level.
	Info LogLevel = iota
	// Debug describes debug log level.
	Debug
	// Warning describes warn log level.
	Warning
	// Error describes error log level.
	Error
)

// Allows check whether message with level l should be printed.
func (l LogLevel) allows(msg LogLevel) bool {
	switch l {
	case Debug:
		return true
	case Info:
		return msg != Debug
	case Warning:
		return msg == Warning || msg == Error
	default:
		return msg == Error
	}
}

// Settings has logger configuration.
type Settings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	Provider  string
	RawConfig []byte
	// LevelOverride is taken from the command line and wins over config.
	LevelOverride string
}

// NewLoggerProvider constructs a new logger.
// Unknown providers fall back to console.
func NewLoggerProvider(ctor *ConstructLogger) common.ILoggerProvider {
	settings := &Settings{}
	if len(ctor.RawConfig) > 0 {
		yaml.Unmarshal(ctor.RawConfig, settings) // nolint: gosec, errcheck
	}

	if "" != ctor.LevelOverride {
		settings.Level = ctor.LevelOverride
	}

	level := getLogLevel(settings.Level)
	switch strings.ToLower(ctor.Provider) {
	case "logrus":
		return NewLogrusLogger(level, settings.Format)
	default:
		return NewConsoleLogger(level)
	}
}

// Converts string into log level.
func getLogLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "dbg":
		return Debug
	case "warning", "warn":
		return Warning
	case "error", "err":
		return Error
	default:
		return Info
	}
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) map[string]string {
	fLen := len(fields)
	result := make(map[string]string, int(fLen/2))
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}
