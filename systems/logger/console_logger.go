package logger

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-home-io/ttlock/common"
)

// Default console logger.
type consoleLogger struct {
	sync.Mutex
	level LogLevel
}

// NewConsoleLogger constructs a new console logger.
func NewConsoleLogger(level LogLevel) common.ILoggerProvider {
	return &consoleLogger{
		level: level,
	}
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.output(Debug, msg, withFields(fields...), color.FgCyan)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.output(Info, msg, withFields(fields...), color.FgGreen)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.output(Warning, msg, withFields(fields...), color.FgYellow)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	fields = append(fields, common.LogErrorToken, errString(err))
	p.output(Error, msg, withFields(fields...), color.FgRed)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	fields = append(fields, common.LogErrorToken, errString(err))
	p.output(Error, msg, withFields(fields...), color.FgRed)
	os.Exit(1)
}

// Prepares final string.
func (p *consoleLogger) output(level LogLevel, msg string, fields map[string]string, c color.Attribute) {
	if !p.level.allows(level) {
		return
	}

	p.Lock()
	defer p.Unlock()
	colorPrint(format(time.Now(), msg, fields), c)
}

// Formats message with sorted fields.
func format(now time.Time, msg string, fields map[string]string) string {
	newM := fmt.Sprintf("%s   %s", now.Local().Format(time.StampMilli), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		newM = fmt.Sprintf("%s\n          %s: %s", newM, k, fields[k])
	}

	return newM
}

// Outputs final string.
func colorPrint(msg string, c color.Attribute) {
	msgC := color.New(c)
	//noinspection GoUnhandledErrorResult
	msgC.Println(msg) // nolint: gosec
}

// Nil-safe error message.
func errString(err error) string {
	if nil == err {
		return "<nil>"
	}

	return err.Error()
}
