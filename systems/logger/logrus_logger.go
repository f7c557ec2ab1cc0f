package logger

import (
	"os"
	"strings"

	"github.com/go-home-io/ttlock/common"
	"github.com/sirupsen/logrus"
)

// Structured logger, backed by logrus.
type logrusLogger struct {
	log *logrus.Logger
}

// NewLogrusLogger constructs a new logrus logger.
// Format is either text or json.
func NewLogrusLogger(level LogLevel, format string) common.ILoggerProvider {
	l := logrus.New()
	l.Out = os.Stdout
	l.SetLevel(toLogrusLevel(level))

	if "json" == strings.ToLower(format) {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	return &logrusLogger{log: l}
}

// Debug sends debug level message.
func (l *logrusLogger) Debug(msg string, fields ...string) {
	l.entry(fields...).Debug(msg)
}

// Info sends info level message.
func (l *logrusLogger) Info(msg string, fields ...string) {
	l.entry(fields...).Info(msg)
}

// Warn sends warning level message.
func (l *logrusLogger) Warn(msg string, fields ...string) {
	l.entry(fields...).Warn(msg)
}

// Error sends error level message.
func (l *logrusLogger) Error(msg string, err error, fields ...string) {
	l.entry(fields...).WithError(err).Error(msg)
}

// Fatal sends fatal level message and exits.
func (l *logrusLogger) Fatal(msg string, err error, fields ...string) {
	l.entry(fields...).WithError(err).Fatal(msg)
}

// Converts key-value pairs into logrus entry.
func (l *logrusLogger) entry(fields ...string) *logrus.Entry {
	f := withFields(fields...)
	lf := make(logrus.Fields, len(f))
	for k, v := range f {
		lf[k] = v
	}

	return l.log.WithFields(lf)
}

// Maps bridge log level onto logrus one.
func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case Debug:
		return logrus.DebugLevel
	case Warning:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
