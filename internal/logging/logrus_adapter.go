package logging

import "github.com/sirupsen/logrus"

// LogrusAdapter adapts a logrus logger to the Logger interface.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter wraps an existing logrus logger. A nil logger gets a
// fresh default instance.
func NewLogrusAdapter(logger *logrus.Logger) *LogrusAdapter {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

func (a *LogrusAdapter) withFields(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return a.entry
	}
	logrusFields := make(logrus.Fields, len(fields))
	for _, f := range fields {
		logrusFields[f.Key] = f.Value
	}
	return a.entry.WithFields(logrusFields)
}

// Debug logs a debug-level message.
func (a *LogrusAdapter) Debug(msg string, fields ...Field) {
	a.withFields(fields).Debug(msg)
}

// Info logs an info-level message.
func (a *LogrusAdapter) Info(msg string, fields ...Field) {
	a.withFields(fields).Info(msg)
}

// Warn logs a warning-level message.
func (a *LogrusAdapter) Warn(msg string, fields ...Field) {
	a.withFields(fields).Warn(msg)
}

// Error logs an error-level message.
func (a *LogrusAdapter) Error(msg string, fields ...Field) {
	a.withFields(fields).Error(msg)
}

// WithError returns a new logger with an error field attached.
func (a *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: a.entry.WithError(err)}
}

// WithField returns a new logger with a single field attached.
func (a *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{entry: a.entry.WithField(key, value)}
}
