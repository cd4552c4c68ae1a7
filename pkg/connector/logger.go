package connector

import (
	"github.com/sirupsen/logrus"
)

// leveledLogger adapts a logrus entry to retryablehttp's LeveledLogger so the
// transport's messages come out at their own levels instead of as Info lines
// with a level prefix baked into the text.
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Error(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Warn(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Info(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Debug(msg)
}

func (l leveledLogger) withFields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}
