// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger.
package logrusadapter

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	l logrus.FieldLogger
}

func NewLogger(l logrus.FieldLogger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Debug(msg string, ctx ...interface{}) { l.entry(ctx).Debug(msg) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.entry(ctx).Info(msg) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.entry(ctx).Warn(msg) }
func (l *Logger) Error(msg string, ctx ...interface{}) { l.entry(ctx).Error(msg) }

func (l *Logger) entry(ctx []interface{}) *logrus.Entry {
	fields := make(logrus.Fields, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields[fmt.Sprint(ctx[i])] = ctx[i+1]
	}
	return l.l.WithFields(fields)
}
