// Package zapadapter provides a logger that writes to a go.uber.org/zap.Logger.
package zapadapter

import (
	"go.uber.org/zap"
)

type Logger struct {
	logger *zap.SugaredLogger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Logger) Debug(msg string, ctx ...interface{}) { l.logger.Debugw(msg, ctx...) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.logger.Infow(msg, ctx...) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.logger.Warnw(msg, ctx...) }
func (l *Logger) Error(msg string, ctx ...interface{}) { l.logger.Errorw(msg, ctx...) }
