// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Logger struct {
	logger zerolog.Logger
}

// NewLogger accepts a zerolog.Logger as input and returns a new custom pgcast
// logging facade as output.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("module", "pgcast").Logger(),
	}
}

func (l *Logger) Debug(msg string, ctx ...interface{}) { l.log(zerolog.DebugLevel, msg, ctx) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.log(zerolog.InfoLevel, msg, ctx) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.log(zerolog.WarnLevel, msg, ctx) }
func (l *Logger) Error(msg string, ctx ...interface{}) { l.log(zerolog.ErrorLevel, msg, ctx) }

func (l *Logger) log(level zerolog.Level, msg string, ctx []interface{}) {
	fields := make(map[string]interface{}, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields[fmt.Sprint(ctx[i])] = ctx[i+1]
	}
	l.logger.WithLevel(level).Fields(fields).Msg(msg)
}
