package pgcast

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// The values for log levels are chosen such that the zero value means that no
// log level was specified.
const (
	LogLevelTrace = 6
	LogLevelDebug = 5
	LogLevelInfo  = 4
	LogLevelWarn  = 3
	LogLevelError = 2
	LogLevelNone  = 1
)

// Logger is the interface used to get diagnostics from pgcast internals. The
// decode fallback path is the only caller. Adapters for common logging
// packages live under log/.
type Logger interface {
	// Log a message at the given level with context key/value pairs
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

// LogLevelFromString converts log level string to constant
//
// Valid levels:
//
//	trace
//	debug
//	info
//	warn
//	error
//	none
func LogLevelFromString(s string) (int, error) {
	switch s {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none":
		return LogLevelNone, nil
	default:
		return 0, errors.New("invalid log level")
	}
}

// stderrLogger is the default diagnostics sink: one line per warning to
// standard error.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, ctx ...interface{}) {}
func (stderrLogger) Info(msg string, ctx ...interface{})  {}

func (stderrLogger) Warn(msg string, ctx ...interface{}) {
	logLine("warn", msg, ctx)
}

func (stderrLogger) Error(msg string, ctx ...interface{}) {
	logLine("error", msg, ctx)
}

func logLine(level, msg string, ctx []interface{}) {
	line := level + ": " + msg
	for i := 0; i+1 < len(ctx); i += 2 {
		line += fmt.Sprintf(" %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(os.Stderr, line)
}
