package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/fatih/color"
)

// threshold is the process-wide logging level. Loggers consult it on every
// call, so changing it with SetLevel takes effect for all existing Logger
// and Sublogger instances immediately.
var threshold atomic.Uint32

func init() {
	threshold.Store(uint32(LevelInfo))
}

// SetLevel sets the process-wide logging threshold. Calls below this level
// are no-ops.
func SetLevel(level Level) {
	threshold.Store(uint32(level))
}

// CurrentLevel returns the process-wide logging threshold.
func CurrentLevel() Level {
	return Level(threshold.Load())
}

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end of
// a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	w.buffer = append(w.buffer, buffer...)

	var processed int
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		processed += index + 1
		remaining = remaining[index+1:]
	}

	if processed > 0 {
		leftover := len(w.buffer) - processed
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}
		w.buffer = w.buffer[:leftover]
	}

	return len(buffer), nil
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It respects the
// process-wide level set by SetLevel and is safe for concurrent use.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
}

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(calldepth, line)
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && CurrentLevel() >= level
}

// Print logs information unconditionally, with semantics equivalent to
// fmt.Print.
func (l *Logger) Print(v ...any) {
	if l == nil {
		return
	}
	l.output(3, fmt.Sprint(v...))
}

// Printf logs information unconditionally, with semantics equivalent to
// fmt.Printf.
func (l *Logger) Printf(format string, v ...any) {
	if l == nil {
		return
	}
	l.output(3, fmt.Sprintf(format, v...))
}

// Writer returns an io.Writer that writes lines using Print.
func (l *Logger) Writer() io.Writer {
	if l == nil {
		return io.Discard
	}
	return &writer{callback: func(s string) { l.Print(s) }}
}

// Info logs information with semantics equivalent to fmt.Print, but only if
// the process-wide level is at least LevelInfo.
func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Infof logs information with semantics equivalent to fmt.Printf, but only
// if the process-wide level is at least LevelInfo.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Debug logs information with semantics equivalent to fmt.Print, but only if
// the process-wide level is at least LevelDebug.
func (l *Logger) Debug(v ...any) {
	if l.enabled(LevelDebug) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Debugf logs information with semantics equivalent to fmt.Printf, but only
// if the process-wide level is at least LevelDebug.
func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Trace logs information with semantics equivalent to fmt.Print, but only if
// the process-wide level is at least LevelTrace. The encoder uses this for
// per-block scan events, which are far too frequent for LevelDebug.
func (l *Logger) Trace(v ...any) {
	if l.enabled(LevelTrace) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Tracef logs information with semantics equivalent to fmt.Printf, but only
// if the process-wide level is at least LevelTrace.
func (l *Logger) Tracef(format string, v ...any) {
	if l.enabled(LevelTrace) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Warn logs error information with a warning prefix and yellow color, if the
// process-wide level is at least LevelWarn.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.output(3, color.YellowString("Warning: %v", err))
	}
}

// Warnf logs a formatted warning message, if the process-wide level is at
// least LevelWarn.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.output(3, color.YellowString("Warning: "+format, v...))
	}
}

// Error logs error information with an error prefix and red color, if the
// process-wide level is at least LevelError.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.output(3, color.RedString("Error: %v", err))
	}
}

// Errorf logs a formatted error message, if the process-wide level is at
// least LevelError.
func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.output(3, color.RedString("Error: "+format, v...))
	}
}
