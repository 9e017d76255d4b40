// Package logging provides the zerolog-backed logger used across the
// server, adapted to the client's key/value Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind the key/value interface the Monarch
// client expects.
type Logger struct {
	log zerolog.Logger
}

// New creates a logger writing to stderr at the given level. Unknown or
// empty levels default to info. Stdout stays clean for the stdio transport.
func New(level string) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return &Logger{
		log: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// Zerolog returns the underlying zerolog logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.log
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	emit(l.log.Debug(), msg, keysAndValues)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	emit(l.log.Info(), msg, keysAndValues)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	emit(l.log.Warn(), msg, keysAndValues)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	emit(l.log.Error(), msg, keysAndValues)
}

// emit attaches alternating key/value pairs to the event. A trailing
// value-less key is logged under "arg".
func emit(e *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			e = e.Interface("arg", kv[i])
			break
		}

		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}
