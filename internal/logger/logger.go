// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog with the conventions used across the service:
// a "role" field naming the binary, the caller's function name under "func",
// and request-scoped child loggers carried in the context.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultClientLogFile is used by NewClientLogger when no path is given.
const DefaultClientLogFile = "secure-vault.log"

type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns a logger appending to logPath, which is resolved
// against the executable's directory when relative. The terminal belongs to
// the command output, so stderr is only used when the file cannot be opened.
func NewClientLogger(role, logPath string) *Logger {
	return newLogger(clientLogOutput(logPath), role)
}

func clientLogOutput(logPath string) io.Writer {
	if logPath == "" {
		logPath = DefaultClientLogFile
	}
	if !filepath.IsAbs(logPath) {
		if exe, err := os.Executable(); err == nil {
			logPath = filepath.Join(filepath.Dir(exe), logPath)
		}
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

func newLogger(out io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = funcName

	return &Logger{
		zerolog.New(out).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

func funcName(pc uintptr, _ string, _ int) string {
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// SetLevel changes the global level. Unknown or empty levels keep the current
// one and return false.
func SetLevel(level string) bool {
	lvl, err := zerolog.ParseLevel(level)
	if level == "" || err != nil {
		return false
	}

	zerolog.SetGlobalLevel(lvl)
	return true
}

func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTraceID returns a child logger that tags every entry with traceID.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str("trace_id", traceID).Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored by a trace ID middleware, or a
// disabled logger when there is none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
