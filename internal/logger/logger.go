// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for go-uid-panel.
//
// A process creates one root [Logger] with [NewLogger]. Request handling
// derives request-scoped loggers from it (trace id, then actor id) and
// stores them in the context, where every layer picks them up again with
// [FromContext] or [FromRequest]. Entries that an operator has to act on,
// such as a ledger write lost after the bypass service already changed,
// go through [Logger.ReconciliationRequired] so they can be searched for.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns the JSON logger of a process writing to stdout. role
// names the process ("uid-panel-server", "uidctl") and is put on every entry.
func NewLogger(role string) *Logger {
	return NewLoggerTo(os.Stdout, role)
}

// NewLoggerTo is NewLogger with an explicit destination. The operator CLI
// logs to stderr so that command output on stdout stays clean.
//
// Every entry carries role, a timestamp and the calling function's name in
// the "func" field. The global level is set to debug.
func NewLoggerTo(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can be given more fields without
// touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithActor returns a child logger tagged with the acting user's id.
func (l *Logger) WithActor(actorID int64) *Logger {
	return &Logger{l.With().Int64("actor_id", actorID).Logger()}
}

// FromRequest returns the logger stored in the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, or zerolog's default
// context logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromContextOr returns the logger stored in ctx, or fallback when ctx
// carries none. Work done on behalf of a request keeps its trace_id this way.
func FromContextOr(ctx context.Context, fallback *Logger) *Logger {
	if l := log.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return &Logger{*l}
	}
	if fallback != nil {
		return fallback
	}
	return Nop()
}

// ReconciliationRequired starts an error event for a local write that failed
// after the bypass service had already applied the change. Operators search
// for reconciliation_required=true; op names the operation.
func (l *Logger) ReconciliationRequired(op string) *zerolog.Event {
	return l.Error().
		Bool("reconciliation_required", true).
		Str("op", op)
}
