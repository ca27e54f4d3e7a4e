// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

// Package diag holds the shared structured logger and rate limiter used
// to report the non-fatal conditions §7 of the specification calls out:
// mutator precedence violations (steal after to_kernel, and vice versa)
// and, optionally, serializer index-assignment tracing.
//
// Logging here intentionally never participates in any error return:
// construction errors (SortMismatch, CompositionMismatch,
// InvalidArgument, EmptySymbol) are reported at the call site via a
// returned error, not diagnosed after the fact through this package.
package diag

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// SetLogger replaces the package-level logger, e.g. with a development
// logger in tests or a configured one from [github.com/pfq-lang/pfq/config].
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the current shared logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Limiter rate-limits a diagnostic so a buggy filter that violates a
// mutator precondition on every packet cannot flood the log. The zero
// value is not ready to use; construct with [NewLimiter].
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter builds a Limiter allowing burst events immediately and then
// eventsPerSec events per second thereafter, mirroring the historical kernel's
// printk_ratelimit() behavior referenced by
// original_source/kernel/linux/pf_q-module.h.
func NewLimiter(eventsPerSec float64, burst int) *Limiter {
	return &Limiter{rl: rate.NewLimiter(rate.Limit(eventsPerSec), burst)}
}

// Allow reports whether a diagnostic may be emitted right now.
func (l *Limiter) Allow() bool {
	if l == nil || l.rl == nil {
		return true
	}
	return l.rl.Allow()
}

// Warn logs msg at warn level with fields if limiter allows it.
func (l *Limiter) Warn(msg string, fields ...zap.Field) {
	if !l.Allow() {
		return
	}
	Logger().Warn(msg, fields...)
}

// TraceIndex logs the descriptor index assigned to symbol during
// serialization, at debug level. A no-op under the production logger's
// default level; enabled by raising the configured log level (see
// [github.com/pfq-lang/pfq/config]).
func TraceIndex(symbol string, index uint) {
	Logger().Debug("assigned descriptor index", zap.String("symbol", symbol), zap.Uint("index", index))
}
