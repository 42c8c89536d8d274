//go:build !wasm
// +build !wasm

// Package console is the logging seam shared by every package in the module.
// In the browser it forwards to window.console; native builds forward to a
// log/slog logger so warnings raised by guard rejections stay observable in
// tools and tests.
package console

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// SetLogger replaces the logger used by Log, Warn and Error and returns a
// function restoring the previous one.
func SetLogger(l *slog.Logger) (restore func()) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	prev := current.Swap(l)
	return func() { current.Store(prev) }
}

// Logger returns the logger currently in use.
func Logger() *slog.Logger {
	return current.Load()
}

// Log writes an informational message.
func Log(args ...any) {
	current.Load().Info(join(args))
}

// Warn writes a warning.
func Warn(args ...any) {
	current.Load().Warn(join(args))
}

// Error writes an error.
func Error(args ...any) {
	current.Load().Error(join(args))
}

// join formats args the way the browser console prints them: space separated.
func join(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
