//go:build !wasm

// Package dialogs shows blocking user dialogs. In the browser they are the
// window.alert and window.confirm boxes; native builds route them to a
// replaceable Host so tools and tests can observe them.
package dialogs

import (
	"sync"

	"github.com/vcrobe/editarray/console"
)

// Host receives dialogs on native builds.
type Host interface {
	Alert(msg string)
	Confirm(msg string) bool
}

// logHost writes alerts to the console and accepts every confirmation.
type logHost struct{}

func (logHost) Alert(msg string) { console.Log("alert:", msg) }

func (logHost) Confirm(msg string) bool {
	console.Log("confirm:", msg)
	return true
}

var (
	mu   sync.RWMutex
	host Host = logHost{}
)

// SetHost replaces the dialog host and returns a function restoring the
// previous one. A nil host restores the console-backed default.
func SetHost(h Host) (restore func()) {
	if h == nil {
		h = logHost{}
	}
	mu.Lock()
	prev := host
	host = h
	mu.Unlock()
	return func() {
		mu.Lock()
		host = prev
		mu.Unlock()
	}
}

// Alert shows msg.
func Alert(msg string) {
	mu.RLock()
	h := host
	mu.RUnlock()
	h.Alert(msg)
}

// Confirm asks a yes/no question.
func Confirm(msg string) bool {
	mu.RLock()
	h := host
	mu.RUnlock()
	return h.Confirm(msg)
}
