//go:build js || wasm

package console

import (
	"syscall/js"
)

// Log writes to the browser console.
func Log(args ...any) {
	call("log", args)
}

// Warn writes a warning to the browser console.
func Warn(args ...any) {
	call("warn", args)
}

// Error writes an error to the browser console.
func Error(args ...any) {
	call("error", args)
}

func call(method string, args []any) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return
	}
	console.Call(method, args...)
}
