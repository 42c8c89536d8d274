//go:build js || wasm

package dialogs

import (
	"syscall/js"
)

// Alert shows msg in a blocking browser alert.
func Alert(msg string) {
	js.Global().Call("alert", msg)
}

// Confirm asks the user a yes/no question.
func Confirm(msg string) bool {
	return js.Global().Call("confirm", msg).Bool()
}
