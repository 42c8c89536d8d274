// Package callbacks holds the named hook functions that EditArray items refer
// to through their data-on-update, data-on-done and data-on-delete
// attributes. Markup only ever carries a callback's name; the function
// itself lives in a Registry that is handed to the engine.
package callbacks

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/vcrobe/editarray/dom"
)

// Func is a hook invoked with the item element it was declared on. Returning
// the boolean false vetoes the operation when the hook acts as a guard; any
// other value, nil included, lets it proceed.
type Func func(item *dom.Element) any

var (
	// ErrInvalidIdentifier is returned when a callback name is not a valid
	// identifier.
	ErrInvalidIdentifier = errors.New("invalid callback identifier")

	// ErrNotCallable is returned when registering a nil function.
	ErrNotCallable = errors.New("callback is not callable")
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsValidIdentifier reports whether name may be used as a callback name:
// letters, digits, underscore and dollar, not starting with a digit.
func IsValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// IsFalse reports whether a hook result is the literal boolean false.
func IsFalse(v any) bool {
	b, ok := v.(bool)
	return ok && !b
}

// Registry maps callback names to functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register stores fn under name, replacing any earlier registration.
func (r *Registry) Register(name string, fn Func) error {
	if !IsValidIdentifier(name) {
		return fmt.Errorf("register %q: %w", name, ErrInvalidIdentifier)
	}
	if fn == nil {
		return fmt.Errorf("register %q: %w", name, ErrNotCallable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// MustRegister is Register for package initialisation code; it panics on a
// bad name or nil function.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Unregister removes name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.funcs, name)
}

// Lookup returns the function registered under name. Names that are not
// identifiers are never looked up.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil || !IsValidIdentifier(name) {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Invoke calls the function registered under name with item. The second
// result is false when nothing was registered, in which case the first is nil.
func (r *Registry) Invoke(name string, item *dom.Element) (any, bool) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return fn(item), true
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compose returns a Func that calls each fn in order with the same item.
// The chain stops, returning false, the first time a function returns the
// literal false. Otherwise it returns true.
func Compose(fns ...Func) Func {
	return func(item *dom.Element) any {
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if IsFalse(fn(item)) {
				return false
			}
		}
		return true
	}
}
