//go:build !wasm
// +build !wasm

package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/dom"
)

func TestIsValidIdentifier(t *testing.T) {
	for _, name := range []string{"onDone", "_private", "$scope", "a1", "ok_$"} {
		assert.True(t, IsValidIdentifier(name), name)
	}
	for _, name := range []string{"", "1abc", "alert(1)", "a-b", "a.b", "a b", "x;y"} {
		assert.False(t, IsValidIdentifier(name), name)
	}
}

func TestRegister_Errors(t *testing.T) {
	r := NewRegistry()

	err := r.Register("alert(1)", func(*dom.Element) any { return nil })
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = r.Register("ok", nil)
	assert.ErrorIs(t, err, ErrNotCallable)

	assert.Panics(t, func() { r.MustRegister("bad name", func(*dom.Element) any { return nil }) })
	assert.Empty(t, r.Names())
}

func TestRegistry_InvokeAndLookup(t *testing.T) {
	// Arrange
	r := NewRegistry()
	var seen *dom.Element
	r.MustRegister("record", func(item *dom.Element) any { seen = item; return 42 })
	r.MustRegister("another", func(*dom.Element) any { return nil })
	doc, err := dom.ParseString(`<div id="x-item-0"></div>`)
	require.NoError(t, err)
	item := doc.GetElementByID("x-item-0")

	// Act
	res, ok := r.Invoke("record", item)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, 42, res)
	assert.Same(t, item, seen)
	assert.Equal(t, []string{"another", "record"}, r.Names())

	_, ok = r.Invoke("missing", item)
	assert.False(t, ok)
	_, ok = r.Lookup("not valid")
	assert.False(t, ok)

	r.Unregister("record")
	_, ok = r.Lookup("record")
	assert.False(t, ok)

	var nilRegistry *Registry
	_, ok = nilRegistry.Lookup("record")
	assert.False(t, ok)
}

func TestIsFalse(t *testing.T) {
	assert.True(t, IsFalse(false))
	assert.False(t, IsFalse(true))
	assert.False(t, IsFalse(nil))
	assert.False(t, IsFalse(0))
	assert.False(t, IsFalse("false"))
}

func TestCompose(t *testing.T) {
	var calls []string
	step := func(name string, result any) Func {
		return func(*dom.Element) any {
			calls = append(calls, name)
			return result
		}
	}

	assert.Equal(t, true, Compose(step("a", nil), nil, step("b", "x"))(nil))
	assert.Equal(t, []string{"a", "b"}, calls)

	calls = nil
	assert.Equal(t, false, Compose(step("a", true), step("b", false), step("c", nil))(nil))
	assert.Equal(t, []string{"a", "b"}, calls, "the chain stops at the first false")

	assert.Equal(t, true, Compose()(nil))
}
