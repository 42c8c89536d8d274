//go:build !wasm
// +build !wasm

package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/callbacks"
	"github.com/vcrobe/editarray/dom"
	"github.com/vcrobe/editarray/editarray"
	"github.com/vcrobe/editarray/testcomponents"
	"github.com/vcrobe/editarray/validation"
)

const cid = testcomponents.OrdersContainer

func field(t *testing.T, attrs string) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString(`<form><input id="f" name="F" ` + attrs + `><span data-valmsg-for="F"></span></form>`)
	require.NoError(t, err)
	return doc.GetElementByID("f")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		wantOK  bool
		wantMsg string
	}{
		{name: "required empty", attrs: `required value=""`, wantMsg: "This field is required."},
		{name: "required whitespace", attrs: `required value="  "`, wantMsg: "This field is required."},
		{name: "required custom message", attrs: `data-val-required="Name please" value=""`, wantMsg: "Name please"},
		{name: "required filled", attrs: `required value="x"`, wantOK: true},
		{name: "optional empty skips rules", attrs: `type="email" minlength="3" value=""`, wantOK: true},
		{name: "too short", attrs: `minlength="3" value="ab"`, wantMsg: "The field has an invalid length."},
		{name: "too long", attrs: `maxlength="3" data-val-length="Max 3" value="abcd"`, wantMsg: "Max 3"},
		{name: "length ok", attrs: `minlength="2" maxlength="4" value="abc"`, wantOK: true},
		{name: "email", attrs: `type="email" value="nope"`, wantMsg: "Please enter a valid email address."},
		{name: "email ok", attrs: `type="email" value="ada@example.com"`, wantOK: true},
		{name: "url", attrs: `type="url" value="not a url"`, wantMsg: "Please enter a valid URL."},
		{name: "number", attrs: `type="number" value="12a"`, wantMsg: "Please enter a number."},
		{name: "number ok", attrs: `type="number" value="-1.5"`, wantOK: true},
		{name: "below min", attrs: `type="number" min="1" value="0"`, wantMsg: "The value is out of range."},
		{name: "above max", attrs: `type="number" max="10" data-val-range="1 to 10" value="11"`, wantMsg: "1 to 10"},
		{name: "in range", attrs: `type="number" min="1" max="10" value="10"`, wantOK: true},
		{name: "pattern is anchored", attrs: `pattern="[a-z]+" value="abc1"`, wantMsg: "The value does not match the required format."},
		{name: "pattern ok", attrs: `pattern="[a-z]+" value="abc"`, wantOK: true},
		{name: "unobtrusive pattern", attrs: `data-val-regex-pattern="\d{3}" data-val-regex="Three digits" value="12"`, wantMsg: "Three digits"},
		{name: "broken pattern", attrs: `pattern="(" value="x"`, wantMsg: "The field has an invalid constraint."},
	}

	v := validation.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := v.Check(field(t, tt.attrs))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestElement_WritesMessages(t *testing.T) {
	// Arrange
	v := validation.New()
	f := field(t, `required value=""`)
	span := f.Document().QuerySelector("span")

	// Act
	ok := v.Element(f)

	// Assert
	assert.False(t, ok)
	assert.True(t, f.HasClass("input-validation-error"))
	assert.Equal(t, "This field is required.", span.TextContent())
	assert.True(t, span.HasClass("field-validation-error"))

	// Act: fix and re-validate
	f.SetValue("x")
	ok = v.Element(f)

	// Assert
	assert.True(t, ok)
	assert.False(t, f.HasClass("input-validation-error"))
	assert.True(t, f.HasClass("input-validation-valid"))
	assert.Empty(t, span.TextContent())
	assert.True(t, span.HasClass("field-validation-valid"))
}

func TestElement_SkipsHiddenAndDisabled(t *testing.T) {
	v := validation.New()

	assert.True(t, v.Element(field(t, `type="hidden" required value=""`)))
	assert.True(t, v.Element(field(t, `disabled required value=""`)))
	assert.True(t, v.Element(nil))
}

// TestAttach_VetoesInvalidSave wires the validator to a rendered widget and
// checks that an invalid edit container cannot be saved.
func TestAttach_VetoesInvalidSave(t *testing.T) {
	// Arrange
	opts := testcomponents.OrdersOptions()
	opts.OnUpdate = "updated"
	h := testcomponents.NewHarnessFromOptions(t, opts)
	updates := 0
	h.Register("updated", func(*dom.Element) any { updates++; return nil })
	detach := validation.Attach(h.Doc, validation.New())

	// Act
	itemID := h.Engine.AddNewItem(cid, cid+"-template")
	h.Click("#" + itemID + ` [data-action="done"]`)

	// Assert
	assert.Equal(t, editarray.StateEdit, h.Engine.State(itemID))
	assert.Equal(t, 0, updates)
	msg := h.Find(`span[data-valmsg-for="Orders[0].Name"]`)
	assert.Equal(t, "This field is required.", msg.TextContent())

	// Act: fill in the required field
	h.El("Orders_0__Name").SetValue("Widget")
	h.Click("#" + itemID + ` [data-action="done"]`)

	// Assert
	assert.Equal(t, editarray.StateDisplay, h.Engine.State(itemID))
	assert.Equal(t, 1, updates)
	assert.Empty(t, msg.TextContent())

	// Act: once detached, invalid data goes through
	detach()
	h.Engine.ToggleEditMode(itemID)
	h.El("Orders_0__Name").SetValue("")
	h.Engine.ToggleEditMode(itemID)
	assert.Equal(t, editarray.StateDisplay, h.Engine.State(itemID))
}

func TestAttach_ResetsMessagesOnEditEntered(t *testing.T) {
	// Arrange
	h := testcomponents.NewHarnessFromOptions(t, testcomponents.OrdersOptions("first"))
	v := validation.New()
	defer validation.Attach(h.Doc, v)()
	itemID := cid + "-item-0"
	h.Engine.ToggleEditMode(itemID)
	h.El("Orders_0__Name").SetValue("")
	h.Engine.ToggleEditMode(itemID)
	require.Equal(t, editarray.StateEdit, h.Engine.State(itemID))
	msg := h.Find(`span[data-valmsg-for="Orders[0].Name"]`)
	require.NotEmpty(t, msg.TextContent())

	// Act: cancel and enter edit mode again
	h.Engine.CancelEdit(itemID)
	h.Engine.ToggleEditMode(itemID)

	// Assert
	assert.Equal(t, "first", h.El("Orders_0__Name").Value())
	assert.Empty(t, msg.TextContent())
	assert.True(t, msg.HasClass("field-validation-valid"))
}

func TestValidator_AsGuardValidator(t *testing.T) {
	// Arrange
	opts := testcomponents.OrdersOptions("first")
	opts.OnDone = "validItem"
	h := testcomponents.NewHarnessFromOptions(t, opts)
	h.Register("validItem", callbacks.ValidationGuard(callbacks.GuardOptions{Validator: validation.New()}))
	itemID := cid + "-item-0"

	// Act
	h.Engine.ToggleEditMode(itemID)
	h.El("Orders_0__Quantity").SetValue("0")
	h.Engine.ToggleEditMode(itemID)

	// Assert
	assert.Equal(t, editarray.StateEdit, h.Engine.State(itemID))
	assert.Equal(t, "The value is out of range.", h.Find(`span[data-valmsg-for="Orders[0].Quantity"]`).TextContent())
}
