//go:build !wasm
// +build !wasm

package callbacks

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dialogs"
	"github.com/vcrobe/editarray/dom"
)

const itemPage = `<html><body>
<div id="status" class="pending"></div>
<div id="c-item-0" class="edit-array-item">
  <div id="c-item-0-edit" class="edit-container">
    <input id="a" name="Items[0].A" value="ok">
    <span data-valmsg-for="Items[0].A"></span>
    <input id="b" name="Items[0].B" value="">
    <span data-valmsg-for="Items[0].B"></span>
  </div>
</div>
</body></html>`

// fakeValidator fails every field whose value is empty.
type fakeValidator struct {
	parsed  []string
	checked []string
}

func (v *fakeValidator) Parse(scope *dom.Element) { v.parsed = append(v.parsed, scope.ID()) }

func (v *fakeValidator) Element(field *dom.Element) bool {
	v.checked = append(v.checked, field.ID())
	return field.Value() != ""
}

func parseItem(t *testing.T) (*dom.Document, *dom.Element) {
	t.Helper()
	doc, err := dom.ParseString(itemPage)
	require.NoError(t, err)
	return doc, doc.GetElementByID("c-item-0")
}

func TestValidationGuard_WithValidator(t *testing.T) {
	// Arrange
	doc, item := parseItem(t)
	v := &fakeValidator{}
	guard := ValidationGuard(GuardOptions{
		Validator:       v,
		StatusElementID: "status",
		ValidText:       "All good",
		InvalidText:     "Fix the errors",
		ValidClass:      "ok",
		InvalidClass:    "bad",
	})

	// Act
	res := guard(item)

	// Assert: every field is visited even after the first failure
	assert.Equal(t, false, res)
	assert.Equal(t, []string{"c-item-0-edit"}, v.parsed)
	assert.Equal(t, []string{"a", "b"}, v.checked)
	status := doc.GetElementByID("status")
	assert.Equal(t, "Fix the errors", status.TextContent())
	assert.True(t, status.HasClass("bad"))

	// Act: fix the field
	doc.GetElementByID("b").SetValue("filled")
	res = guard(item)

	// Assert
	assert.Equal(t, true, res)
	assert.Equal(t, "All good", status.TextContent())
	assert.True(t, status.HasClass("ok"))
	assert.False(t, status.HasClass("bad"))
}

func TestValidationGuard_FallsBackToMessages(t *testing.T) {
	doc, item := parseItem(t)
	guard := ValidationGuard(GuardOptions{})

	assert.Equal(t, true, guard(item))

	doc.QuerySelector(`span[data-valmsg-for="Items[0].B"]`).AddClass("field-validation-error")
	assert.Equal(t, false, guard(item))

	assert.Equal(t, true, guard(nil))
}

func TestStatusUpdater(t *testing.T) {
	doc, item := parseItem(t)

	res := StatusUpdater(StatusOptions{ElementID: "status", Text: "Saved", Class: "saved"})(item)
	StatusUpdater(StatusOptions{ElementID: "missing", Text: "x"})(item)

	assert.Nil(t, res)
	status := doc.GetElementByID("status")
	assert.Equal(t, "Saved", status.TextContent())
	assert.True(t, status.HasClass("saved"))
	assert.True(t, status.HasClass("pending"))
}

func TestNotifier(t *testing.T) {
	// Arrange
	var logs bytes.Buffer
	defer console.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))()
	host := &alertRecorder{}
	defer dialogs.SetHost(host)()
	_, item := parseItem(t)
	var toasts []string

	// Act
	Notifier(NotifierOptions{
		Message: "item updated",
		Alert:   true,
		Toast:   func(msg string) { toasts = append(toasts, msg) },
	})(item)

	// Assert
	assert.Contains(t, logs.String(), `msg="item updated c-item-0"`)
	assert.Equal(t, []string{"item updated"}, toasts)
	assert.Equal(t, []string{"item updated"}, host.alerts)
}

func TestConfirmGuard(t *testing.T) {
	host := &alertRecorder{answer: false}
	defer dialogs.SetHost(host)()
	_, item := parseItem(t)

	res := ConfirmGuard("Save {id}?")(item)

	assert.Equal(t, false, res)
	assert.Equal(t, []string{"Save c-item-0?"}, host.confirms)

	host.answer = true
	assert.Equal(t, true, ConfirmGuard("Save?")(item))
}

type alertRecorder struct {
	alerts   []string
	confirms []string
	answer   bool
}

func (r *alertRecorder) Alert(msg string) { r.alerts = append(r.alerts, msg) }

func (r *alertRecorder) Confirm(msg string) bool {
	r.confirms = append(r.confirms, msg)
	return r.answer
}
