// Package validation checks EditArray fields against their HTML5 constraint
// attributes (and the data-val-* attributes emitted for unobtrusive
// validation) and plugs into the engine through its custom events: fields
// are reset when containers initialise, items are added or edit mode is
// entered, and an invalid edit container vetoes editarray:edit-saving.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
	"github.com/vcrobe/editarray/editarray"
)

const (
	fieldSelector = "input, select, textarea"

	fieldErrorClass   = "field-validation-error"
	fieldValidClass   = "field-validation-valid"
	inputErrorClass   = "input-validation-error"
	inputValidClass   = "input-validation-valid"
	defaultRequired   = "This field is required."
	defaultLength     = "The field has an invalid length."
	defaultEmail      = "Please enter a valid email address."
	defaultURL        = "Please enter a valid URL."
	defaultNumber     = "Please enter a number."
	defaultRange      = "The value is out of range."
	defaultPattern    = "The value does not match the required format."
	defaultUnparsable = "The field has an invalid constraint."
)

// Validator validates form controls in place, writing messages into the
// span[data-valmsg-for] element that names each field.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Parse clears earlier results for every field inside scope so stale
// messages do not survive a re-render or a freshly added item.
func (v *Validator) Parse(scope *dom.Element) {
	if scope == nil {
		return
	}
	for _, field := range validatable(scope) {
		mark(field, "", true)
	}
}

// Element validates one field, updates its message and reports whether it
// passed.
func (v *Validator) Element(field *dom.Element) bool {
	if field == nil || !isValidatable(field) {
		return true
	}
	msg, ok := v.Check(field)
	mark(field, msg, ok)
	return ok
}

// Validate validates every field inside scope. All fields are visited so
// each gets its message; the result is true only if all pass.
func (v *Validator) Validate(scope *dom.Element) bool {
	if scope == nil {
		return true
	}
	valid := true
	for _, field := range validatable(scope) {
		if !v.Element(field) {
			valid = false
		}
	}
	return valid
}

// Check evaluates the constraints of field without touching the document.
// It returns the message of the first failing constraint.
func (v *Validator) Check(field *dom.Element) (string, bool) {
	value := field.Value()

	required := field.HasAttribute("required") || field.HasAttribute("data-val-required")
	if required && v.validate.Var(strings.TrimSpace(value), "required") != nil {
		return message(field, "data-val-required", defaultRequired), false
	}
	if value == "" {
		return "", true
	}

	if n, ok := intAttr(field, "minlength", "data-val-length-min"); ok {
		if v.validate.Var(value, fmt.Sprintf("min=%d", n)) != nil {
			return message(field, "data-val-length", defaultLength), false
		}
	}
	if n, ok := intAttr(field, "maxlength", "data-val-length-max"); ok {
		if v.validate.Var(value, fmt.Sprintf("max=%d", n)) != nil {
			return message(field, "data-val-length", defaultLength), false
		}
	}

	switch strings.ToLower(field.GetAttribute("type")) {
	case "email":
		if v.validate.Var(value, "email") != nil {
			return message(field, "data-val-email", defaultEmail), false
		}
	case "url":
		if v.validate.Var(value, "url") != nil {
			return message(field, "data-val-url", defaultURL), false
		}
	case "number", "range":
		if v.validate.Var(value, "numeric") != nil {
			return message(field, "data-val-number", defaultNumber), false
		}
	}
	if field.HasAttribute("data-val-email") && v.validate.Var(value, "email") != nil {
		return message(field, "data-val-email", defaultEmail), false
	}

	if msg, ok := v.checkRange(field, value); !ok {
		return msg, false
	}

	if pattern := firstAttr(field, "pattern", "data-val-regex-pattern"); pattern != "" {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			console.Warn("validation: invalid pattern on field", field.GetAttribute("name"), err.Error())
			return defaultUnparsable, false
		}
		if !re.MatchString(value) {
			return message(field, "data-val-regex", defaultPattern), false
		}
	}
	return "", true
}

func (v *Validator) checkRange(field *dom.Element, value string) (string, bool) {
	lo := firstAttr(field, "min", "data-val-range-min")
	hi := firstAttr(field, "max", "data-val-range-max")
	if lo == "" && hi == "" {
		return "", true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return message(field, "data-val-number", defaultNumber), false
	}
	if lo != "" {
		if _, err := strconv.ParseFloat(lo, 64); err == nil && v.validate.Var(f, "gte="+lo) != nil {
			return message(field, "data-val-range", defaultRange), false
		}
	}
	if hi != "" {
		if _, err := strconv.ParseFloat(hi, 64); err == nil && v.validate.Var(f, "lte="+hi) != nil {
			return message(field, "data-val-range", defaultRange), false
		}
	}
	return "", true
}

// Attach subscribes v to the engine's events on doc and returns a function
// that unsubscribes it.
func Attach(doc *dom.Document, v *Validator) (detach func()) {
	removers := []func(){
		doc.AddEventListener(editarray.EventInit, func(ev *dom.Event) {
			if d, ok := ev.Detail.(editarray.InitDetail); ok {
				v.Parse(d.Container)
			}
		}),
		doc.AddEventListener(editarray.EventItemAdded, func(ev *dom.Event) {
			if d, ok := ev.Detail.(editarray.ItemAddedDetail); ok {
				v.Parse(doc.GetElementByID(d.ItemID))
			}
		}),
		doc.AddEventListener(editarray.EventEditEntered, func(ev *dom.Event) {
			if d, ok := ev.Detail.(editarray.EditDetail); ok {
				v.Parse(d.EditContainer)
			}
		}),
		doc.AddEventListener(editarray.EventEditSaving, func(ev *dom.Event) {
			d, ok := ev.Detail.(editarray.EditDetail)
			if !ok {
				return
			}
			if !v.Validate(d.EditContainer) {
				ev.PreventDefault()
			}
		}),
	}
	return func() {
		for _, remove := range removers {
			remove()
		}
	}
}

func validatable(scope *dom.Element) []*dom.Element {
	var out []*dom.Element
	for _, field := range scope.QuerySelectorAll(fieldSelector) {
		if isValidatable(field) {
			out = append(out, field)
		}
	}
	return out
}

func isValidatable(field *dom.Element) bool {
	if field.Disabled() {
		return false
	}
	switch strings.ToLower(field.GetAttribute("type")) {
	case "hidden", "button", "submit", "reset", "image":
		return false
	}
	return true
}

// mark writes the outcome onto the field and its message span.
func mark(field *dom.Element, msg string, ok bool) {
	field.ToggleClass(inputErrorClass, !ok)
	field.ToggleClass(inputValidClass, ok)

	name := field.GetAttribute("name")
	if name == "" {
		return
	}
	span := field.Document().QuerySelector(`span[data-valmsg-for=` + strconv.Quote(name) + `]`)
	if span == nil {
		return
	}
	span.SetTextContent(msg)
	span.ToggleClass(fieldErrorClass, !ok)
	span.ToggleClass(fieldValidClass, ok)
}

func message(field *dom.Element, attr, fallback string) string {
	if msg := field.GetAttribute(attr); msg != "" {
		return msg
	}
	return fallback
}

func firstAttr(field *dom.Element, names ...string) string {
	for _, name := range names {
		if v := field.GetAttribute(name); v != "" {
			return v
		}
	}
	return ""
}

func intAttr(field *dom.Element, names ...string) (int, bool) {
	raw := firstAttr(field, names...)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
