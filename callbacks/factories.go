package callbacks

import (
	"strings"

	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dialogs"
	"github.com/vcrobe/editarray/dom"
)

const (
	fieldSelector      = "input, select, textarea"
	validationMessages = "span[data-valmsg-for]"
	fieldErrorClass    = "field-validation-error"
)

// Validator is the unobtrusive-validation contract a guard can delegate to.
// validation.Validator satisfies it.
type Validator interface {
	// Parse prepares the fields inside scope for validation.
	Parse(scope *dom.Element)
	// Element validates one field and reports whether it passed.
	Element(field *dom.Element) bool
}

// GuardOptions configures ValidationGuard.
type GuardOptions struct {
	// Validator is optional. Without it the guard inspects the validation
	// message spans already present in the item.
	Validator Validator

	// StatusElementID names an element whose text and class reflect the
	// outcome. Empty disables status reporting.
	StatusElementID string
	ValidText       string
	InvalidText     string
	ValidClass      string
	InvalidClass    string
}

// ValidationGuard returns an onDone hook that blocks leaving edit mode while
// the item's edit scope is invalid.
func ValidationGuard(opts GuardOptions) Func {
	return func(item *dom.Element) any {
		if item == nil {
			return true
		}
		scope := item.QuerySelector(".edit-container")
		if scope == nil {
			scope = item
		}

		valid := true
		if opts.Validator != nil {
			opts.Validator.Parse(scope)
			for _, field := range scope.QuerySelectorAll(fieldSelector) {
				// Every field is checked so each one gets its message.
				if !opts.Validator.Element(field) {
					valid = false
				}
			}
		} else {
			for _, span := range scope.QuerySelectorAll(validationMessages) {
				if span.TextContent() != "" || span.HasClass(fieldErrorClass) {
					valid = false
					break
				}
			}
		}

		reportStatus(item.Document(), opts, valid)
		return valid
	}
}

func reportStatus(doc *dom.Document, opts GuardOptions, valid bool) {
	if opts.StatusElementID == "" {
		return
	}
	status := doc.GetElementByID(opts.StatusElementID)
	if status == nil {
		return
	}
	if valid {
		status.SetTextContent(opts.ValidText)
		swapClass(status, opts.InvalidClass, opts.ValidClass)
	} else {
		status.SetTextContent(opts.InvalidText)
		swapClass(status, opts.ValidClass, opts.InvalidClass)
	}
}

func swapClass(el *dom.Element, from, to string) {
	if from != "" {
		el.RemoveClass(from)
	}
	if to != "" {
		el.AddClass(to)
	}
}

// StatusOptions configures StatusUpdater.
type StatusOptions struct {
	ElementID string
	Text      string
	Class     string
}

// StatusUpdater returns a hook that writes a fixed text, and optionally a
// class, into a status element.
func StatusUpdater(opts StatusOptions) Func {
	return func(item *dom.Element) any {
		if item == nil {
			return nil
		}
		status := item.Document().GetElementByID(opts.ElementID)
		if status == nil {
			return nil
		}
		status.SetTextContent(opts.Text)
		if opts.Class != "" {
			status.AddClass(opts.Class)
		}
		return nil
	}
}

// NotifierOptions configures Notifier.
type NotifierOptions struct {
	Message string
	// Alert also shows the message in a dialog.
	Alert bool
	// Toast, when set, receives the message as well.
	Toast func(message string)
}

// Notifier returns a hook that logs a message naming the item and forwards
// it to an optional toast function.
func Notifier(opts NotifierOptions) Func {
	return func(item *dom.Element) any {
		itemID := ""
		if item != nil {
			itemID = item.ID()
		}
		console.Log(opts.Message, itemID)
		if opts.Alert {
			dialogs.Alert(opts.Message)
		}
		if opts.Toast != nil {
			opts.Toast(opts.Message)
		}
		return nil
	}
}

// ConfirmGuard returns an onDone hook that asks the user before an item
// leaves edit mode. A {id} in message is replaced by the item id. Declining
// vetoes the transition.
func ConfirmGuard(message string) Func {
	return func(item *dom.Element) any {
		msg := message
		if item != nil {
			msg = strings.ReplaceAll(msg, "{id}", item.ID())
		}
		return dialogs.Confirm(msg)
	}
}
