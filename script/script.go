// Package script replays YAML interaction scripts against an EditArray
// document. A script is a list of steps, each naming an action and its
// targets:
//
//	name: add and save an order
//	steps:
//	  - action: add
//	    container: edit-array-orders
//	  - action: set-value
//	    selector: "#Orders_0__Name"
//	    value: Widget
//	  - action: click
//	    selector: "#edit-array-orders-item-0 [data-action=done]"
//	  - action: expect
//	    selector: "[data-display-for=Orders_0__Name]"
//	    text: Widget
//
// Steps run in order and the first failing step stops the run.
package script

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
	"github.com/vcrobe/editarray/editarray"
)

// Actions a step may name.
const (
	ActionClick    = "click"
	ActionAdd      = "add"
	ActionToggle   = "toggle"
	ActionDelete   = "delete"
	ActionCancel   = "cancel"
	ActionMove     = "move"
	ActionSetValue = "set-value"
	ActionRenumber = "renumber"
	ActionExpect   = "expect"
)

var (
	// ErrUnknownAction is returned for a step whose action is not supported.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingArgument is returned when a step lacks a required key.
	ErrMissingArgument = errors.New("missing argument")
	// ErrTargetNotFound is returned when a selector or id matches nothing.
	ErrTargetNotFound = errors.New("target not found")
	// ErrExpectation is returned when an expect step does not hold.
	ErrExpectation = errors.New("expectation failed")
)

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one interaction.
type Step struct {
	Action    string `yaml:"action"`
	Container string `yaml:"container,omitempty"`
	Template  string `yaml:"template,omitempty"`
	Item      string `yaml:"item,omitempty"`
	Selector  string `yaml:"selector,omitempty"`
	Value     string `yaml:"value,omitempty"`
	Offset    int    `yaml:"offset,omitempty"`

	// Expectations, used by expect steps.
	Text  *string `yaml:"text,omitempty"`
	Count *int    `yaml:"count,omitempty"`
	State string  `yaml:"state,omitempty"`
}

// StepError reports which step failed.
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step.Action, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Load decodes a script. Unknown keys are rejected.
func Load(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return s, fmt.Errorf("decode script: %w", err)
	}
	return s, nil
}

// Run executes every step of s against the engine's document.
func Run(eng *editarray.Engine, s Script) error {
	for i, step := range s.Steps {
		if err := runStep(eng, step); err != nil {
			return &StepError{Index: i, Step: step, Err: err}
		}
	}
	return nil
}

func runStep(eng *editarray.Engine, step Step) error {
	doc := eng.Document()
	switch step.Action {
	case ActionClick:
		el, err := target(doc, step)
		if err != nil {
			return err
		}
		el.Click()
	case ActionAdd:
		if step.Container == "" {
			return fmt.Errorf("%w: container", ErrMissingArgument)
		}
		tmpl := step.Template
		if tmpl == "" {
			tmpl = step.Container + "-template"
		}
		if id := eng.AddNewItem(step.Container, tmpl); id == "" {
			console.Warn("script: add produced no item for container", step.Container)
		}
	case ActionToggle, ActionDelete, ActionCancel:
		id, err := itemID(doc, step)
		if err != nil {
			return err
		}
		switch step.Action {
		case ActionToggle:
			eng.ToggleEditMode(id)
		case ActionDelete:
			eng.MarkForDeletion(id)
		default:
			eng.CancelEdit(id)
		}
	case ActionMove:
		id, err := itemID(doc, step)
		if err != nil {
			return err
		}
		container := step.Container
		if container == "" {
			var ok bool
			if container, ok = editarray.GetContainerIDFromItemID(id); !ok {
				return fmt.Errorf("%w: container", ErrMissingArgument)
			}
		}
		eng.MoveItem(container, id, step.Offset)
	case ActionSetValue:
		el, err := target(doc, step)
		if err != nil {
			return err
		}
		el.SetValue(step.Value)
	case ActionRenumber:
		if step.Container == "" {
			return fmt.Errorf("%w: container", ErrMissingArgument)
		}
		eng.RenumberItems(step.Container)
	case ActionExpect:
		return expect(eng, step)
	case "":
		return fmt.Errorf("%w: action", ErrMissingArgument)
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, step.Action)
	}
	return nil
}

// target resolves the element a step acts on: the selector if given,
// otherwise the item id.
func target(doc *dom.Document, step Step) (*dom.Element, error) {
	switch {
	case step.Selector != "":
		if el := doc.QuerySelector(step.Selector); el != nil {
			return el, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, step.Selector)
	case step.Item != "":
		if el := doc.GetElementByID(step.Item); el != nil {
			return el, nil
		}
		return nil, fmt.Errorf("%w: #%s", ErrTargetNotFound, step.Item)
	default:
		return nil, fmt.Errorf("%w: selector or item", ErrMissingArgument)
	}
}

// itemID resolves the item a step names. A selector resolves to the item
// that contains the matched element.
func itemID(doc *dom.Document, step Step) (string, error) {
	if step.Item != "" {
		return step.Item, nil
	}
	el, err := target(doc, step)
	if err != nil {
		return "", err
	}
	item := el.Closest(".edit-array-item")
	if item == nil {
		return "", fmt.Errorf("%w: no item encloses %s", ErrTargetNotFound, step.Selector)
	}
	return item.ID(), nil
}

func expect(eng *editarray.Engine, step Step) error {
	doc := eng.Document()
	if step.Count != nil {
		if step.Selector == "" {
			return fmt.Errorf("%w: selector", ErrMissingArgument)
		}
		if got := len(doc.QuerySelectorAll(step.Selector)); got != *step.Count {
			return fmt.Errorf("%w: %s matched %d elements, want %d", ErrExpectation, step.Selector, got, *step.Count)
		}
	}
	if step.Text != nil {
		el, err := target(doc, step)
		if err != nil {
			return err
		}
		if got := el.TextContent(); got != *step.Text {
			return fmt.Errorf("%w: text %s, want %s", ErrExpectation, strconv.Quote(got), strconv.Quote(*step.Text))
		}
	}
	if step.State != "" {
		id, err := itemID(doc, step)
		if err != nil {
			return err
		}
		if got := eng.State(id).String(); got != step.State {
			return fmt.Errorf("%w: item %s is in %s mode, want %s", ErrExpectation, id, got, step.State)
		}
	}
	if step.Value != "" {
		el, err := target(doc, step)
		if err != nil {
			return err
		}
		if got := el.Value(); got != step.Value {
			return fmt.Errorf("%w: value %s, want %s", ErrExpectation, strconv.Quote(got), strconv.Quote(step.Value))
		}
	}
	return nil
}
