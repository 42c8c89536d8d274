// Package editarray turns server-rendered EditArray markup into an editable,
// reorderable list of records. The document is the only state: every
// operation re-reads positions from the current DOM order, mutates the tree,
// and announces what happened through bubbling custom events so optional
// subsystems (validation, status widgets) can observe or veto it.
//
// Markup contract, in short:
//
//	div#edit-array-{name}.edit-array-container   data-reorder-enabled, data-max-items,
//	                                              data-delete-text, data-undelete-text
//	  div#{container}-items                       the items region
//	    div#{container}-item-{n}.edit-array-item  data-on-done, data-on-update, data-on-delete
//	      input[data-is-deleted-marker]
//	      div#{item}-display.display-container
//	      div#{item}-edit.edit-container
//	  template#{container}-template               one item with __index__ placeholders
//	  button[data-action=add]                     data-container-id, data-template-id
package editarray

import (
	"fmt"
	"strconv"

	"github.com/vcrobe/editarray/callbacks"
	"github.com/vcrobe/editarray/dom"
)

// Custom events fired by the engine. All of them bubble.
const (
	// EventInit fires on each container when the engine initialises.
	EventInit = "editarray:init"
	// EventItemAdded fires on the container after a new item is appended.
	EventItemAdded = "editarray:item-added"
	// EventEditSaving fires on the item before it leaves edit mode. It is
	// cancelable; PreventDefault keeps the item in edit mode.
	EventEditSaving = "editarray:edit-saving"
	// EventEditEntered fires on the item after it enters edit mode.
	EventEditEntered = "editarray:edit-entered"
)

// InitDetail is the Detail of EventInit.
type InitDetail struct {
	Container *dom.Element
}

// ItemAddedDetail is the Detail of EventItemAdded.
type ItemAddedDetail struct {
	Container *dom.Element
	ItemID    string
}

// EditDetail is the Detail of EventEditSaving and EventEditEntered.
type EditDetail struct {
	ItemID        string
	EditContainer *dom.Element
}

const (
	containerSelector   = ".edit-array-container"
	itemSelector        = ".edit-array-item"
	placeholderClass    = "edit-array-placeholder"
	displaySelector     = ".display-container"
	editSelector        = ".edit-container"
	fieldSelector       = "input, select, textarea"
	textInputSelector   = `input[type="text"], input:not([type]), textarea`
	newItemMarkerAttr   = "data-new-item-marker"
	deletedMarkerSel    = "[data-is-deleted-marker]"
	cancelButtonClass   = "edit-array-cancel"
	originalValueAttr   = "data-original-value"
	deletedAttr         = "data-deleted"
	deletedClass        = "deleted"
	editButtonSelector  = `[data-action="edit"], .edit-item-btn`
	deleteButtonSel     = `[data-action="delete"], .delete-item-btn`
	indexPlaceholder    = "__index__"
	newItemMarkerPrefix = "__newItem__"

	attrOnUpdate = "data-on-update"
	attrOnDone   = "data-on-done"
	attrOnDelete = "data-on-delete"

	defaultDeleteText   = "Delete"
	defaultUndeleteText = "Undelete"
	defaultCancelText   = "Cancel"
)

// ItemState is the edit state of an item.
type ItemState int

const (
	// StateMissing means the item is not in the document or has no
	// display/edit pair.
	StateMissing ItemState = iota
	StateDisplay
	StateEdit
)

func (s ItemState) String() string {
	switch s {
	case StateDisplay:
		return "display"
	case StateEdit:
		return "edit"
	default:
		return "missing"
	}
}

// Options configures an Engine.
type Options struct {
	// Registry resolves the callback names found in data-on-* attributes.
	// A nil registry disables callbacks.
	Registry *callbacks.Registry
}

// Engine drives every EditArray container of one document. It keeps no
// copy of item state; the document is authoritative.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	doc      *dom.Document
	registry *callbacks.Registry
	detach   func()
}

// New creates an engine for doc. Call Init to start handling clicks.
func New(doc *dom.Document, opts Options) *Engine {
	return &Engine{
		doc:      doc,
		registry: opts.Registry,
	}
}

// Document returns the document the engine operates on.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Registry returns the callback registry, which may be nil.
func (e *Engine) Registry() *callbacks.Registry {
	return e.registry
}

// ItemID builds the id of the item at index in containerID.
func ItemID(containerID string, index int) string {
	return fmt.Sprintf("%s-item-%d", containerID, index)
}

// ItemCount returns the number of items currently in the container.
func (e *Engine) ItemCount(containerID string) int {
	region := e.itemsRegion(containerID)
	if region == nil {
		return 0
	}
	return len(itemsIn(region))
}

// ItemIDs returns the ids of the container's items in DOM order.
func (e *Engine) ItemIDs(containerID string) []string {
	region := e.itemsRegion(containerID)
	if region == nil {
		return nil
	}
	items := itemsIn(region)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID())
	}
	return ids
}

// State reports whether the item is showing its display or edit container.
func (e *Engine) State(itemID string) ItemState {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return StateMissing
	}
	display, edit := parts(item)
	if display == nil || edit == nil {
		return StateMissing
	}
	if isHidden(edit) {
		return StateDisplay
	}
	return StateEdit
}

func (e *Engine) itemsRegion(containerID string) *dom.Element {
	if containerID == "" {
		return nil
	}
	return e.doc.GetElementByID(containerID + "-items")
}

// itemsIn returns the items directly inside region, placeholders excluded.
func itemsIn(region *dom.Element) []*dom.Element {
	var items []*dom.Element
	for _, child := range region.Children() {
		if child.Matches(itemSelector) && !child.HasClass(placeholderClass) {
			items = append(items, child)
		}
	}
	return items
}

// parts returns the display and edit containers of an item.
func parts(item *dom.Element) (display, edit *dom.Element) {
	id := item.ID()
	display = descendantByID(item, id+"-display")
	if display == nil {
		display = item.QuerySelector(displaySelector)
	}
	edit = descendantByID(item, id+"-edit")
	if edit == nil {
		edit = item.QuerySelector(editSelector)
	}
	return display, edit
}

func placeholderOf(container *dom.Element) *dom.Element {
	if container == nil {
		return nil
	}
	return container.QuerySelector("." + placeholderClass)
}

func (e *Engine) addButton(containerID string) *dom.Element {
	if btn := e.doc.GetElementByID(containerID + "-add"); btn != nil {
		return btn
	}
	return e.doc.QuerySelector(`[data-action="add"]` + attrEquals("data-container-id", containerID))
}

// maxItems returns the configured item limit, if any.
func maxItems(container *dom.Element) (int, bool) {
	raw, ok := container.Attribute("data-max-items")
	if !ok || raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (e *Engine) limitReached(container *dom.Element, containerID string) bool {
	limit, ok := maxItems(container)
	return ok && e.ItemCount(containerID) >= limit
}

// syncAddButton disables the Add button while an unconfirmed new item exists
// or the item limit is reached, and enables it otherwise.
func (e *Engine) syncAddButton(containerID string) {
	btn := e.addButton(containerID)
	if btn == nil {
		return
	}
	container := e.doc.GetElementByID(containerID)
	if container == nil {
		return
	}
	pending := false
	if region := e.itemsRegion(containerID); region != nil {
		pending = region.QuerySelector("["+newItemMarkerAttr+"]") != nil
	}
	btn.SetDisabled(pending || e.limitReached(container, containerID))
}

// invoke calls the callback named by attr on item.
func (e *Engine) invoke(item *dom.Element, attr string) (any, bool) {
	name := item.GetAttribute(attr)
	if name == "" || e.registry == nil {
		return nil, false
	}
	return e.registry.Invoke(name, item)
}

func attrEquals(name, value string) string {
	return "[" + name + "=" + strconv.Quote(value) + "]"
}

func descendantByID(el *dom.Element, id string) *dom.Element {
	for _, d := range el.Descendants() {
		if d.ID() == id {
			return d
		}
	}
	return nil
}
