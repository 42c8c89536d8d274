package editarray

import (
	"strconv"

	"github.com/vcrobe/editarray/dom"
)

// Actions understood by the delegated click handler, read from data-action.
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDone   = "done"
	ActionDelete = "delete"
	ActionCancel = "cancel"
	ActionMove   = "move"
)

// closestSentinel in data-item-id means "the item containing this button".
const closestSentinel = "closest"

// Init wires the engine to the document. The first call attaches the single
// delegated click listener; later calls never attach another one. Every call
// fires EventInit on each container present and re-applies the item limit to
// its Add button.
func (e *Engine) Init() {
	if e.detach == nil {
		e.detach = e.doc.AddEventListener("click", e.handleClick)
	}
	for _, container := range e.doc.QuerySelectorAll(containerSelector) {
		container.DispatchEvent(dom.NewEvent(EventInit, dom.EventInit{
			Bubbles: true,
			Detail:  InitDetail{Container: container},
		}))
		e.syncAddButton(container.ID())
	}
}

// Close detaches the delegated click listener. Init may be called again
// afterwards.
func (e *Engine) Close() {
	if e.detach != nil {
		e.detach()
		e.detach = nil
	}
}

// ResolveItemID returns the item id a button refers to. The sentinel
// "closest" resolves to the nearest enclosing item; any other value is used
// as is. It returns "" when the attribute is missing or no item encloses the
// button.
func ResolveItemID(el *dom.Element) string {
	if el == nil {
		return ""
	}
	v, ok := el.Attribute("data-item-id")
	if !ok {
		return ""
	}
	if v != closestSentinel {
		return v
	}
	item := el.Closest(itemSelector)
	if item == nil {
		return ""
	}
	return item.ID()
}

func (e *Engine) handleClick(ev *dom.Event) {
	if ev.Target == nil {
		return
	}
	trigger := ev.Target.Closest("[data-action]")
	if trigger == nil {
		return
	}

	switch trigger.GetAttribute("data-action") {
	case ActionAdd:
		containerID := trigger.GetAttribute("data-container-id")
		templateID := trigger.GetAttribute("data-template-id")
		if templateID == "" {
			templateID = containerID + "-template"
		}
		e.AddNewItem(containerID, templateID)
	case ActionEdit, ActionDone:
		if id := ResolveItemID(trigger); id != "" {
			e.ToggleEditMode(id)
		}
	case ActionDelete:
		if id := ResolveItemID(trigger); id != "" {
			e.MarkForDeletion(id)
		}
	case ActionCancel:
		// CancelEdit removes new items through RemoveUnsavedItem and
		// restores persisted ones, which are never removed.
		if id := ResolveItemID(trigger); id != "" {
			e.CancelEdit(id)
		}
	case ActionMove:
		id := ResolveItemID(trigger)
		if id == "" {
			return
		}
		containerID := trigger.GetAttribute("data-container-id")
		if containerID == "" {
			containerID, _ = GetContainerIDFromItemID(id)
		}
		direction, err := strconv.Atoi(trigger.GetAttribute("data-direction"))
		if err != nil {
			return
		}
		e.MoveItem(containerID, id, direction)
	}
}
