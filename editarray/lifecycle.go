package editarray

import (
	"strconv"

	"github.com/vcrobe/editarray/callbacks"
	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
)

// AddNewItem appends a new item built from the template and returns its id.
// It returns "" when the container or template is missing, the template is
// empty, or the container's item limit is already reached.
//
// The new item starts in edit mode, carries a new-item marker and a Cancel
// button, takes focus on its first text input and is announced with
// EventItemAdded.
func (e *Engine) AddNewItem(containerID, templateID string) string {
	container := e.doc.GetElementByID(containerID)
	tmpl := e.doc.GetElementByID(templateID)
	if container == nil || tmpl == nil {
		return ""
	}
	region := e.itemsRegion(containerID)
	if region == nil {
		region = container
	}
	if e.limitReached(container, containerID) {
		console.Warn("EditArray: item limit reached for container", containerID)
		e.syncAddButton(containerID)
		return ""
	}

	content := tmpl.TemplateContent()
	if len(content) == 0 {
		return ""
	}
	item := content[0]
	newIndex := len(itemsIn(region))

	instantiate(item, newIndex)
	for _, el := range item.Descendants() {
		instantiate(el, newIndex)
	}
	itemID := ItemID(containerID, newIndex)
	item.SetID(itemID)

	e.wireLegacyButtons(item)

	display, edit := parts(item)
	if display != nil && edit != nil {
		setHidden(edit, false)
		setHidden(display, true)

		marker := e.doc.CreateElement("input")
		marker.SetAttribute("type", "hidden")
		marker.SetAttribute("name", newItemMarkerPrefix+strconv.Itoa(newIndex))
		marker.SetAttribute("value", "true")
		marker.SetAttribute(newItemMarkerAttr, itemID)
		item.AppendChild(marker)
	}

	region.AppendChild(item)
	setHidden(placeholderOf(container), true)
	e.syncAddButton(containerID)

	if edit != nil {
		edit.AppendChild(e.cancelButton(container, func() {
			id := item.ID()
			cid, _ := GetContainerIDFromItemID(id)
			e.RemoveUnsavedItem(id, cid)
		}))
	}

	if input := item.QuerySelector(textInputSelector); input != nil {
		input.Focus()
	}

	container.DispatchEvent(dom.NewEvent(EventItemAdded, dom.EventInit{
		Bubbles: true,
		Detail:  ItemAddedDetail{Container: container, ItemID: itemID},
	}))
	return itemID
}

// wireLegacyButtons attaches direct click handlers to the edit, done and
// delete buttons of older templates. Buttons with a data-action are handled
// by the delegated listener instead and are skipped here.
func (e *Engine) wireLegacyButtons(item *dom.Element) {
	for _, btn := range item.QuerySelectorAll(".edit-item-btn, .done-item-btn, .delete-item-btn") {
		if btn.HasAttribute("data-action") {
			continue
		}
		toggle := !btn.HasClass("delete-item-btn")
		btn.AddEventListener("click", func(*dom.Event) {
			id := item.ID()
			if toggle {
				e.ToggleEditMode(id)
			} else {
				e.MarkForDeletion(id)
			}
		})
	}
}

func (e *Engine) cancelButton(container *dom.Element, onClick func()) *dom.Element {
	text := container.GetAttribute("data-cancel-text")
	if text == "" {
		text = defaultCancelText
	}
	btn := e.doc.CreateElement("button")
	btn.SetAttribute("type", "button")
	btn.SetAttribute("class", "btn btn-secondary "+cancelButtonClass)
	btn.SetTextContent(text)
	btn.AddEventListener("click", func(*dom.Event) { onClick() })
	return btn
}

// ToggleEditMode flips an item between display and edit mode.
//
// Leaving edit mode runs, in order: the onDone callback (a false result
// aborts), the cancelable EventEditSaving (PreventDefault aborts), copying
// field values into the display, swapping visibility, dropping the Cancel
// button and new-item marker, re-enabling Add, and finally the onUpdate
// callback. Entering edit mode cannot be vetoed and fires EventEditEntered.
func (e *Engine) ToggleEditMode(itemID string) {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return
	}
	display, edit := parts(item)
	if display == nil || edit == nil {
		return
	}
	containerID, _ := GetContainerIDFromItemID(itemID)

	if isHidden(edit) {
		e.enterEdit(item, display, edit)
		return
	}

	if res, ok := e.invoke(item, attrOnDone); ok && callbacks.IsFalse(res) {
		return
	}
	saving := dom.NewEvent(EventEditSaving, dom.EventInit{
		Bubbles:    true,
		Cancelable: true,
		Detail:     EditDetail{ItemID: itemID, EditContainer: edit},
	})
	if !item.DispatchEvent(saving) {
		return
	}

	e.UpdateDisplayFromForm(itemID)
	setHidden(display, false)
	setHidden(edit, true)
	confirm(item, edit)
	if containerID != "" {
		e.syncAddButton(containerID)
	}

	e.invoke(item, attrOnUpdate)
}

func (e *Engine) enterEdit(item, display, edit *dom.Element) {
	setHidden(edit, false)
	setHidden(display, true)

	// Persisted items get a Cancel button that throws away the edits made
	// since entering edit mode.
	if item.QuerySelector("["+newItemMarkerAttr+"]") == nil {
		for _, field := range edit.QuerySelectorAll(fieldSelector) {
			field.SetAttribute(originalValueAttr, field.Value())
		}
		if edit.QuerySelector("."+cancelButtonClass) == nil {
			container := item.Closest(containerSelector)
			if container == nil {
				container = item
			}
			edit.AppendChild(e.cancelButton(container, func() { e.CancelEdit(item.ID()) }))
		}
	}

	item.DispatchEvent(dom.NewEvent(EventEditEntered, dom.EventInit{
		Bubbles: true,
		Detail:  EditDetail{ItemID: item.ID(), EditContainer: edit},
	}))
}

// confirm strips everything that marks an item as unsaved or mid-edit.
func confirm(item, edit *dom.Element) {
	for _, btn := range item.QuerySelectorAll("." + cancelButtonClass) {
		btn.Remove()
	}
	for _, marker := range item.QuerySelectorAll("[" + newItemMarkerAttr + "]") {
		marker.Remove()
	}
	for _, field := range edit.QuerySelectorAll("[" + originalValueAttr + "]") {
		field.RemoveAttribute(originalValueAttr)
	}
}

// CancelEdit abandons the current edit. A new, unconfirmed item is removed
// outright. A persisted item gets the field values it had when edit mode was
// entered and returns to display mode without running callbacks.
func (e *Engine) CancelEdit(itemID string) {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return
	}
	containerID, _ := GetContainerIDFromItemID(itemID)
	if item.QuerySelector("["+newItemMarkerAttr+"]") != nil {
		e.RemoveUnsavedItem(itemID, containerID)
		return
	}

	display, edit := parts(item)
	if display == nil || edit == nil || isHidden(edit) {
		return
	}
	for _, field := range edit.QuerySelectorAll("[" + originalValueAttr + "]") {
		field.SetValue(field.GetAttribute(originalValueAttr))
	}
	confirm(item, edit)
	setHidden(display, false)
	setHidden(edit, true)
}

// MarkForDeletion deletes an item. A new, unsaved item is removed from the
// document. A persisted item toggles its deleted state instead: the
// data-deleted attribute, the deleted class, the IsDeleted input, the delete
// button label and the edit button's disabled state all follow. The onDelete
// callback only runs when an item becomes deleted, never on undelete.
func (e *Engine) MarkForDeletion(itemID string) {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return
	}
	containerID, _ := GetContainerIDFromItemID(itemID)
	if item.QuerySelector("["+newItemMarkerAttr+"]") != nil {
		e.RemoveUnsavedItem(itemID, containerID)
		return
	}

	deleted := !item.HasAttribute(deletedAttr)
	if deleted {
		item.SetAttribute(deletedAttr, "true")
	} else {
		item.RemoveAttribute(deletedAttr)
	}
	item.ToggleClass(deletedClass, deleted)

	if marker := item.QuerySelector(deletedMarkerSel); marker != nil {
		marker.SetValue(strconv.FormatBool(deleted))
	}

	deleteText, undeleteText := defaultDeleteText, defaultUndeleteText
	if container := e.doc.GetElementByID(containerID); container != nil {
		if v := container.GetAttribute("data-delete-text"); v != "" {
			deleteText = v
		}
		if v := container.GetAttribute("data-undelete-text"); v != "" {
			undeleteText = v
		}
	}
	if btn := item.QuerySelector(deleteButtonSel); btn != nil {
		if deleted {
			btn.SetTextContent(undeleteText)
		} else {
			btn.SetTextContent(deleteText)
		}
	}
	if btn := item.QuerySelector(editButtonSelector); btn != nil {
		btn.SetDisabled(deleted)
	}

	if deleted {
		e.invoke(item, attrOnDelete)
	}
}

// RemoveUnsavedItem removes an item from the document and renumbers the
// items left behind so indices stay contiguous. The container's placeholder
// reappears once the last item is gone. With a containerID the Add button is
// re-enabled and focused; an empty containerID skips that.
func (e *Engine) RemoveUnsavedItem(itemID, containerID string) {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return
	}
	region := item.Parent()
	container := item.Closest(containerSelector)
	item.Remove()

	if region != nil && len(itemsIn(region)) == 0 {
		setHidden(placeholderOf(container), false)
	}

	renumberID := containerID
	if renumberID == "" && container != nil {
		renumberID = container.ID()
	}
	if e.itemsRegion(renumberID) != nil {
		e.RenumberItems(renumberID)
	}

	if containerID == "" {
		return
	}
	e.syncAddButton(containerID)
	if btn := e.addButton(containerID); btn != nil {
		btn.Focus()
	}
}

// UpdateDisplayFromForm copies each edit field's value into the display
// element whose data-display-for names the field's id. Fields without a
// display element are skipped.
func (e *Engine) UpdateDisplayFromForm(itemID string) {
	item := e.doc.GetElementByID(itemID)
	if item == nil {
		return
	}
	_, edit := parts(item)
	if edit == nil {
		return
	}
	targets := make(map[string]*dom.Element)
	for _, el := range item.QuerySelectorAll("[data-display-for]") {
		key := el.GetAttribute("data-display-for")
		if _, seen := targets[key]; !seen {
			targets[key] = el
		}
	}
	for _, field := range edit.QuerySelectorAll(fieldSelector) {
		id := field.ID()
		if id == "" {
			continue
		}
		if target, ok := targets[id]; ok {
			target.SetTextContent(field.Value())
		}
	}
}
