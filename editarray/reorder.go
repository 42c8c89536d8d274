package editarray

import (
	"strings"

	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
)

// MoveItem moves an item offset positions among its siblings and renumbers
// the container. Containers must opt in with data-reorder-enabled="true";
// otherwise a warning naming the container is logged and nothing changes.
// Targets outside the list are ignored, there is no wrap-around.
//
// Focus returns to the moved item's move button for the same direction so
// repeated keyboard moves keep working after the item's id changes.
func (e *Engine) MoveItem(containerID, itemID string, offset int) {
	container := e.doc.GetElementByID(containerID)
	if container == nil {
		return
	}
	if container.GetAttribute("data-reorder-enabled") != "true" {
		console.Warn("EditArray: reordering is disabled for container", containerID)
		return
	}
	if offset == 0 {
		return
	}
	region := e.itemsRegion(containerID)
	if region == nil {
		return
	}

	items := itemsIn(region)
	current := -1
	for i, item := range items {
		if item.ID() == itemID {
			current = i
			break
		}
	}
	if current < 0 {
		return
	}
	target := current + offset
	if target < 0 || target >= len(items) {
		return
	}

	item := items[current]
	if offset < 0 {
		region.InsertBefore(item, items[target])
	} else {
		region.InsertAfter(item, items[target])
	}

	e.RenumberItems(containerID)
	focusMoveButton(item, offset)
}

func focusMoveButton(item *dom.Element, offset int) {
	direction, other := "1", "-1"
	if offset < 0 {
		direction, other = "-1", "1"
	}
	for _, dir := range []string{direction, other} {
		btn := item.QuerySelector(`[data-action="move"]` + attrEquals("data-direction", dir))
		if btn != nil && !btn.Disabled() {
			btn.Focus()
			return
		}
	}
}

// RenumberItems gives every item of the container the id matching its
// position and rewrites the index tokens of all its descendants.
//
// Before an item is rewritten its target id is checked against the rest of
// the document. If another element already owns it, and that element is not
// a sibling still waiting to be renumbered in this pass, the item is left
// untouched and a warning is logged; the remaining items are still processed.
func (e *Engine) RenumberItems(containerID string) {
	region := e.itemsRegion(containerID)
	if region == nil {
		console.Error("EditArray: items region not found:", containerID+"-items")
		return
	}
	items := itemsIn(region)
	for i, item := range items {
		oldID := item.ID()
		newID := ItemID(containerID, i)
		if e.collides(newID, item, items[i+1:]) {
			console.Warn("EditArray: duplicate id detected while renumbering, skipping:", newID)
			continue
		}

		item.SetID(newID)
		for _, el := range item.Descendants() {
			for _, name := range renumberedAttributes {
				UpdateAttributeWithIndex(el, name, i, oldID, newID)
			}
			if onclick := el.GetAttribute("onclick"); oldID != newID && strings.Contains(onclick, oldID) {
				el.SetAttribute("onclick", strings.ReplaceAll(onclick, oldID, newID))
			}
		}
	}
}

// collides reports whether id is held by an element other than item and the
// siblings that will be renumbered after it.
func (e *Engine) collides(id string, item *dom.Element, pending []*dom.Element) bool {
	for _, el := range e.doc.ElementsByID(id) {
		if el == item || containsElement(pending, el) {
			continue
		}
		return true
	}
	return false
}

func containsElement(list []*dom.Element, el *dom.Element) bool {
	for _, candidate := range list {
		if candidate == el {
			return true
		}
	}
	return false
}
