package editarray

import (
	"strings"

	"github.com/vcrobe/editarray/dom"
)

// hiddenClass is the class the current renderer uses to hide containers.
// Older markup hides them with an inline display style instead.
const hiddenClass = "ea-hidden"

// isHidden reports whether el is hidden by either mechanism.
func isHidden(el *dom.Element) bool {
	if el == nil {
		return true
	}
	return el.HasClass(hiddenClass) || el.StyleProperty("display") == "none"
}

// setHidden hides or shows el. Elements that carry an inline display
// declaration, or whose display/edit sibling does, use the inline style;
// everything else uses the hidden class.
func setHidden(el *dom.Element, hidden bool) {
	if el == nil {
		return
	}
	inline := usesInlineDisplay(el)
	if hidden {
		if inline {
			el.SetStyleProperty("display", "none")
			el.RemoveClass(hiddenClass)
		} else {
			el.AddClass(hiddenClass)
		}
		return
	}
	el.RemoveClass(hiddenClass)
	if inline {
		el.SetStyleProperty("display", "block")
	}
}

func usesInlineDisplay(el *dom.Element) bool {
	if el.StyleProperty("display") != "" {
		return true
	}
	if el.HasClass(hiddenClass) {
		return false
	}
	parent := el.Parent()
	if parent == nil {
		return false
	}
	for _, sibling := range parent.Children() {
		if sibling == el || !isPairContainer(sibling) {
			continue
		}
		if sibling.StyleProperty("display") != "" {
			return true
		}
	}
	return false
}

// isPairContainer reports whether el is the display or edit container of an
// item, matched by class or by the -display/-edit id suffix.
func isPairContainer(el *dom.Element) bool {
	if el.Matches(displaySelector) || el.Matches(editSelector) {
		return true
	}
	id := el.ID()
	return strings.HasSuffix(id, "-display") || strings.HasSuffix(id, "-edit")
}
