package editarray

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vcrobe/editarray/dom"
)

var (
	bracketIndexRe    = regexp.MustCompile(`\[\d+\]`)
	underscoreIndexRe = regexp.MustCompile(`_\d+__`)
	newItemIndexRe    = regexp.MustCompile(`__newItem__\d+`)
	itemSuffixRe      = regexp.MustCompile(`-item-\d+`)
	itemIDRe          = regexp.MustCompile(`^(.+)-item-\d+$`)
)

// renumberedAttributes are rewritten on every descendant of a renumbered
// item.
var renumberedAttributes = []string{
	"id",
	"name",
	"for",
	"data-id",
	"data-display-for",
	"data-valmsg-for",
	newItemMarkerAttr,
	"aria-describedby",
}

// ReplaceIndexTokens rewrites the index-bearing tokens of value to newIndex.
// When oldID and newID are both non-empty, occurrences of oldID are first
// replaced by newID. Then, independently, every match of each token class is
// rewritten in turn:
//
//	[n]            field names            Orders[3].Name
//	_n__           element ids            Orders_3__Name
//	__newItem__n   new-item marker names
//	-item-n        item id suffixes       edit-array-orders-item-3
//
// Values without any token come back unchanged.
func ReplaceIndexTokens(value string, newIndex int, oldID, newID string) string {
	if oldID != "" && newID != "" && strings.Contains(value, oldID) {
		value = strings.ReplaceAll(value, oldID, newID)
	}
	idx := strconv.Itoa(newIndex)
	value = bracketIndexRe.ReplaceAllLiteralString(value, "["+idx+"]")
	value = underscoreIndexRe.ReplaceAllLiteralString(value, "_"+idx+"__")
	value = newItemIndexRe.ReplaceAllLiteralString(value, newItemMarkerPrefix+idx)
	value = itemSuffixRe.ReplaceAllLiteralString(value, "-item-"+idx)
	return value
}

// UpdateAttributeWithIndex rewrites one attribute of el with
// ReplaceIndexTokens. Nil elements and empty or missing attributes are left
// alone, and the attribute is only written when its value changes. The for
// attribute goes through the label's htmlFor accessor.
func UpdateAttributeWithIndex(el *dom.Element, name string, newIndex int, oldID, newID string) {
	if el == nil {
		return
	}
	var current string
	if name == "for" {
		current = el.HTMLFor()
	} else {
		current = el.GetAttribute(name)
	}
	if current == "" {
		return
	}
	updated := ReplaceIndexTokens(current, newIndex, oldID, newID)
	if updated == current {
		return
	}
	if name == "for" {
		el.SetHTMLFor(updated)
	} else {
		el.SetAttribute(name, updated)
	}
}

// GetContainerIDFromItemID strips the trailing -item-{n} from an item id.
// It returns false when itemID does not have that shape.
func GetContainerIDFromItemID(itemID string) (string, bool) {
	m := itemIDRe.FindStringSubmatch(itemID)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// instantiate replaces the template placeholder in the attributes a template
// item carries, turning a blueprint into item number index.
func instantiate(el *dom.Element, index int) {
	idx := strconv.Itoa(index)
	for _, name := range renumberedAttributes {
		var current string
		if name == "for" {
			current = el.HTMLFor()
		} else {
			current = el.GetAttribute(name)
		}
		if !strings.Contains(current, indexPlaceholder) {
			continue
		}
		updated := strings.ReplaceAll(current, indexPlaceholder, idx)
		if name == "for" {
			el.SetHTMLFor(updated)
		} else {
			el.SetAttribute(name, updated)
		}
	}
}
