//go:build !wasm
// +build !wasm

package editarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/dom"
)

func TestReplaceIndexTokens(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		index    int
		oldID    string
		newID    string
		expected string
	}{
		{name: "unchanged index is a no-op", value: "Input[3]", index: 3, expected: "Input[3]"},
		{name: "bracket index", value: "Input[0]", index: 5, expected: "Input[5]"},
		{name: "item id replaced", value: "a-item-0", index: 2, oldID: "a-item-0", newID: "a-item-2", expected: "a-item-2"},
		{name: "nested binding name", value: "Orders[1].Name", index: 0, expected: "Orders[0].Name"},
		{name: "underscore id", value: "Orders_1__Name", index: 4, expected: "Orders_4__Name"},
		{name: "new item marker", value: "__newItem__7", index: 2, expected: "__newItem__2"},
		{name: "display container id", value: "c-item-1-display", index: 0, oldID: "c-item-1", newID: "c-item-0", expected: "c-item-0-display"},
		{name: "item suffix without ids", value: "orders-item-9-edit", index: 3, expected: "orders-item-3-edit"},
		{name: "no tokens", value: "plain", index: 8, expected: "plain"},
		{name: "only one of old and new id", value: "x-item-0", index: 1, oldID: "x-item-0", expected: "x-item-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReplaceIndexTokens(tt.value, tt.index, tt.oldID, tt.newID))
		})
	}
}

func TestGetContainerIDFromItemID(t *testing.T) {
	id, ok := GetContainerIDFromItemID("orders-item-7")
	assert.True(t, ok)
	assert.Equal(t, "orders", id)

	id, ok = GetContainerIDFromItemID("edit-array-orders-item-12")
	assert.True(t, ok)
	assert.Equal(t, "edit-array-orders", id)

	_, ok = GetContainerIDFromItemID("malformed")
	assert.False(t, ok)

	_, ok = GetContainerIDFromItemID("")
	assert.False(t, ok)

	_, ok = GetContainerIDFromItemID("-item-3")
	assert.False(t, ok, "the container part must not be empty")
}

func TestUpdateAttributeWithIndex(t *testing.T) {
	// Arrange
	doc, err := dom.ParseString(`<label id="l" for="Orders_2__Name" data-empty="">x</label>`)
	require.NoError(t, err)
	label := doc.GetElementByID("l")

	// Act
	UpdateAttributeWithIndex(label, "for", 0, "", "")
	UpdateAttributeWithIndex(label, "data-empty", 0, "", "")
	UpdateAttributeWithIndex(label, "name", 0, "", "")
	UpdateAttributeWithIndex(nil, "id", 0, "", "")

	// Assert
	assert.Equal(t, "Orders_0__Name", label.HTMLFor())
	v, ok := label.Attribute("data-empty")
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.False(t, label.HasAttribute("name"), "missing attributes are not created")
}

func TestInstantiate(t *testing.T) {
	doc, err := dom.ParseString(`<input id="Orders___index____Name" name="Orders[__index__].Name" data-valmsg-for="x">`)
	require.NoError(t, err)
	input := doc.QuerySelector("input")

	instantiate(input, 3)

	assert.Equal(t, "Orders_3__Name", input.ID())
	assert.Equal(t, "Orders[3].Name", input.GetAttribute("name"))
	assert.Equal(t, "x", input.GetAttribute("data-valmsg-for"))
}

func TestSetHidden_ToleratesBothVariants(t *testing.T) {
	// Arrange
	doc, err := dom.ParseString(`
		<div id="class-variant" class="edit-container ea-hidden"></div>
		<div id="inline-variant" style="display: none;"></div>`)
	require.NoError(t, err)
	byClass := doc.GetElementByID("class-variant")
	inline := doc.GetElementByID("inline-variant")
	require.True(t, isHidden(byClass))
	require.True(t, isHidden(inline))

	// Act
	setHidden(byClass, false)
	setHidden(inline, false)

	// Assert: each variant keeps its own mechanism
	assert.False(t, isHidden(byClass))
	assert.False(t, byClass.HasClass(hiddenClass))
	assert.False(t, byClass.HasAttribute("style"))
	assert.False(t, isHidden(inline))
	assert.Equal(t, "block", inline.StyleProperty("display"))
	assert.False(t, inline.HasClass(hiddenClass))

	// Act: hide again
	setHidden(byClass, true)
	setHidden(inline, true)

	// Assert
	assert.True(t, byClass.HasClass(hiddenClass))
	assert.Equal(t, "none", inline.StyleProperty("display"))
	assert.True(t, isHidden(nil))
}

func TestSetHidden_FollowsInlineSibling(t *testing.T) {
	// Arrange: legacy markup where only the hidden container carries a style
	doc, err := dom.ParseString(`
		<div id="c-item-0">
			<div id="c-item-0-display" class="display-container"></div>
			<div id="c-item-0-edit" class="edit-container" style="display:none"></div>
		</div>`)
	require.NoError(t, err)
	display := doc.GetElementByID("c-item-0-display")
	edit := doc.GetElementByID("c-item-0-edit")

	// Act
	setHidden(edit, false)
	setHidden(display, true)

	// Assert
	assert.Equal(t, "none", display.StyleProperty("display"))
	assert.False(t, display.HasClass(hiddenClass))
	assert.True(t, isHidden(display))
	assert.Equal(t, "block", edit.StyleProperty("display"))
	assert.False(t, isHidden(edit))
}

func TestItemStateString(t *testing.T) {
	assert.Equal(t, "display", StateDisplay.String())
	assert.Equal(t, "edit", StateEdit.String())
	assert.Equal(t, "missing", StateMissing.String())
}
