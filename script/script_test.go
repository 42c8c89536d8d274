//go:build !wasm
// +build !wasm

package script_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/script"
	"github.com/vcrobe/editarray/testcomponents"
)

const addAndSave = `
name: add and save an order
steps:
  - action: add
    container: edit-array-orders
  - action: expect
    item: edit-array-orders-item-0
    state: edit
  - action: set-value
    selector: "#Orders_0__Name"
    value: Widget
  - action: click
    selector: "#edit-array-orders-item-0 [data-action=done]"
  - action: expect
    selector: "[data-display-for=Orders_0__Name]"
    text: Widget
  - action: expect
    selector: "#edit-array-orders-items > .edit-array-item"
    count: 1
  - action: expect
    item: edit-array-orders-item-0
    state: display
`

func TestLoadAndRun_AddAndSave(t *testing.T) {
	// Arrange
	h := testcomponents.NewHarnessFromOptions(t, testcomponents.OrdersOptions())
	s, err := script.Load(strings.NewReader(addAndSave))
	require.NoError(t, err)
	require.Len(t, s.Steps, 7)

	// Act
	err = script.Run(h.Engine, s)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Widget", h.El("Orders_0__Name").Value())
	assert.Nil(t, h.Doc.QuerySelector("[data-new-item-marker]"))
}

func TestRun_MoveDerivesContainer(t *testing.T) {
	h := testcomponents.NewHarnessFromOptions(t, testcomponents.OrdersOptions("first", "second"))
	s := script.Script{Steps: []script.Step{
		{Action: script.ActionMove, Item: "edit-array-orders-item-0", Offset: 1},
		{Action: script.ActionExpect, Selector: "#Orders_0__Name", Value: "second"},
		{Action: script.ActionExpect, Selector: "#Orders_1__Name", Value: "first"},
	}}

	require.NoError(t, script.Run(h.Engine, s))
}

func TestRun_DeleteByEnclosedSelector(t *testing.T) {
	h := testcomponents.NewHarnessFromOptions(t, testcomponents.OrdersOptions("first"))
	s := script.Script{Steps: []script.Step{
		{Action: script.ActionDelete, Selector: "#Orders_0__Name"},
		{Action: script.ActionExpect, Selector: "[data-is-deleted-marker]", Value: "true"},
	}}

	require.NoError(t, script.Run(h.Engine, s))
	assert.True(t, h.El("edit-array-orders-item-0").HasClass("deleted"))
}

func TestRun_AddAtLimitWarns(t *testing.T) {
	opts := testcomponents.OrdersOptions("first")
	opts.MaxItems = 1
	h := testcomponents.NewHarnessFromOptions(t, opts)

	err := script.Run(h.Engine, script.Script{Steps: []script.Step{
		{Action: script.ActionAdd, Container: testcomponents.OrdersContainer},
	}})

	require.NoError(t, err)
	assert.Contains(t, h.Logs(), "add produced no item")
}

func TestRun_Errors(t *testing.T) {
	count := 5
	text := "nope"
	tests := []struct {
		name string
		step script.Step
		want error
	}{
		{"unknown action", script.Step{Action: "drag"}, script.ErrUnknownAction},
		{"empty action", script.Step{}, script.ErrMissingArgument},
		{"add without container", script.Step{Action: script.ActionAdd}, script.ErrMissingArgument},
		{"renumber without container", script.Step{Action: script.ActionRenumber}, script.ErrMissingArgument},
		{"click without target", script.Step{Action: script.ActionClick}, script.ErrMissingArgument},
		{"click missing target", script.Step{Action: script.ActionClick, Selector: "#absent"}, script.ErrTargetNotFound},
		{"toggle outside item", script.Step{Action: script.ActionToggle, Selector: "#edit-array-orders-add"}, script.ErrTargetNotFound},
		{"move bad item id", script.Step{Action: script.ActionMove, Item: "orders"}, script.ErrMissingArgument},
		{"count mismatch", script.Step{Action: script.ActionExpect, Selector: ".edit-array-item", Count: &count}, script.ErrExpectation},
		{"text mismatch", script.Step{Action: script.ActionExpect, Selector: "#Orders_0__Name", Text: &text}, script.ErrExpectation},
		{"state mismatch", script.Step{Action: script.ActionExpect, Item: "edit-array-orders-item-0", State: "edit"}, script.ErrExpectation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			h := testcomponents.NewHarnessFromOptions(t, testcomponents.OrdersOptions("first"))
			s := script.Script{Steps: []script.Step{
				{Action: script.ActionRenumber, Container: testcomponents.OrdersContainer},
				tt.step,
			}}

			// Act
			err := script.Run(h.Engine, s)

			// Assert
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			var stepErr *script.StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, 1, stepErr.Index)
			assert.True(t, strings.HasPrefix(err.Error(), "step 2 ("))
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := script.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Steps)

	_, err = script.Load(strings.NewReader("steps:\n  - action: click\n    target: x\n"))
	assert.Error(t, err)
}
