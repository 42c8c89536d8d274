//go:build !wasm
// +build !wasm

package testcomponents

import "github.com/vcrobe/editarray/markup"

// OrdersContainer is the container id of the Orders fixture.
const OrdersContainer = "edit-array-orders"

// OrdersOptions describes an orders list with a required name and an
// optional quantity. Each entry of names becomes a persisted item.
func OrdersOptions(names ...string) markup.Options {
	opts := markup.Options{
		ArrayID:        "orders",
		Prefix:         "Orders",
		ReorderEnabled: true,
		Fields: []markup.Field{
			{Name: "Name", Label: "Name", Required: true},
			{Name: "Quantity", Label: "Quantity", Type: "number", Min: "1"},
		},
	}
	for _, name := range names {
		opts.Items = append(opts.Items, markup.Item{Values: map[string]string{"Name": name, "Quantity": "1"}})
	}
	return opts
}
