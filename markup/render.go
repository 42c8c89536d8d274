// Package markup renders the server side of the EditArray markup contract:
// the container, its persisted items, the item template and the Add button,
// with ids and field names laid out the way the engine and model binding
// expect them. Invalid options produce a diagnostic panel instead of the
// widget.
package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vcrobe/editarray/vdom"
)

const indexPlaceholder = "__index__"

// Default button and placeholder texts.
const (
	DefaultAddText      = "Add"
	DefaultEmptyText    = "No items yet."
	DefaultEditText     = "Edit"
	DefaultDoneText     = "Done"
	DefaultDeleteText   = "Delete"
	DefaultUndeleteText = "Undelete"
	DefaultCancelText   = "Cancel"
)

// ContainerID returns the container id for an array id.
func ContainerID(arrayID string) string {
	return "edit-array-" + arrayID
}

// FieldName returns the model-binding name of a field at index, e.g.
// Orders[2].Name. The index is passed as text so the template can use the
// placeholder.
func FieldName(prefix, index, field string) string {
	return fmt.Sprintf("%s[%s].%s", prefix, index, field)
}

// FieldID returns the element id matching FieldName, e.g. Orders_2__Name.
func FieldID(prefix, index, field string) string {
	return fmt.Sprintf("%s_%s__%s", sanitizeID(prefix), index, field)
}

func sanitizeID(prefix string) string {
	b := []byte(prefix)
	for i, c := range b {
		if c == '.' {
			b[i] = '_'
		}
	}
	return string(b)
}

// Render builds the EditArray tree for opts. When opts do not validate, the
// diagnostic panel is returned instead.
func Render(opts Options) *vdom.VNode {
	if problems := opts.Problems(); len(problems) > 0 {
		return Diagnostic(opts.ArrayID, problems)
	}
	return newRenderer(opts).container()
}

// RenderHTML writes the rendered HTML to w.
func RenderHTML(w io.Writer, opts Options) error {
	return vdom.RenderHTML(w, Render(opts))
}

// Diagnostic renders the visible configuration error panel.
func Diagnostic(arrayID string, problems []string) *vdom.VNode {
	title := "EditArray configuration error"
	if arrayID != "" {
		title += " (" + arrayID + ")"
	}
	list := vdom.El("ul", nil)
	for _, p := range problems {
		list.Append(vdom.NewVNode("li", nil, nil, p))
	}
	return vdom.Div(map[string]any{"class": "edit-array-diagnostic", "role": "alert"},
		vdom.NewVNode("strong", nil, nil, title),
		list,
	)
}

type renderer struct {
	opts        Options
	containerID string
}

func newRenderer(opts Options) *renderer {
	opts.AddText = orDefault(opts.AddText, DefaultAddText)
	opts.EmptyText = orDefault(opts.EmptyText, DefaultEmptyText)
	opts.EditText = orDefault(opts.EditText, DefaultEditText)
	opts.DoneText = orDefault(opts.DoneText, DefaultDoneText)
	opts.DeleteText = orDefault(opts.DeleteText, DefaultDeleteText)
	opts.UndeleteText = orDefault(opts.UndeleteText, DefaultUndeleteText)
	opts.CancelText = orDefault(opts.CancelText, DefaultCancelText)
	if opts.HideStyle == "" {
		opts.HideStyle = HideClass
	}
	return &renderer{opts: opts, containerID: ContainerID(opts.ArrayID)}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (r *renderer) container() *vdom.VNode {
	attrs := map[string]any{
		"id":                   r.containerID,
		"class":                "edit-array-container",
		"data-reorder-enabled": strconv.FormatBool(r.opts.ReorderEnabled),
		"data-delete-text":     r.opts.DeleteText,
		"data-undelete-text":   r.opts.UndeleteText,
		"data-cancel-text":     r.opts.CancelText,
	}
	if r.opts.MaxItems > 0 {
		attrs["data-max-items"] = r.opts.MaxItems
	}

	region := vdom.Div(map[string]any{
		"id":        r.containerID + "-items",
		"class":     "edit-array-items",
		"aria-live": "polite",
	})
	for i, item := range r.opts.Items {
		region.Append(r.item(strconv.Itoa(i), item, false))
	}
	region.Append(r.hideable(vdom.Div(map[string]any{"class": "edit-array-placeholder"}, vdom.Text(r.opts.EmptyText)), len(r.opts.Items) > 0))

	add := vdom.Button(r.opts.AddText, map[string]any{
		"id":                r.containerID + "-add",
		"class":             "btn btn-primary edit-array-add",
		"data-action":       "add",
		"data-container-id": r.containerID,
		"data-template-id":  r.containerID + "-template",
		"disabled":          r.opts.MaxItems > 0 && len(r.opts.Items) >= r.opts.MaxItems,
	})

	return vdom.Div(attrs,
		region,
		vdom.Template(r.containerID+"-template", r.item(indexPlaceholder, Item{}, true)),
		add,
	)
}

// item renders one record. Template blueprints start in edit mode with empty
// values; persisted items start in display mode.
func (r *renderer) item(index string, data Item, blueprint bool) *vdom.VNode {
	itemID := r.containerID + "-item-" + index
	attrs := map[string]any{
		"id":    itemID,
		"class": "edit-array-item",
	}
	if data.Deleted {
		attrs["class"] = "edit-array-item deleted"
		attrs["data-deleted"] = "true"
	}
	setIf(attrs, "data-on-update", r.opts.OnUpdate)
	setIf(attrs, "data-on-done", r.opts.OnDone)
	setIf(attrs, "data-on-delete", r.opts.OnDelete)

	marker := vdom.InputHidden(FieldName(r.opts.Prefix, index, "IsDeleted"), strconv.FormatBool(data.Deleted), map[string]any{
		"id":                     FieldID(r.opts.Prefix, index, "IsDeleted"),
		"data-is-deleted-marker": true,
	})

	display := vdom.Div(map[string]any{"id": itemID + "-display", "class": "display-container"})
	edit := vdom.Div(map[string]any{"id": itemID + "-edit", "class": "edit-container"})
	for _, f := range r.opts.Fields {
		value := data.Values[f.Name]
		display.Append(r.displayField(index, f, value))
		edit.Append(r.editField(index, f, value))
	}

	display.Append(r.displayButtons(data.Deleted)...)
	edit.Append(vdom.Button(r.opts.DoneText, map[string]any{
		"class":        "btn btn-primary",
		"data-action":  "done",
		"data-item-id": "closest",
	}))

	return vdom.Div(attrs,
		marker,
		r.hideable(display, blueprint),
		r.hideable(edit, !blueprint),
	)
}

func (r *renderer) displayButtons(deleted bool) []*vdom.VNode {
	var out []*vdom.VNode
	if r.opts.ReorderEnabled {
		for _, dir := range []struct {
			offset, text, label string
		}{{"-1", "↑", "Move up"}, {"1", "↓", "Move down"}} {
			out = append(out, vdom.Button(dir.text, map[string]any{
				"class":             "btn btn-link edit-array-move",
				"aria-label":        dir.label,
				"data-action":       "move",
				"data-item-id":      "closest",
				"data-container-id": r.containerID,
				"data-direction":    dir.offset,
			}))
		}
	}
	deleteText := r.opts.DeleteText
	if deleted {
		deleteText = r.opts.UndeleteText
	}
	out = append(out,
		vdom.Button(r.opts.EditText, map[string]any{
			"class":        "btn btn-secondary",
			"data-action":  "edit",
			"data-item-id": "closest",
			"disabled":     deleted,
		}),
		vdom.Button(deleteText, map[string]any{
			"class":        "btn btn-danger",
			"data-action":  "delete",
			"data-item-id": "closest",
		}),
	)
	return out
}

func (r *renderer) displayField(index string, f Field, value string) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "edit-array-display-field"},
		vdom.Span(labelOf(f), map[string]any{"class": "edit-array-label"}),
		vdom.Span(value, map[string]any{"data-display-for": FieldID(r.opts.Prefix, index, f.Name)}),
	)
}

func (r *renderer) editField(index string, f Field, value string) *vdom.VNode {
	id := FieldID(r.opts.Prefix, index, f.Name)
	name := FieldName(r.opts.Prefix, index, f.Name)
	attrs := map[string]any{
		"id":       id,
		"name":     name,
		"class":    "form-control",
		"required": f.Required,
	}
	setIf(attrs, "pattern", f.Pattern)
	setIf(attrs, "placeholder", f.Placeholder)
	setIf(attrs, "min", f.Min)
	setIf(attrs, "max", f.Max)
	if f.MinLength > 0 {
		attrs["minlength"] = f.MinLength
	}
	if f.MaxLength > 0 {
		attrs["maxlength"] = f.MaxLength
	}

	var control *vdom.VNode
	switch f.Type {
	case "textarea":
		control = vdom.Textarea(value, attrs)
	case "select":
		control = vdom.Select(attrs)
		for _, choice := range f.Choices {
			control.Append(vdom.Option(choice, choice, choice == value))
		}
	case "":
		control = vdom.Input("text", value, attrs)
	default:
		control = vdom.Input(f.Type, value, attrs)
	}

	return vdom.Div(map[string]any{"class": "form-group"},
		vdom.Label(labelOf(f), id, nil),
		control,
		vdom.Span("", map[string]any{
			"class":           "field-validation-valid",
			"data-valmsg-for": name,
		}),
	)
}

// hideable applies the configured hiding variant.
func (r *renderer) hideable(n *vdom.VNode, hidden bool) *vdom.VNode {
	if r.opts.HideStyle == HideInline {
		if hidden {
			return n.Set("style", "display: none;")
		}
		return n.Set("style", "display: block;")
	}
	if hidden {
		class, _ := n.Attributes["class"].(string)
		if class == "" {
			return n.Set("class", "ea-hidden")
		}
		return n.Set("class", class+" ea-hidden")
	}
	return n
}

func labelOf(f Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func setIf(attrs map[string]any, name, value string) {
	if value != "" {
		attrs[name] = value
	}
}
