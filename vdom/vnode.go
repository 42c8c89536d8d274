package vdom

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name; empty for a text node
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // Text content, or the value of an input
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// Append adds children to the node and returns it. Nil children are skipped,
// which keeps conditional builders short.
func (v *VNode) Append(children ...*VNode) *VNode {
	for _, c := range children {
		if c != nil {
			v.Children = append(v.Children, c)
		}
	}
	return v
}

// Set assigns one attribute and returns the node.
func (v *VNode) Set(name string, value any) *VNode {
	if v.Attributes == nil {
		v.Attributes = make(map[string]any)
	}
	v.Attributes[name] = value
	return v
}

// Text creates a bare text node.
func Text(text string) *VNode {
	return NewVNode("", nil, nil, text)
}

// El creates an element of any tag.
func El(tag string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode(tag, attrs, nil, "").Append(children...)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Span creates a <span> with text content.
func Span(text string, attrs map[string]any) *VNode {
	return NewVNode("span", attrs, nil, text)
}

// Label creates a <label> for the element with id forID.
func Label(text, forID string, attrs map[string]any) *VNode {
	return NewVNode("label", withAttr(attrs, "for", forID), nil, text)
}

// Input returns an <input> of the given type. Value is rendered as the value
// attribute.
func Input(typ, value string, attrs map[string]any) *VNode {
	return NewVNode("input", withAttr(attrs, "type", typ), nil, value)
}

// InputText returns a VNode representing an <input type="text"> element.
// Optionally accepts a map of attributes (e.g., {"placeholder": "Type here"}).
func InputText(attrs map[string]any) *VNode {
	return Input("text", "", attrs)
}

// InputHidden returns an <input type="hidden"> carrying name and value.
func InputHidden(name, value string, attrs map[string]any) *VNode {
	return Input("hidden", value, withAttr(attrs, "name", name))
}

// Textarea creates a <textarea> holding value.
func Textarea(value string, attrs map[string]any) *VNode {
	return NewVNode("textarea", attrs, nil, value)
}

// Select creates a <select> with the given options.
func Select(attrs map[string]any, options ...*VNode) *VNode {
	return El("select", attrs, options...)
}

// Option creates an <option>; selected adds the selected attribute.
func Option(value, text string, selected bool) *VNode {
	return NewVNode("option", map[string]any{"value": value, "selected": selected}, nil, text)
}

// Template creates a <template> whose children are inert until cloned.
func Template(id string, children ...*VNode) *VNode {
	return El("template", map[string]any{"id": id}, children...)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return El("div", attrs, children...)
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", withAttr(attrs, "type", "button"), nil, content).Append(children...)
}

// withAttr sets name on attrs unless the caller already did.
func withAttr(attrs map[string]any, name string, value any) map[string]any {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	if _, ok := attrs[name]; !ok {
		attrs[name] = value
	}
	return attrs
}
