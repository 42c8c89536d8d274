package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle to an element node of a Document. Handles are
// canonical: the same node always yields the same *Element.
type Element struct {
	doc *Document
	n   *html.Node
}

// Node returns the underlying html.Node.
func (e *Element) Node() *html.Node {
	return e.n
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.n.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) {
	e.SetAttribute("id", id)
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	return attr(e.n, name)
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attribute(name)
	return ok
}

// SetAttribute creates or replaces an attribute.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute deletes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
			return
		}
	}
}

// HTMLFor mirrors the label.htmlFor property.
func (e *Element) HTMLFor() string {
	return e.GetAttribute("for")
}

// SetHTMLFor mirrors assignment to label.htmlFor.
func (e *Element) SetHTMLFor(value string) {
	e.SetAttribute("for", value)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.GetAttribute("class"))
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list if missing.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetAttribute("class", strings.Join(append(e.Classes(), name), " "))
}

// RemoveClass drops every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	var kept []string
	for _, c := range e.Classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttribute("class")
		return
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass adds or removes name.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// StyleProperty returns an inline style declaration value.
func (e *Element) StyleProperty(name string) string {
	for _, decl := range parseStyle(e.GetAttribute("style")) {
		if decl[0] == name {
			return decl[1]
		}
	}
	return ""
}

// SetStyleProperty sets an inline style declaration. An empty value removes
// the declaration, and the style attribute goes away once it is empty.
func (e *Element) SetStyleProperty(name, value string) {
	decls := parseStyle(e.GetAttribute("style"))
	out := decls[:0]
	replaced := false
	for _, decl := range decls {
		if decl[0] == name {
			if value == "" {
				continue
			}
			decl[1] = value
			replaced = true
		}
		out = append(out, decl)
	}
	if !replaced && value != "" {
		out = append(out, [2]string{name, value})
	}
	if len(out) == 0 {
		e.RemoveAttribute("style")
		return
	}
	parts := make([]string, 0, len(out))
	for _, decl := range out {
		parts = append(parts, decl[0]+": "+decl[1])
	}
	e.SetAttribute("style", strings.Join(parts, "; ")+";")
}

func parseStyle(style string) [][2]string {
	var out [][2]string
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, strings.TrimSpace(value)})
	}
	return out
}

// Disabled reports the disabled boolean attribute.
func (e *Element) Disabled() bool {
	return e.HasAttribute("disabled")
}

// SetDisabled sets or clears the disabled boolean attribute.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttribute("disabled", "")
	} else {
		e.RemoveAttribute("disabled")
	}
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			collect(c)
		}
	}
	collect(e.n)
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Value returns the current value of a form control: the value attribute
// for inputs, the text of a textarea and the selected option of a select.
func (e *Element) Value() string {
	switch e.n.DataAtom {
	case atom.Textarea:
		return e.TextContent()
	case atom.Select:
		options := e.QuerySelectorAll("option")
		for _, o := range options {
			if o.HasAttribute("selected") {
				return o.optionValue()
			}
		}
		if len(options) > 0 {
			return options[0].optionValue()
		}
		return ""
	default:
		return e.GetAttribute("value")
	}
}

// SetValue assigns the value of a form control.
func (e *Element) SetValue(value string) {
	switch e.n.DataAtom {
	case atom.Textarea:
		e.SetTextContent(value)
	case atom.Select:
		for _, o := range e.QuerySelectorAll("option") {
			if o.optionValue() == value {
				o.SetAttribute("selected", "")
			} else {
				o.RemoveAttribute("selected")
			}
		}
	default:
		e.SetAttribute("value", value)
	}
}

func (e *Element) optionValue() string {
	if v, ok := e.Attribute("value"); ok {
		return v
	}
	return strings.TrimSpace(e.TextContent())
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.n.Parent)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// FirstElementChild returns the first element child or nil.
func (e *Element) FirstElementChild() *Element {
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return e.doc.wrap(c)
		}
	}
	return nil
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	return matches(e.n, selector)
}

// Closest returns the element itself or its nearest ancestor matching
// selector.
func (e *Element) Closest(selector string) *Element {
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && matches(n, selector) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// QuerySelector returns the first descendant matching selector.
func (e *Element) QuerySelector(selector string) *Element {
	return e.doc.wrap(queryFirst(e.n, selector))
}

// QuerySelectorAll returns all descendants matching selector.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	return e.doc.wrapAll(queryAll(e.n, selector))
}

// Descendants returns every descendant element in document order.
func (e *Element) Descendants() []*Element {
	var out []*Element
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			out = append(out, e.doc.wrap(n))
		}
		return true
	})
	return out
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

// IsConnected reports whether the element is attached to the document.
func (e *Element) IsConnected() bool {
	return e.doc.contains(e.n)
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	detach(child.n)
	e.doc.adopt(child)
	e.n.AppendChild(child.n)
}

// InsertBefore inserts child before ref. A nil ref appends.
func (e *Element) InsertBefore(child, ref *Element) {
	if child == nil {
		return
	}
	if ref == nil {
		e.AppendChild(child)
		return
	}
	if child == ref {
		return
	}
	detach(child.n)
	e.doc.adopt(child)
	e.n.InsertBefore(child.n, ref.n)
}

// InsertAfter inserts child directly after ref. A nil ref prepends.
func (e *Element) InsertAfter(child, ref *Element) {
	if child == nil || child == ref {
		return
	}
	detach(child.n)
	e.doc.adopt(child)
	var next *html.Node
	if ref == nil {
		next = e.n.FirstChild
	} else {
		next = ref.n.NextSibling
	}
	if next == nil {
		e.n.AppendChild(child.n)
		return
	}
	e.n.InsertBefore(child.n, next)
}

// Remove detaches the element from its parent and releases the listeners
// and wrappers the document holds for its subtree. Moving an element does
// not need Remove: AppendChild, InsertBefore and InsertAfter detach it
// themselves and keep its listeners.
func (e *Element) Remove() {
	detach(e.n)
	e.doc.release(e.n)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// CloneNode copies the element. A deep clone copies the whole subtree.
func (e *Element) CloneNode(deep bool) *Element {
	return e.doc.wrap(cloneNode(e.n, deep))
}

// TemplateContent returns deep clones of the element children of a
// <template>, ready to be inserted into the document.
func (e *Element) TemplateContent() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(cloneNode(c, true)))
		}
	}
	return out
}

func cloneNode(n *html.Node, deep bool) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(n.Attr))
		copy(clone.Attr, n.Attr)
	}
	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			clone.AppendChild(cloneNode(c, true))
		}
	}
	return clone
}

// Focus makes the element the document's active element. Detached elements
// cannot take focus.
func (e *Element) Focus() {
	if !e.IsConnected() {
		return
	}
	e.doc.active = e.n
}

// Click dispatches a bubbling, cancelable click event. Like a browser, a
// disabled form control swallows the click.
func (e *Element) Click() bool {
	if e.Disabled() && isFormControl(e.n) {
		return false
	}
	return e.DispatchEvent(NewEvent("click", EventInit{Bubbles: true, Cancelable: true}))
}

func isFormControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea:
		return true
	}
	return false
}
