// Package dom is a small, browser-shaped document model built on top of
// golang.org/x/net/html. It gives native Go code the handful of DOM
// operations the EditArray engine relies on (id lookup, CSS selectors,
// attribute and class access, cloning, focus and bubbling events) so the
// same engine logic can run, and be tested, outside a browser.
//
// A Document is not safe for concurrent use.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree together with the state a browser keeps
// beside it: registered event listeners and the focused element.
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[listenerKey][]*listener
	nextID    int
	active    *html.Node
}

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return newDocument(root), nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an already-built html.DocumentNode.
func FromNode(root *html.Node) *Document {
	return newDocument(root)
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[listenerKey][]*listener),
	}
}

// Root returns the underlying html.DocumentNode.
func (d *Document) Root() *html.Node {
	return d.root
}

// wrap returns the canonical Element for n so pointer equality between
// wrappers holds for the same node.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, n: n}
	d.elements[n] = el
	return el
}

// Wrap exposes an html.Node that belongs to this document as an Element.
func (d *Document) Wrap(n *html.Node) *Element {
	return d.wrap(n)
}

// Body returns the <body> element, or nil for fragments without one.
func (d *Document) Body() *Element {
	var body *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	return d.wrap(body)
}

// GetElementByID returns the first element in document order whose id is
// id. Template contents are not part of the document and are never matched.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// ElementsByID returns every element carrying id. A well-formed page has at
// most one; callers use this to detect collisions.
func (d *Document) ElementsByID(id string) []*Element {
	if id == "" {
		return nil
	}
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			out = append(out, d.wrap(n))
		}
		return true
	})
	return out
}

// QuerySelector returns the first element matching selector, or nil.
// An invalid selector matches nothing.
func (d *Document) QuerySelector(selector string) *Element {
	return d.wrap(queryFirst(d.root, selector))
}

// QuerySelectorAll returns all elements matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return d.wrapAll(queryAll(d.root, selector))
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// ActiveElement returns the focused element. It is nil when nothing has been
// focused or the focused element has since left the document.
func (d *Document) ActiveElement() *Element {
	if d.active == nil || !d.contains(d.active) {
		return nil
	}
	return d.wrap(d.active)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// adopt makes el the canonical wrapper of its node again after Remove
// released it.
func (d *Document) adopt(el *Element) {
	if _, ok := d.elements[el.n]; !ok {
		d.elements[el.n] = el
	}
}

// release forgets the wrappers and listeners of n and its descendants.
func (d *Document) release(n *html.Node) {
	gone := map[*html.Node]bool{n: true}
	var collect func(*html.Node)
	collect = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			gone[c] = true
			collect(c)
		}
	}
	collect(n)

	for node := range gone {
		delete(d.elements, node)
	}
	for key := range d.listeners {
		if gone[key.n] {
			delete(d.listeners, key)
		}
	}
	if gone[d.active] {
		d.active = nil
	}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// contains reports whether n is attached to the document tree.
func (d *Document) contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
		if p.Parent != nil && p.Parent.Type == html.ElementNode && p.Parent.DataAtom == atom.Template {
			return false
		}
	}
	return false
}

// walk visits the descendants of n in document order. Children of <template>
// elements are skipped, matching the browser where template content lives in
// a separate fragment. Returning false from fn stops the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) {
			return false
		}
		if c.Type == html.ElementNode && c.DataAtom == atom.Template {
			continue
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
