package vdom

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render converts the VNode tree into an html.Node tree. Attributes are
// emitted in name order so output is stable. Boolean attributes are present
// when true and omitted when false; nil values are omitted.
func Render(n *VNode) *html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	tag := strings.ToLower(n.Tag)
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, ok := attrValue(n.Attributes[k])
		if !ok {
			continue
		}
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: val})
	}

	if n.Content != "" {
		if el.DataAtom == atom.Input {
			// For inputs the content is the current value.
			el.Attr = append(el.Attr, html.Attribute{Key: "value", Val: n.Content})
		} else {
			el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
		}
	}
	for _, child := range n.Children {
		if c := Render(child); c != nil {
			el.AppendChild(c)
		}
	}
	return el
}

func attrValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case bool:
		return "", t
	case int:
		return strconv.Itoa(t), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprint(t), true
	}
}

// RenderHTML writes the HTML serialisation of n to w.
func RenderHTML(w io.Writer, n *VNode) error {
	node := Render(n)
	if node == nil {
		return nil
	}
	if err := html.Render(w, node); err != nil {
		return fmt.Errorf("render %s: %w", n.Tag, err)
	}
	return nil
}

// RenderString returns the HTML serialisation of n.
func RenderString(n *VNode) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
