package dom

import (
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	selectorMu    sync.Mutex
	selectorCache = make(map[string]cascadia.Selector)
)

// compile returns the compiled selector, or nil if it does not parse.
func compile(selector string) cascadia.Selector {
	selectorMu.Lock()
	defer selectorMu.Unlock()

	if sel, ok := selectorCache[selector]; ok {
		return sel
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		sel = nil
	}
	selectorCache[selector] = sel
	return sel
}

func matches(n *html.Node, selector string) bool {
	sel := compile(selector)
	if sel == nil || n == nil || n.Type != html.ElementNode {
		return false
	}
	return sel.Match(n)
}

func queryFirst(root *html.Node, selector string) *html.Node {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && sel.Match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func queryAll(root *html.Node, selector string) []*html.Node {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && sel.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
