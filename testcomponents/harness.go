//go:build !wasm
// +build !wasm

// Package testcomponents is a minimal harness for exercising rendered
// EditArray widgets in native tests, without a browser or WASM.
//
// It renders or parses a page, starts an engine on it and captures
// everything the engine logs so tests can:
//   - Click buttons and watch the delegated handlers run
//   - Inspect the resulting document
//   - Assert on warnings raised by guard rejections
package testcomponents

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcrobe/editarray/callbacks"
	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
	"github.com/vcrobe/editarray/editarray"
	"github.com/vcrobe/editarray/markup"
	"github.com/vcrobe/editarray/vdom"
)

// Harness owns one document and the engine running on it.
type Harness struct {
	t        testing.TB
	Doc      *dom.Document
	Engine   *editarray.Engine
	Registry *callbacks.Registry
	logs     *bytes.Buffer
}

// NewHarness parses page, installs a capturing logger and initialises an
// engine with an empty registry. Everything is undone when the test ends.
func NewHarness(t testing.TB, page string) *Harness {
	t.Helper()

	logs := &bytes.Buffer{}
	restore := console.SetLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(restore)

	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	registry := callbacks.NewRegistry()
	eng := editarray.New(doc, editarray.Options{Registry: registry})
	eng.Init()
	t.Cleanup(eng.Close)

	return &Harness{t: t, Doc: doc, Engine: eng, Registry: registry, logs: logs}
}

// NewHarnessFromOptions renders opts into a page and calls NewHarness.
func NewHarnessFromOptions(t testing.TB, opts markup.Options) *Harness {
	t.Helper()
	return NewHarness(t, Page(t, markup.Render(opts)))
}

// Page renders n inside a minimal HTML document.
func Page(t testing.TB, n *vdom.VNode) string {
	t.Helper()
	body, err := vdom.RenderString(n)
	require.NoError(t, err)
	return "<!DOCTYPE html><html><head></head><body>" + body + "</body></html>"
}

// Logs returns everything logged since the harness was created.
func (h *Harness) Logs() string {
	return h.logs.String()
}

// ResetLogs discards captured log output.
func (h *Harness) ResetLogs() {
	h.logs.Reset()
}

// LogLines returns the captured log records, one per line.
func (h *Harness) LogLines() []string {
	out := strings.TrimSpace(h.logs.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// El returns the element with id, failing the test if it is missing.
func (h *Harness) El(id string) *dom.Element {
	h.t.Helper()
	el := h.Doc.GetElementByID(id)
	require.NotNil(h.t, el, "element #%s not found", id)
	return el
}

// Find returns the first element matching selector, failing the test if
// there is none.
func (h *Harness) Find(selector string) *dom.Element {
	h.t.Helper()
	el := h.Doc.QuerySelector(selector)
	require.NotNil(h.t, el, "no element matches %s", selector)
	return el
}

// Click clicks the first element matching selector.
func (h *Harness) Click(selector string) {
	h.t.Helper()
	h.Find(selector).Click()
}

// Register adds a callback, failing the test on error.
func (h *Harness) Register(name string, fn callbacks.Func) {
	h.t.Helper()
	require.NoError(h.t, h.Registry.Register(name, fn))
}
