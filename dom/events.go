package dom

import "golang.org/x/net/html"

// Listener handles an event delivered to a target.
type Listener func(ev *Event)

type listenerKey struct {
	n   *html.Node
	typ string
}

func eventKey(n *html.Node, typ string) listenerKey {
	return listenerKey{n: n, typ: typ}
}

type listener struct {
	id int
	fn Listener
}

// EventInit carries the options of a new event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Detail     any
}

// Event is a DOM event. Custom events carry their payload in Detail.
type Event struct {
	Type          string
	Detail        any
	Bubbles       bool
	Cancelable    bool
	Target        *Element
	CurrentTarget *Element // nil while document listeners run

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates an event ready to be dispatched.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{
		Type:       typ,
		Detail:     init.Detail,
		Bubbles:    init.Bubbles,
		Cancelable: init.Cancelable,
	}
}

// PreventDefault marks a cancelable event as vetoed. It has no effect on
// events that are not cancelable.
func (ev *Event) PreventDefault() {
	if ev.Cancelable {
		ev.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener vetoed the event.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// StopPropagation stops the event from reaching further targets.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// AddEventListener registers fn for events of type typ on the element and
// returns a function that removes it.
func (e *Element) AddEventListener(typ string, fn Listener) (remove func()) {
	return e.doc.addListener(e.n, typ, fn)
}

// AddEventListener registers a document-level listener. Bubbling events from
// any connected element reach it last.
func (d *Document) AddEventListener(typ string, fn Listener) (remove func()) {
	return d.addListener(d.root, typ, fn)
}

// DispatchEvent delivers ev to the element and, when it bubbles, to each
// ancestor and finally the document. It returns false if the event was
// cancelable and a listener called PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e
	d := e.doc

	path := []*html.Node{e.n}
	if ev.Bubbles {
		for p := e.n.Parent; p != nil; p = p.Parent {
			if p.Type == html.ElementNode {
				path = append(path, p)
			}
		}
		if d.contains(e.n) {
			path = append(path, d.root)
		}
	}

	for _, n := range path {
		if n == d.root {
			ev.CurrentTarget = nil
		} else {
			ev.CurrentTarget = d.wrap(n)
		}
		d.fire(n, ev)
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

func (d *Document) fire(n *html.Node, ev *Event) {
	// Snapshot so listeners may add or remove listeners while running.
	entries := append([]*listener(nil), d.listeners[eventKey(n, ev.Type)]...)
	for _, l := range entries {
		l.fn(ev)
	}
}

func (d *Document) addListener(n *html.Node, typ string, fn Listener) func() {
	d.nextID++
	id := d.nextID
	key := eventKey(n, typ)
	d.listeners[key] = append(d.listeners[key], &listener{id: id, fn: fn})

	return func() {
		entries := d.listeners[key]
		for i, l := range entries {
			if l.id == id {
				d.listeners[key] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount reports how many listeners for typ are attached at the
// document level.
func (d *Document) ListenerCount(typ string) int {
	return len(d.listeners[eventKey(d.root, typ)])
}
