package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hxj7031gino/my-cv/internal/event"
)

// Event types dispatched by the document.
const (
	EventClick = "click"
	EventReady = "DOMContentLoaded"
)

// Event is delivered to listeners while it bubbles from Target to the root.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the element's default action (link navigation).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event.
type Listener = event.Handler[*Event]

// Listen registers fn for events of type typ reaching n.
func (d *Document) Listen(n *html.Node, typ string, fn Listener) event.Subscription {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string]*event.Bus[*Event])
		d.listeners[n] = byType
	}
	bus, ok := byType[typ]
	if !ok {
		bus = &event.Bus[*Event]{}
		byType[typ] = bus
	}
	return bus.Subscribe(fn)
}

// Dispatch fires an event of type typ at target and bubbles it up.
func (d *Document) Dispatch(target *html.Node, typ string) *Event {
	ev := &Event{Type: typ, Target: target}
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		bus, ok := d.listeners[n][typ]
		if !ok {
			continue
		}
		ev.CurrentTarget = n
		bus.Publish(ev)
	}
	ev.CurrentTarget = nil
	return ev
}

// Click dispatches a click at target. When no listener prevented it and the
// target sits inside a link, the link's href is recorded as a navigation.
func (d *Document) Click(target *html.Node) *Event {
	ev := d.Dispatch(target, EventClick)
	if ev.DefaultPrevented() {
		return ev
	}
	for n := target; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href := Attr(n, "href"); href != "" {
				d.navigations = append(d.navigations, href)
			}
			break
		}
	}
	return ev
}

// Ready fires the content-ready signal at the document root.
func (d *Document) Ready() {
	d.Dispatch(d.root, EventReady)
}

// Navigations lists hrefs followed by unprevented link clicks.
func (d *Document) Navigations() []string {
	return d.navigations
}
