// Package nav switches between the page's three content panels.
//
// The Navigator is a three-state machine (work, statement, biography) with
// every state reachable from every other in one transition. Exactly one
// panel is visible at any time.
package nav

import (
	"fmt"
	"strings"

	"github.com/hxj7031gino/my-cv/internal/event"
)

// Panel identifies a content panel.
type Panel int

const (
	Work Panel = iota
	Statement
	Biography
)

// Panels lists every panel in navigation order.
var Panels = []Panel{Work, Statement, Biography}

func (p Panel) String() string {
	switch p {
	case Work:
		return "work"
	case Statement:
		return "statement"
	case Biography:
		return "biography"
	default:
		return fmt.Sprintf("panel(%d)", int(p))
	}
}

// Title is the label shown on the panel's trigger.
func (p Panel) Title() string {
	switch p {
	case Statement:
		return "Artist Statement"
	default:
		return strings.ToUpper(p.String()[:1]) + p.String()[1:]
	}
}

// ParsePanel maps a panel name back to its Panel.
func ParsePanel(s string) (Panel, error) {
	for _, p := range Panels {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown panel %q", s)
}

// Navigator holds which panel is visible.
type Navigator struct {
	current Panel
	changes event.Bus[Panel]
}

// New returns a navigator showing Work.
func New() *Navigator {
	return &Navigator{current: Work}
}

// Show makes p the only visible panel and notifies subscribers.
func (n *Navigator) Show(p Panel) {
	n.current = p
	n.changes.Publish(p)
}

// Current returns the visible panel.
func (n *Navigator) Current() Panel {
	return n.current
}

// Visible reports whether p is the visible panel.
func (n *Navigator) Visible(p Panel) bool {
	return n.current == p
}

// Next returns the panel after the current one, wrapping around.
func (n *Navigator) Next() Panel {
	return Panels[(int(n.current)+1)%len(Panels)]
}

// Subscribe registers fn to run after every Show.
func (n *Navigator) Subscribe(fn func(Panel)) event.Subscription {
	return n.changes.Subscribe(fn)
}
