package gallery

import "github.com/hxj7031gino/my-cv/internal/event"

// State is a snapshot of the lightbox.
type State struct {
	Active bool
	// Source is stale while Active is false.
	Source string
}

// Lightbox is the overlay showing one image at full size.
type Lightbox struct {
	state   State
	changes event.Bus[State]
}

// NewLightbox returns a hidden lightbox.
func NewLightbox() *Lightbox {
	return &Lightbox{}
}

// Open shows src.
func (l *Lightbox) Open(src string) {
	l.state = State{Active: true, Source: src}
	l.changes.Publish(l.state)
}

// Close hides the overlay; the last source is kept.
func (l *Lightbox) Close() {
	l.state.Active = false
	l.changes.Publish(l.state)
}

// Active reports whether the overlay is showing.
func (l *Lightbox) Active() bool {
	return l.state.Active
}

// Source returns the most recently opened source.
func (l *Lightbox) Source() string {
	return l.state.Source
}

// State returns a snapshot.
func (l *Lightbox) State() State {
	return l.state
}

// Subscribe registers fn to run after every Open and Close.
func (l *Lightbox) Subscribe(fn func(State)) event.Subscription {
	return l.changes.Subscribe(fn)
}
