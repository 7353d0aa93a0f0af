package nav

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/hxj7031gino/my-cv/internal/dom"
)

// Binding names the trigger control and content container of a panel.
type Binding struct {
	Trigger   string
	Container string
}

// DefaultBindings are the element ids used by the bundled layout.
var DefaultBindings = map[Panel]Binding{
	Work:      {Trigger: "nav-work", Container: "work"},
	Statement: {Trigger: "nav-statement", Container: "statement"},
	Biography: {Trigger: "nav-biography", Container: "biography"},
}

// Bind wires n to the document: each trigger click prevents link navigation
// and shows its panel, and every Show rewrites the containers' display
// style. All ids are resolved up front; a missing one is an error.
func Bind(doc *dom.Document, n *Navigator, bindings map[Panel]Binding) error {
	containers := make(map[Panel]*html.Node, len(Panels))
	triggers := make(map[Panel]*html.Node, len(Panels))
	for _, p := range Panels {
		b, ok := bindings[p]
		if !ok {
			return fmt.Errorf("no binding for %s panel", p)
		}
		trigger, err := doc.ByID(b.Trigger)
		if err != nil {
			return fmt.Errorf("%s trigger: %w", p, err)
		}
		container, err := doc.ByID(b.Container)
		if err != nil {
			return fmt.Errorf("%s container: %w", p, err)
		}
		triggers[p] = trigger
		containers[p] = container
	}

	n.Subscribe(func(visible Panel) {
		for _, p := range Panels {
			if p == visible {
				dom.SetDisplay(containers[p], dom.DisplayBlock)
			} else {
				dom.SetDisplay(containers[p], dom.DisplayNone)
			}
		}
	})

	for _, p := range Panels {
		p := p
		doc.Listen(triggers[p], dom.EventClick, func(e *dom.Event) {
			e.PreventDefault()
			n.Show(p)
		})
	}
	return nil
}
