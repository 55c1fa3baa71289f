// Package render owns the component contract and the differential renderer
// that turns a freshly computed line list into the minimal terminal writes.
package render

import "termkit/input"

// Component is anything that can draw itself as a list of styled lines for
// a given width. Render must be pure with respect to its receiver state so
// callers can re-render freely.
type Component interface {
	Render(width int) []string
}

// InputHandler is implemented by components that react to input events.
// HandleEvent reports whether the event was consumed.
type InputHandler interface {
	HandleEvent(ev input.Event) bool
}

// Stack composes children by concatenating their rendered lines in order.
// It is the toolkit's only layout primitive: fixed-width, single-column.
type Stack struct {
	Children []Component
}

// NewStack builds a stack over the given children.
func NewStack(children ...Component) *Stack {
	return &Stack{Children: children}
}

func (s *Stack) Render(width int) []string {
	var lines []string
	for _, c := range s.Children {
		lines = append(lines, c.Render(width)...)
	}
	return lines
}

// HandleEvent offers the event to each child in order until one consumes it.
func (s *Stack) HandleEvent(ev input.Event) bool {
	for _, c := range s.Children {
		if h, ok := c.(InputHandler); ok && h.HandleEvent(ev) {
			return true
		}
	}
	return false
}
