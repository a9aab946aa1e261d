// Package input fans global pointer events out to temporary listeners such
// as window drags.
package input

import "github.com/kmacinski/desk95/internal/geom"

// Listener receives pointer motion and release while registered
type Listener interface {
	PointerMove(p geom.Point)
	PointerUp(p geom.Point)
}

// Bus is the global pointer surface. Listeners registered here see every
// move and release until they remove themselves.
type Bus struct {
	listeners map[int]Listener
	order     []int
	next      int
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Add registers l and returns its removal func. Calling the removal func
// more than once has no further effect.
func (b *Bus) Add(l Listener) (remove func()) {
	b.next++
	id := b.next
	b.listeners[id] = l
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of registered listeners
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Move dispatches a pointer move
func (b *Bus) Move(p geom.Point) {
	for _, l := range b.snapshot() {
		l.PointerMove(p)
	}
}

// Up dispatches a pointer release
func (b *Bus) Up(p geom.Point) {
	for _, l := range b.snapshot() {
		l.PointerUp(p)
	}
}

// snapshot lets listeners remove themselves while being dispatched to
func (b *Bus) snapshot() []Listener {
	out := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.listeners[id])
	}
	return out
}
