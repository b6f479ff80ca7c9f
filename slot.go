package pager

import "time"

// Slot is a registered page together with its optional custom duration.
type Slot struct {
	Page Page

	// Duration overrides the rotator's default duration when positive.
	Duration time.Duration
}

func (s Slot) duration(fallback time.Duration) time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	return fallback
}

// registry is a fixed-capacity sequence of slots. The backing array is allocated once and never
// grows.
type registry struct {
	slots []Slot
	n     int
}

func newRegistry(capacity int) registry {
	return registry{slots: make([]Slot, max(capacity, 0))}
}

func (r *registry) add(s Slot) error {
	if r.n == len(r.slots) {
		return ErrCapacity
	}
	r.slots[r.n] = s
	r.n++
	return nil
}

func (r *registry) len() int {
	return r.n
}

func (r *registry) at(i int) Slot {
	return r.slots[i]
}

// wrap maps any index onto [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// navigate returns the slot to show and the index that follows it, given the index a plain
// advance would use next. The index is advanced right after selection, so going back one slot
// from the page that just played means stepping back two.
func navigate(next, n int, command Command) (selected, following int) {
	if command == Retreat {
		next = wrap(next-2, n)
	}
	selected = wrap(next, n)
	return selected, wrap(selected+1, n)
}
