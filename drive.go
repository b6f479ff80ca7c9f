package pager

import (
	"context"
	"errors"
	"time"
)

// drive hands the surface to p until the turn is over: it activates the page, renders and
// flushes a frame every tick, and deactivates the page once the turn has been cancelled or a
// navigation command is pending. Frames are never interrupted; the turn can only end between
// them. A page that fails after its activation is still deactivated.
func (r *Rotator) drive(ctx context.Context, p Page, fps uint8) error {
	ticker := time.NewTicker(FrameInterval(fps))
	defer ticker.Stop()

	if err := activate(p); err != nil {
		return err
	}

	for {
		r.surface.Clear()
		if err := p.Render(r.surface); err != nil {
			return errors.Join(err, deactivate(p))
		}
		if err := r.surface.Refresh(); err != nil {
			return errors.Join(err, deactivate(p))
		}
		if r.coord.done() || !r.wait(ctx, ticker.C) {
			break
		}
	}

	if err := deactivate(p); err != nil {
		return err
	}
	return ctx.Err()
}

// wait blocks until the next tick and reports whether the turn goes on. A wake-up ends the wait
// early when the turn is over; otherwise it keeps waiting for the tick.
func (r *Rotator) wait(ctx context.Context, tick <-chan time.Time) bool {
	for {
		select {
		case <-tick:
			return true
		case <-r.coord.wake:
			if r.coord.done() {
				return false
			}
		case <-ctx.Done():
			return false
		}
	}
}

// idle waits out a failed turn until its timer fires, a navigation command arrives or ctx is
// done.
func (r *Rotator) idle(ctx context.Context) {
	for !r.coord.done() {
		select {
		case <-r.coord.wake:
		case <-ctx.Done():
			return
		}
	}
}
