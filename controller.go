package pager

// Controller moves the rotation forward or back from outside the rotation loop. It is safe for
// concurrent use and cheap to copy.
//
// Requests made in quick succession before the loop picks them up collapse into the last one;
// the page that is showing is always interrupted.
type Controller struct {
	c *Coordinator
}

// NewController returns a controller acting on c.
func NewController(c *Coordinator) Controller {
	return Controller{c: c}
}

// Advance ends the current page's turn and shows the next page.
func (ctl Controller) Advance() {
	ctl.c.request(Advance)
}

// Retreat ends the current page's turn and shows the page before it.
func (ctl Controller) Retreat() {
	ctl.c.request(Retreat)
}
