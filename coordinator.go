package pager

import "sync/atomic"

// GenerationLimit bounds the generation counter: generations count 0, 1, …, GenerationLimit-1
// and wrap around to 0.
const GenerationLimit = 255

// Command is a navigation request.
type Command uint32

// Navigation commands.
const (
	None Command = iota
	Advance
	Retreat
)

func (c Command) String() string {
	switch c {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "none"
	}
}

// Coordinator is the state shared by the rotation loop, the turn timers and the controllers.
//
// The generation and the cancel flag live in one word, generation<<1 | cancelled, so a timer can
// cancel "generation G" with a single compare-and-swap: if the loop has moved on to another
// generation in the meantime the swap fails and the timer does nothing.
type Coordinator struct {
	state   atomic.Uint32
	command atomic.Uint32
	wake    chan struct{}
}

// NewCoordinator returns a coordinator at generation 0 with no pending command.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		wake: make(chan struct{}, 1),
	}
}

// Generation returns the current generation.
func (c *Coordinator) Generation() uint32 {
	return c.state.Load() >> 1
}

// Cancelled reports whether the current turn has been cancelled.
func (c *Coordinator) Cancelled() bool {
	return c.state.Load()&1 != 0
}

// begin starts a new turn: it advances the generation, clears the cancel flag and drops any
// wake-up left over from the previous turn. Only the rotation loop calls begin.
func (c *Coordinator) begin() uint32 {
	generation := (c.Generation() + 1) % GenerationLimit
	c.state.Store(generation << 1)
	select {
	case <-c.wake:
	default:
	}
	return generation
}

// expire cancels the turn of generation, if that turn is still the current one. It reports
// whether it did.
func (c *Coordinator) expire(generation uint32) bool {
	if !c.state.CompareAndSwap(generation<<1, generation<<1|1) {
		return false
	}
	c.notify()
	return true
}

// request stores a navigation command, replacing any command not consumed yet, and wakes the
// current turn.
func (c *Coordinator) request(command Command) {
	c.command.Store(uint32(command))
	c.notify()
}

// take consumes the pending command.
func (c *Coordinator) take() Command {
	return Command(c.command.Swap(uint32(None)))
}

// Pending returns the command that has not been consumed yet, if any.
func (c *Coordinator) Pending() Command {
	return Command(c.command.Load())
}

// done is the predicate that ends a turn: the turn was cancelled or a command is waiting.
func (c *Coordinator) done() bool {
	return c.Cancelled() || c.Pending() != None
}

// notify posts a wake-up. Wake-ups coalesce: if one is already pending, the waiter will see it.
func (c *Coordinator) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
