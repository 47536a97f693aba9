package scope

import "time"

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameFunc is run by a Scheduler on the next display refresh.
type FrameFunc func(now time.Time)

// Scheduler supplies display-synchronised callbacks. Cancelling an unknown or
// already run frame is a no-op.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// ParamSource supplies the parameters read at the start of every frame.
type ParamSource interface {
	Params() Params
}

// Drawer is the frame work driven by a Controller; *Renderer implements it.
type Drawer interface {
	Render(p *Params, now time.Time)
	DrawIdle(p *Params)
}

// RunState is the acquisition state of a Controller.
type RunState int

// Run states
const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Controller owns the self-rescheduling frame chain.
//
// At most one chain is live: every state change cancels the pending frame and
// bumps the generation before anything is rescheduled, and a callback from an
// older generation returns without drawing. A Controller is not safe for
// concurrent use; call it from the goroutine that runs the Scheduler.
type Controller struct {
	drawer Drawer
	sched  Scheduler
	params ParamSource

	state      RunState
	generation uint64
	pending    FrameID
	hasPending bool
	closed     bool
}

// NewController creates a stopped controller.
func NewController(d Drawer, sched Scheduler, params ParamSource) *Controller {
	return &Controller{drawer: d, sched: sched, params: params}
}

// State returns the current run state.
func (c *Controller) State() RunState { return c.state }

// Start begins a fresh frame chain, replacing any chain already running.
func (c *Controller) Start() {
	if c.closed {
		return
	}
	c.cancel()
	c.state = Running
	c.schedule()
}

// Stop cancels the pending frame and draws the grid once.
func (c *Controller) Stop() {
	c.cancel()
	c.state = Stopped
	if c.closed {
		return
	}
	p := c.params.Params()
	c.drawer.DrawIdle(&p)
}

// SetRunning starts or stops the chain.
func (c *Controller) SetRunning(running bool) {
	if running {
		c.Start()
	} else {
		c.Stop()
	}
}

// Sync applies the Running flag of the current parameters.
func (c *Controller) Sync() {
	c.SetRunning(c.params.Params().Running)
}

// Close stops the chain for good. Later Start calls are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.Stop()
	c.closed = true
}

func (c *Controller) cancel() {
	if c.hasPending {
		c.sched.CancelFrame(c.pending)
		c.hasPending = false
	}
	c.generation++
}

func (c *Controller) schedule() {
	gen := c.generation
	c.pending = c.sched.RequestFrame(func(now time.Time) {
		c.frame(gen, now)
	})
	c.hasPending = true
}

func (c *Controller) frame(gen uint64, now time.Time) {
	if gen != c.generation || c.state != Running {
		return
	}
	c.hasPending = false

	p := c.params.Params()
	c.drawer.Render(&p, now)

	// Render may have reentered Stop or Start.
	if gen != c.generation || c.state != Running {
		return
	}
	c.schedule()
}
