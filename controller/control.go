package controller

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// ErrControlDisabled rejects a trigger while the control's previous request is in flight.
var ErrControlDisabled = errors.New("control disabled while a request is in flight")

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StatePresented
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingResponse:
		return "awaiting_response"
	case StatePresented:
		return "presented"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Control is one UI trigger. It admits a single operation at a time; a
// disabled control is exactly a control with a request in flight.
type Control struct {
	name string
	sem  *semaphore.Weighted

	mu       sync.Mutex
	state    State
	observer func(name string, from, to State)
}

func NewControl(name string) *Control {
	return &Control{
		name: name,
		sem:  semaphore.NewWeighted(1),
	}
}

func (c *Control) Name() string {
	return c.name
}

// Observe registers fn to be called on every state transition.
func (c *Control) Observe(fn func(name string, from, to State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Control) Enabled() bool {
	return c.State() != StateAwaitingResponse
}

// Run executes op unless another operation holds the control, in which case
// it returns ErrControlDisabled immediately. The prior request is not cancelled.
func (c *Control) Run(ctx context.Context, op func(ctx context.Context) (*Outcome, error)) (*Outcome, error) {
	if !c.sem.TryAcquire(1) {
		return nil, errors.WithStack(ErrControlDisabled)
	}
	defer c.sem.Release(1)

	c.transition(StateAwaitingResponse)
	out, err := op(ctx)
	if err != nil {
		c.transition(StateFailed)
	} else {
		c.transition(StatePresented)
	}
	c.transition(StateIdle)

	return out, err
}

func (c *Control) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	observer := c.observer
	c.mu.Unlock()

	if observer != nil {
		observer(c.name, from, to)
	}
}
