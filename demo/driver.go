package demo

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/ncdemo/render"
	"github.com/lixenwraith/ncdemo/terminal"
)

// Opener acquires a rendering context
type Opener func(opts render.Options) (render.Context, error)

// Plan holds the arguments of the fixed call sequence
type Plan struct {
	Fg    terminal.RGB
	Row   int
	Col   int
	Pause time.Duration
}

// DefaultPlan is the canonical demo: magenta foreground, cursor to (1,1), five second pause
func DefaultPlan() Plan {
	return Plan{
		Fg:    terminal.RGB{R: 200, G: 0, B: 200},
		Row:   1,
		Col:   1,
		Pause: 5 * time.Second,
	}
}

// Call is one delegated operation as issued by the driver
type Call struct {
	Step  Step
	Color terminal.RGB  // StepSetFg
	Row   int           // StepMove
	Col   int           // StepMove
	Pause time.Duration // StepPause
}

func (c Call) String() string {
	switch c.Step {
	case StepSetFg:
		return fmt.Sprintf("%s(%d,%d,%d)", c.Step, c.Color.R, c.Color.G, c.Color.B)
	case StepMove:
		return fmt.Sprintf("%s(%d,%d)", c.Step, c.Row, c.Col)
	case StepPause:
		return fmt.Sprintf("%s(%s)", c.Step, c.Pause)
	default:
		return c.Step.String()
	}
}

// Driver sequences the demo against a rendering context.
// A Driver runs once; build a new one for another run.
type Driver struct {
	open  Opener
	plan  Plan
	sleep func(time.Duration)
	log   *zap.Logger

	ran   bool
	state State
	trace []Call
}

// Option customizes a Driver
type Option func(*Driver)

// WithSleep replaces time.Sleep for the pause step
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Driver) {
		d.sleep = sleep
	}
}

// WithLogger attaches a logger; the default discards
func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDriver creates a driver for the given opener and plan
func NewDriver(open Opener, plan Plan, opts ...Option) *Driver {
	d := &Driver{
		open:  open,
		plan:  plan,
		sleep: time.Sleep,
		log:   zap.NewNop(),
		state: StateUninitialized,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current driver state
func (d *Driver) State() State {
	return d.state
}

// Trace returns the delegated calls issued so far, in order
func (d *Driver) Trace() []Call {
	out := make([]Call, len(d.trace))
	copy(out, d.trace)
	return out
}

// Run executes the full sequence.
// Returns nil on success, *InitError if no context was acquired, *OpError otherwise.
// Once a context is acquired it is stopped exactly once before Run returns.
func (d *Driver) Run(opts render.Options) error {
	if d.ran {
		return fmt.Errorf("driver already ran: state %s", d.state)
	}
	d.ran = true

	d.record(Call{Step: StepInit})
	ctx, err := d.open(opts)
	if err != nil {
		d.log.Error("initialization failed", zap.Error(err))
		return &InitError{Err: err}
	}
	if ctx == nil {
		return &InitError{Err: render.ErrUnsupported}
	}
	d.transition(StateInitialized)

	steps := []struct {
		call Call
		next State
		run  func() error
	}{
		{
			call: Call{Step: StepSetFg, Color: d.plan.Fg},
			next: StateColorSet,
			run:  func() error { return ctx.SetFgRGB8(d.plan.Fg.R, d.plan.Fg.G, d.plan.Fg.B) },
		},
		{
			call: Call{Step: StepRender},
			next: StateRendered,
			run:  ctx.Render,
		},
		{
			call: Call{Step: StepMove, Row: d.plan.Row, Col: d.plan.Col},
			next: StateMoved,
			run:  func() error { return ctx.Move(d.plan.Row, d.plan.Col) },
		},
		// Move does not flush
		{
			call: Call{Step: StepRender},
			next: StateRendered,
			run:  ctx.Render,
		},
	}

	for _, s := range steps {
		d.record(s.call)
		if err := s.run(); err != nil {
			return d.fail(ctx, s.call.Step, err)
		}
		d.transition(s.next)
	}

	d.record(Call{Step: StepPause, Pause: d.plan.Pause})
	d.sleep(d.plan.Pause)

	d.record(Call{Step: StepStop})
	err = ctx.Stop()
	d.transition(StateTornDown)
	if err != nil {
		d.log.Error("teardown failed", zap.Error(err))
		return &OpError{Step: StepStop, Err: err}
	}

	d.log.Debug("demo complete", zap.Stringers("trace", d.trace))
	return nil
}

// fail routes an operational failure through the single teardown
func (d *Driver) fail(ctx render.Context, step Step, err error) error {
	d.log.Error("step failed", zap.Stringer("step", step), zap.Error(err))
	d.transition(StateFailing)

	d.record(Call{Step: StepStop})
	stopErr := ctx.Stop()
	d.transition(StateTornDown)
	if stopErr != nil {
		d.log.Error("teardown after failure failed", zap.Error(stopErr))
	}

	return &OpError{Step: step, Err: err, StopErr: stopErr}
}

func (d *Driver) record(c Call) {
	d.trace = append(d.trace, c)
}

// transition moves to next; an illegal move is logged and ignored
func (d *Driver) transition(next State) {
	if !d.state.canTransition(next) {
		d.log.DPanic("illegal transition", zap.Stringer("from", d.state), zap.Stringer("to", next))
		return
	}
	d.log.Debug("state", zap.Stringer("from", d.state), zap.Stringer("to", next))
	d.state = next
}
