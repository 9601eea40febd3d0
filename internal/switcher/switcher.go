// Package switcher stages and commits a layout plan and drives a full preset switch.
package switcher

import (
	"log"

	"github.com/frudas24/monswitch/internal/display"
	"github.com/frudas24/monswitch/internal/layout"
	"github.com/frudas24/monswitch/internal/monitor"
)

// Lister returns the live desktop monitors.
type Lister func() ([]monitor.Monitor, error)

// Options tunes a preset switch.
type Options struct {
	// DryRun stops after planning without staging anything.
	DryRun bool
	// Lister, when set, is used to check the live layout after commit.
	Lister Lister
}

// Result is the outcome of a switch.
type Result struct {
	State State
	Plan  layout.Plan
}

// Switcher resolves, plans and applies a preset against a display API.
type Switcher struct {
	api   display.API
	opts  Options
	state State
}

// New returns a switcher over api.
func New(api display.API, opts Options) *Switcher {
	return &Switcher{api: api, opts: opts}
}

// Run switches the desktop to preset. On failure the result state is StateAborted.
func (s *Switcher) Run(preset layout.Preset) (Result, error) {
	s.state = StateStart
	var res Result

	primary, secondary, err := display.ResolveNames(s.api)
	if err != nil {
		return s.abort(res, err)
	}
	s.advance(StateNamesResolved)
	debugf("primary=%s secondary=%s", primary, secondary)

	primaryMode, secondaryMode, err := display.ReadModes(s.api, primary, secondary)
	if err != nil {
		return s.abort(res, err)
	}
	s.advance(StateModesRead)
	debugf("current primary=%s secondary=%s", primaryMode, secondaryMode)

	res.Plan, err = layout.Build(preset,
		layout.Screen{Device: primary, Mode: primaryMode},
		layout.Screen{Device: secondary, Mode: secondaryMode},
	)
	if err != nil {
		return s.abort(res, err)
	}
	s.advance(StatePlanned)
	if res.Plan.Ambiguous {
		log.Printf("warning: both displays are %dpx wide; treating primary %s as %s", layout.AnchorWidth, primary, layout.Anchor)
	}

	if s.opts.DryRun {
		res.State = s.state
		return res, nil
	}

	if err := apply(s.api, res.Plan, s.advance); err != nil {
		return s.abort(res, err)
	}

	s.verify(res.Plan)
	s.advance(StateDone)
	res.State = s.state
	return res, nil
}

// State returns the current step of the last run.
func (s *Switcher) State() State {
	return s.state
}

// advance moves to the next state.
func (s *Switcher) advance(next State) {
	debugf("state %s -> %s", s.state, next)
	s.state = next
}

// abort records the failure state and returns err.
func (s *Switcher) abort(res Result, err error) (Result, error) {
	debugf("state %s -> %s: %v", s.state, StateAborted, err)
	s.state = StateAborted
	res.State = s.state
	return res, err
}

// verify logs a warning for each planned monitor whose live bounds differ from its target.
func (s *Switcher) verify(plan layout.Plan) {
	if s.opts.Lister == nil {
		return
	}
	list, err := s.opts.Lister()
	if err != nil {
		log.Printf("warning: could not list monitors after apply: %v", err)
		return
	}
	for _, m := range list {
		debugf("monitor %s", m)
	}

	for _, want := range []layout.Target{plan.Rotating, plan.Anchor} {
		got, ok := monitor.FindByDevice(list, want.Device)
		if !ok {
			log.Printf("warning: %s monitor %s not found after apply", want.Role, want.Device)
			continue
		}
		m := want.Mode
		if !monitor.Matches(got, int(m.X), int(m.Y), int(m.Width), int(m.Height)) || got.Primary != want.Primary {
			log.Printf("warning: %s monitor is %s, expected %dx%d@%d,%d primary=%v",
				want.Role, got, m.Width, m.Height, m.X, m.Y, want.Primary)
		}
	}
}
