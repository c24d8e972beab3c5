package animator

import (
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/netdiagram"
)

// Runner executes plans on a diagram, one run at a time.
type Runner struct {
	clock   clock.Clock
	diagram *netdiagram.Diagram
	gen     uint64
	current *Plan

	// OnStage is called after each stage has been applied.
	OnStage func(run uint64, digit int, stage string)
}

func NewRunner(c clock.Clock, d *netdiagram.Diagram) *Runner {
	return &Runner{clock: c, diagram: d}
}

func (r *Runner) Diagram() *netdiagram.Diagram { return r.diagram }

// Current returns the plan of the latest run, or nil.
func (r *Runner) Current() *Plan { return r.current }

// Animate starts a run for digit d. Every pending stage of earlier runs is
// invalidated first; zero-delay stages apply immediately.
func (r *Runner) Animate(d int) error {
	plan, err := NewPlan(r.diagram.Topology(), d)
	if err != nil {
		return err
	}
	r.Cancel()
	r.current = plan
	gen := r.gen
	for _, st := range plan.Stages {
		st := st
		if st.Delay <= 0 {
			r.apply(gen, plan.Digit, st)
			continue
		}
		r.clock.AfterFunc(st.Delay, func() { r.apply(gen, plan.Digit, st) })
	}
	return nil
}

// Cancel drops every pending stage of the current run.
func (r *Runner) Cancel() {
	r.gen++
}

func (r *Runner) apply(gen uint64, digit int, st Stage) {
	if gen != r.gen {
		return
	}
	st.Apply(r.diagram)
	if r.OnStage != nil {
		r.OnStage(gen, digit, st.Name)
	}
}
