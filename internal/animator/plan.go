package animator

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/digitlive/internal/netdiagram"
)

var ErrDigitRange = errors.New("animator: digit outside output layer")

// Stage offsets from the invocation instant.
const (
	InputDelay  = 100 * time.Millisecond
	Layer2Delay = 300 * time.Millisecond
	Layer3Delay = 500 * time.Millisecond
	Layer4Delay = 700 * time.Millisecond
	OutputDelay = 900 * time.Millisecond
)

// Stage is one delayed action of a run.
type Stage struct {
	Delay time.Duration
	Name  string
	Apply func(*netdiagram.Diagram)
}

// Plan is the ordered list of stages for one digit.
type Plan struct {
	Digit     int
	Selection Selection
	Stages    []Stage

	activated [][]int
}

// Activated returns the nodes that actually fired in layer l so far.
func (p *Plan) Activated(l int) []int {
	if l < 0 || l >= len(p.activated) {
		return nil
	}
	return p.activated[l]
}

// NewPlan builds the stages for digit d on topology t. The topology must have
// five layers and d must index a node of the last one.
func NewPlan(t netdiagram.Topology, d int) (*Plan, error) {
	if t.Layers() != len(seedFactors)+1 {
		return nil, fmt.Errorf("animator: need %d layers, got %d", len(seedFactors)+1, t.Layers())
	}
	out := t.Layers() - 1
	if !t.HasNode(out, d) {
		return nil, fmt.Errorf("%w: %d", ErrDigitRange, d)
	}

	sizes := make([]int, t.Layers())
	for l := range sizes {
		sizes[l] = t.Size(l)
	}
	p := &Plan{
		Digit:     d,
		Selection: Select(d, sizes),
		activated: make([][]int, t.Layers()),
	}

	p.Stages = []Stage{
		{Delay: 0, Name: "reset", Apply: reset},
		{Delay: InputDelay, Name: "input", Apply: p.input},
		{Delay: Layer2Delay, Name: "layer2", Apply: p.propagate(1)},
		{Delay: Layer3Delay, Name: "layer3", Apply: p.propagate(2)},
		{Delay: Layer4Delay, Name: "layer4", Apply: p.propagate(3)},
		{Delay: OutputDelay, Name: "output", Apply: p.commit},
	}
	return p, nil
}

func reset(d *netdiagram.Diagram) {
	d.Fill(netdiagram.Inactive)
}

func (p *Plan) input(d *netdiagram.Diagram) {
	p.activated[0] = nil
	for _, i := range p.Selection[0] {
		if d.SetNode(0, i, netdiagram.Active) {
			p.activated[0] = append(p.activated[0], i)
		}
	}
}

// propagate activates each chosen node of layer l that has an edge from an
// activated node of layer l-1, together with those edges.
func (p *Plan) propagate(l int) func(*netdiagram.Diagram) {
	return func(d *netdiagram.Diagram) {
		p.activated[l] = nil
		for _, to := range p.Selection[l] {
			fired := false
			for _, from := range p.activated[l-1] {
				if d.SetEdge(l-1, from, to, netdiagram.Active) {
					fired = true
				}
			}
			if fired {
				d.SetNode(l, to, netdiagram.Active)
				p.activated[l] = append(p.activated[l], to)
			}
		}
	}
}

func (p *Plan) commit(d *netdiagram.Diagram) {
	out := len(p.activated) - 1
	for _, from := range p.activated[out-1] {
		d.SetEdge(out-1, from, p.Digit, netdiagram.Output)
	}
	d.SetNode(out, p.Digit, netdiagram.Output)
	p.activated[out] = []int{p.Digit}
}

// Total is the delay of the last stage.
func (p *Plan) Total() time.Duration {
	var max time.Duration
	for _, s := range p.Stages {
		if s.Delay > max {
			max = s.Delay
		}
	}
	return max
}
