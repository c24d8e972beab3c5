package export

import (
	"time"

	"github.com/san-kum/digitlive/internal/animator"
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/netdiagram"
)

// Frame returns the diagram as it looks at offset at into an animation of digit.
func Frame(digit int, at time.Duration) (*netdiagram.Diagram, error) {
	clk := clock.NewManual(time.Unix(0, 0))
	d := netdiagram.NewDiagram(netdiagram.DefaultTopology())
	r := animator.NewRunner(clk, d)
	if err := r.Animate(digit); err != nil {
		return nil, err
	}
	clk.Advance(at)
	return d, nil
}
