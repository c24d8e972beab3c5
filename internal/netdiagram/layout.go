package netdiagram

// Position is the centre and radius of a node.
type Position struct {
	X, Y, R float64
}

// Layout is the static geometry of a diagram.
type Layout struct {
	Width, Height float64
	Nodes         [][]Position
}

var (
	layerX      = []float64{60, 180, 320, 460, 600}
	layerRadius = []float64{10, 12, 12, 12, 14}
)

// DefaultLayout places the default topology on a 660x420 canvas. Ten-node layers
// are spaced 34 apart from y=40, twelve-node layers 32 apart from y=20.
func DefaultLayout(t Topology) Layout {
	lay := Layout{Width: 660, Height: 420, Nodes: make([][]Position, t.Layers())}
	for l := 0; l < t.Layers(); l++ {
		n := t.Size(l)
		x := 60 + float64(l)*135
		r := 12.0
		if l < len(layerX) {
			x, r = layerX[l], layerRadius[l]
		}
		top, step := 20.0, 32.0
		if n <= 10 {
			top, step = 40, 34
		}
		lay.Nodes[l] = make([]Position, n)
		for i := range lay.Nodes[l] {
			lay.Nodes[l][i] = Position{X: x, Y: top + float64(i)*step, R: r}
		}
	}
	return lay
}

// EdgeEnds returns the endpoints of the edge from (l, from) to (l+1, to),
// trimmed to the node rims on the horizontal axis.
func (lay Layout) EdgeEnds(l, from, to int) (x1, y1, x2, y2 float64) {
	a, b := lay.Nodes[l][from], lay.Nodes[l+1][to]
	return a.X + a.R, a.Y, b.X - b.R, b.Y
}
