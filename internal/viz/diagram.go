package viz

import (
	"image"

	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/surface"
)

// drawDiagram paints d onto c, scaling the layout to the canvas. Edges that
// are not part of a path are left out; at braille resolution all 528 of them
// would fill the canvas.
func drawDiagram(c *Canvas, d *netdiagram.Diagram, lay netdiagram.Layout) {
	c.Clear()
	sx := float64(c.DotsWide()-1) / lay.Width
	sy := float64(c.DotsHigh()-1) / lay.Height

	d.EachEdge(func(l, from, to int, v netdiagram.Visual) {
		if v < netdiagram.Active {
			return
		}
		x1, y1, x2, y2 := lay.EdgeEnds(l, from, to)
		c.PaintLine(int(x1*sx), int(y1*sy), int(x2*sx), int(y2*sy), edgeLevel(v))
	})

	d.EachNode(func(l, i int, v netdiagram.Visual) {
		p := lay.Nodes[l][i]
		r := int(p.R * sx / 2)
		if v >= netdiagram.Active {
			r++
		}
		c.PaintDisc(int(p.X*sx), int(p.Y*sy), r, nodeLevel(v))
	})
}

// drawSurface samples surf into c, one dot per block of surface pixels. A dot is
// set when any pixel of its block carries ink.
func drawSurface(c *Canvas, surf *surface.Surface) {
	c.Clear()
	img := surf.Snapshot()
	w, h := surf.Width(), surf.Height()
	dw, dh := c.DotsWide(), c.DotsHigh()

	for dy := 0; dy < dh; dy++ {
		y0, y1 := dy*h/dh, (dy+1)*h/dh
		for dx := 0; dx < dw; dx++ {
			x0, x1 := dx*w/dw, (dx+1)*w/dw
			if blockHasInk(img, x0, y0, x1, y1) {
				c.Paint(dx, dy, 1)
			}
		}
	}
}

func blockHasInk(img *image.RGBA, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if surface.Ink(img, x, y) {
				return true
			}
		}
	}
	return false
}
