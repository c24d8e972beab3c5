package export

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/san-kum/digitlive/internal/netdiagram"
)

// DiagramToPNG rasterizes the diagram at its layout size.
func DiagramToPNG(w io.Writer, d *netdiagram.Diagram, lay netdiagram.Layout, pal netdiagram.Palette) error {
	dc := gg.NewContext(int(lay.Width), int(lay.Height))
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(background))

	var err error
	d.EachEdge(func(l, from, to int, v netdiagram.Visual) {
		if err != nil {
			return
		}
		st := pal.Edge[v]
		c := gg.Hex(st.Stroke)
		dc.SetRGBA(c.R, c.G, c.B, st.Opacity)
		dc.SetLineWidth(edgeWidth(v))
		dc.DrawLine(lay.EdgeEnds(l, from, to))
		err = dc.Stroke()
	})
	if err != nil {
		return err
	}

	d.EachNode(func(l, i int, v netdiagram.Visual) {
		if err != nil {
			return
		}
		st := pal.Node[v]
		p := lay.Nodes[l][i]
		dc.DrawCircle(p.X, p.Y, p.R)
		dc.SetHexColor(st.Fill)
		if err = dc.FillPreserve(); err != nil {
			return
		}
		dc.SetHexColor(st.Stroke)
		dc.SetLineWidth(1.5)
		err = dc.Stroke()
	})
	if err != nil {
		return err
	}

	if err := dc.FlushGPU(); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}
