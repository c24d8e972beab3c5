package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/digitlive/internal/netdiagram"
)

const background = "#0a0a0a"

// DiagramToSVG draws every node and edge of d with its current visual state.
// A non-empty label is written under the diagram.
func DiagramToSVG(d *netdiagram.Diagram, lay netdiagram.Layout, pal netdiagram.Palette, label string) string {
	if d == nil {
		return ""
	}

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g id="edges">
`, lay.Width, lay.Height, lay.Width, lay.Height, background))

	d.EachEdge(func(l, from, to int, v netdiagram.Visual) {
		st := pal.Edge[v]
		x1, y1, x2, y2 := lay.EdgeEnds(l, from, to)
		sb.WriteString(fmt.Sprintf(`<line id="edge-%d-%d-%d" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f" class="%s"/>
`, l, from, to, x1, y1, x2, y2, st.Stroke, st.Opacity, edgeWidth(v), v))
	})

	sb.WriteString("</g>\n<g id=\"nodes\">\n")

	d.EachNode(func(l, i int, v netdiagram.Visual) {
		st := pal.Node[v]
		p := lay.Nodes[l][i]
		sb.WriteString(fmt.Sprintf(`<circle id="node-%d-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5" class="%s"/>
`, l, i, p.X, p.Y, p.R, st.Fill, st.Stroke, v))
	})

	sb.WriteString("</g>\n")
	if label != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffeb3b" font-family="monospace" font-size="16" text-anchor="middle">%s</text>
`, lay.Width/2, lay.Height-8, escape(label)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func edgeWidth(v netdiagram.Visual) float64 {
	if v == netdiagram.Output {
		return 2.5
	}
	if v == netdiagram.Active {
		return 1.8
	}
	return 1.0
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
