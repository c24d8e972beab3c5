package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/predict"
)

// styles is the set of lipgloss styles derived from one theme.
type styles struct {
	box      lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	big      lipgloss.Style
	ink      lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	errStyle lipgloss.Style
	tiers    map[predict.Tier]lipgloss.Style
	diagram  []lipgloss.Style
}

func newStyles(t Theme, pal netdiagram.Palette) styles {
	return styles{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(48),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		big:      lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		ink:      lipgloss.NewStyle().Foreground(t.Ink),
		graph:    lipgloss.NewStyle().Foreground(t.Secondary),
		help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		errStyle: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		tiers: map[predict.Tier]lipgloss.Style{
			predict.TierHigh:   lipgloss.NewStyle().Foreground(t.High).Bold(true),
			predict.TierMedium: lipgloss.NewStyle().Foreground(t.Medium),
			predict.TierLow:    lipgloss.NewStyle().Foreground(t.Low),
		},
		diagram: diagramStyles(pal),
	}
}

// diagramStyles maps canvas levels to colors: edges first, then nodes, so a
// cell holding a node is colored as the node. Dim nodes use their outline
// color to stay visible on dark terminals.
func diagramStyles(pal netdiagram.Palette) []lipgloss.Style {
	out := make([]lipgloss.Style, 2*visualCount+1)
	out[0] = lipgloss.NewStyle()
	for v := netdiagram.Visual(0); v < visualCount; v++ {
		out[edgeLevel(v)] = lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Edge[v].Stroke))
		fill := pal.Node[v].Fill
		if v < netdiagram.Active {
			fill = pal.Node[v].Stroke
		}
		out[nodeLevel(v)] = lipgloss.NewStyle().Foreground(lipgloss.Color(fill))
	}
	return out
}

const visualCount = netdiagram.Output + 1

func edgeLevel(v netdiagram.Visual) uint8 { return uint8(v) + 1 }

func nodeLevel(v netdiagram.Visual) uint8 { return uint8(visualCount) + uint8(v) + 1 }

// ProgressBar renders a probability bar in the tier's color.
func ProgressBar(percent float64, width int, style lipgloss.Style) string {
	filled := int(percent*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// Decorative separator
func Separator(width int, style lipgloss.Style) string {
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return style.Render(left + " ◆ " + right)
}
