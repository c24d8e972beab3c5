package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/digitlive/internal/render"
)

const barWidth = 20

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Left drag  - Draw                   ║
║  Right drag - Erase                  ║
║  C          - Clear the canvas       ║
║  R          - Reload the connection  ║
║  V          - Toggle list / network  ║
║  S          - Save a snapshot        ║
║  T          - Cycle themes           ║
║  ?          - Toggle this help       ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝
`

// View renders the drawing box and the result panel.
func (m Model) View() string {
	drawSurface(m.preview, m.client.Surface())
	box := m.st.box.Render(m.preview.Render([]lipgloss.Style{lipgloss.NewStyle(), m.st.ink}))

	state := m.client.State()
	var panel string
	if state.View == render.ViewDiagram {
		panel = m.viewDiagram(state)
	} else {
		panel = m.viewList(state)
	}

	var s strings.Builder
	s.WriteString(m.st.header.Render("DIGITLIVE") + "  " + m.st.label.Render(m.client.ChannelState().String()) + m.st.help.Render(state.View.String()) + "\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, box, m.st.panel.Render(panel)))
	s.WriteString("\n" + m.st.help.Render("drag:draw  right:erase  c:clear  r:reload  v:view  s:save  t:theme  ?:help  q:quit"))
	if m.status != "" {
		s.WriteString("\n" + m.st.label.Render(m.status))
	}
	if m.showHelp {
		return s.String() + "\n" + helpText
	}
	return s.String()
}

func (m Model) viewList(state render.State) string {
	var s strings.Builder
	m.writeReadouts(&s, state)

	if state.Display.Err != "" {
		s.WriteString(m.st.errStyle.Render(state.Display.Err) + "\n")
	}
	for _, row := range state.Display.Rows {
		style := m.st.tiers[row.Tier]
		s.WriteString(fmt.Sprintf("%s %s %s\n",
			style.Render(fmt.Sprintf("%d", row.Digit)),
			ProgressBar(row.Probability, barWidth, style),
			style.Render(fmt.Sprintf("%6s", row.Percent())),
		))
	}

	if hist := m.client.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("Confidence"),
		)
		s.WriteString("\n" + m.st.graph.Render(chart) + "\n")
	}

	m.writeStats(&s)
	return s.String()
}

func (m Model) viewDiagram(state render.State) string {
	var s strings.Builder
	m.writeReadouts(&s, state)

	drawDiagram(m.diagram, m.client.Diagram(), m.layout)
	s.WriteString(m.diagram.Render(m.st.diagram) + "\n")
	if state.Display.Err != "" {
		s.WriteString(m.st.errStyle.Render(state.Display.Err) + "\n")
	} else if state.Display.Label != "" {
		s.WriteString(m.st.big.Render(state.Display.Label) + "\n")
	}
	return s.String()
}

func (m Model) writeReadouts(s *strings.Builder, state render.State) {
	pred := m.st.big
	if state.Display.Prediction == render.ErrorText {
		pred = m.st.errStyle
	}
	s.WriteString(m.st.label.Render("Prediction") + pred.Render(state.Display.Prediction) + "\n")
	s.WriteString(m.st.label.Render("Confidence") + m.st.value.Render(state.Display.Confidence) + "\n")
	s.WriteString(Separator(30, m.st.label.UnsetWidth()) + "\n")
}

func (m Model) writeStats(s *strings.Builder) {
	sched := m.client.SchedulerStats()
	stats := m.client.Stats()
	s.WriteString("\n")
	s.WriteString(m.st.label.Render("Period") + m.st.value.Render(m.client.Period().String()) + "\n")
	s.WriteString(m.st.label.Render("Sent") + m.st.value.Render(fmt.Sprintf("%d", sched.Sent-stats.Dropped)) + "\n")
	s.WriteString(m.st.label.Render("Dropped") + m.st.value.Render(fmt.Sprintf("%d", stats.Dropped)) + "\n")
	s.WriteString(m.st.label.Render("Replies") + m.st.value.Render(fmt.Sprintf("%d ok / %d err", stats.Results, stats.Server+stats.Malformed)) + "\n")
}
