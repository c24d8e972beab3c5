package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("expected dots 1 and 8, got %U", c.Grid[0][0])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][0])
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 8)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("out of range pixels were drawn")
	}
}

func TestPaintKeepsHighestLevel(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Paint(0, 0, 3)
	c.Paint(1, 1, 1)
	if c.Level[0][0] != 3 {
		t.Errorf("level = %d, want 3", c.Level[0][0])
	}
	c.Clear()
	if c.Level[0][0] != 0 || c.Grid[0][0] != blank {
		t.Error("clear left state behind")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	if c.Grid[0][0]&0x1 == 0 {
		t.Error("start point missing")
	}
	if c.Grid[1][3]&0x80 == 0 {
		t.Error("end point missing")
	}
}

func TestPaintDisc(t *testing.T) {
	c := NewCanvas(4, 2)
	c.PaintDisc(4, 4, 1, 2)
	for _, p := range [][2]int{{4, 4}, {3, 4}, {5, 4}, {4, 3}, {4, 5}} {
		row, col := p[1]/4, p[0]/2
		if c.Grid[row][col]&rune(pixelMap[p[1]%4][p[0]%2]) == 0 {
			t.Errorf("pixel %v not set", p)
		}
	}
	if c.Grid[0][0] != blank {
		t.Error("disc leaked outside its radius")
	}
}

func TestRenderRows(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Paint(0, 0, 1)
	out := c.Render([]lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()})
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 rows, got %d newlines", got)
	}
	if !strings.ContainsRune(out, 0x2801) {
		t.Error("painted dot missing from output")
	}
}
