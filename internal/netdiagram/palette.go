package netdiagram

// Style is how one visual state is painted.
type Style struct {
	Fill    string
	Stroke  string
	Opacity float64
}

// Palette maps visual states to node and edge styles.
type Palette struct {
	Node map[Visual]Style
	Edge map[Visual]Style
}

func DefaultPalette() Palette {
	return Palette{
		Node: map[Visual]Style{
			Idle:     {Fill: "#222222", Stroke: "#888888", Opacity: 1},
			Inactive: {Fill: "#2a2a3a", Stroke: "#888888", Opacity: 1},
			Active:   {Fill: "#7ec8e3", Stroke: "#888888", Opacity: 1},
			Output:   {Fill: "#ffeb3b", Stroke: "#888888", Opacity: 1},
		},
		Edge: map[Visual]Style{
			Idle:     {Stroke: "#bbbbbb", Opacity: 0.5},
			Inactive: {Stroke: "#44445a", Opacity: 0.20},
			Active:   {Stroke: "#7ec8e3", Opacity: 0.45},
			Output:   {Stroke: "#a084e8", Opacity: 0.85},
		},
	}
}
