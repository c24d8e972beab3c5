package netdiagram

// Visual is the presentation state of a node or edge.
type Visual uint8

const (
	Idle Visual = iota
	Inactive
	Active
	Output
)

func (v Visual) String() string {
	switch v {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Output:
		return "output"
	default:
		return "idle"
	}
}

// Diagram holds the visual state of every node and edge of a topology.
// Edges are indexed by source layer, source node and target node.
type Diagram struct {
	topo  Topology
	nodes [][]Visual
	edges [][][]Visual
}

func NewDiagram(t Topology) *Diagram {
	d := &Diagram{topo: t}
	d.nodes = make([][]Visual, t.Layers())
	for l := range d.nodes {
		d.nodes[l] = make([]Visual, t.Size(l))
	}
	if t.Layers() > 1 {
		d.edges = make([][][]Visual, t.Layers()-1)
		for l := range d.edges {
			d.edges[l] = make([][]Visual, t.Size(l))
			for i := range d.edges[l] {
				d.edges[l][i] = make([]Visual, t.Size(l+1))
			}
		}
	}
	return d
}

func (d *Diagram) Topology() Topology { return d.topo }

// Node returns the visual of node i in layer l. ok is false for unknown nodes.
func (d *Diagram) Node(l, i int) (v Visual, ok bool) {
	if !d.topo.HasNode(l, i) {
		return Idle, false
	}
	return d.nodes[l][i], true
}

// SetNode updates a node and reports whether it exists.
func (d *Diagram) SetNode(l, i int, v Visual) bool {
	if !d.topo.HasNode(l, i) {
		return false
	}
	d.nodes[l][i] = v
	return true
}

// Edge returns the visual of the edge from (l, from) to (l+1, to).
func (d *Diagram) Edge(l, from, to int) (v Visual, ok bool) {
	if !d.topo.HasEdge(l, from, to) {
		return Idle, false
	}
	return d.edges[l][from][to], true
}

// SetEdge updates an edge and reports whether it exists.
func (d *Diagram) SetEdge(l, from, to int, v Visual) bool {
	if !d.topo.HasEdge(l, from, to) {
		return false
	}
	d.edges[l][from][to] = v
	return true
}

// Fill sets every node and edge to v.
func (d *Diagram) Fill(v Visual) {
	for l := range d.nodes {
		for i := range d.nodes[l] {
			d.nodes[l][i] = v
		}
	}
	for l := range d.edges {
		for i := range d.edges[l] {
			for j := range d.edges[l][i] {
				d.edges[l][i][j] = v
			}
		}
	}
}

// EachNode calls fn for every node in layer order.
func (d *Diagram) EachNode(fn func(l, i int, v Visual)) {
	for l := range d.nodes {
		for i, v := range d.nodes[l] {
			fn(l, i, v)
		}
	}
}

// EachEdge calls fn for every edge in source-layer order.
func (d *Diagram) EachEdge(fn func(l, from, to int, v Visual)) {
	for l := range d.edges {
		for i := range d.edges[l] {
			for j, v := range d.edges[l][i] {
				fn(l, i, j, v)
			}
		}
	}
}

// Clone returns an independent copy.
func (d *Diagram) Clone() *Diagram {
	c := NewDiagram(d.topo)
	for l := range d.nodes {
		copy(c.nodes[l], d.nodes[l])
	}
	for l := range d.edges {
		for i := range d.edges[l] {
			copy(c.edges[l][i], d.edges[l][i])
		}
	}
	return c
}

// Equal reports whether both diagrams share topology and visual state.
func (d *Diagram) Equal(o *Diagram) bool {
	if d.topo.Layers() != o.topo.Layers() {
		return false
	}
	for l := range d.nodes {
		if len(d.nodes[l]) != len(o.nodes[l]) {
			return false
		}
		for i := range d.nodes[l] {
			if d.nodes[l][i] != o.nodes[l][i] {
				return false
			}
		}
	}
	for l := range d.edges {
		for i := range d.edges[l] {
			for j := range d.edges[l][i] {
				if d.edges[l][i][j] != o.edges[l][i][j] {
					return false
				}
			}
		}
	}
	return true
}
