package netdiagram

// Layer indices of the default five-layer topology.
const (
	InputLayer  = 0
	OutputLayer = 4
)

// Topology is an immutable list of layer sizes. Every node of layer l is
// connected to every node of layer l+1.
type Topology struct {
	sizes []int
}

// DefaultTopology returns the 10-12-12-12-10 network.
func DefaultTopology() Topology {
	return NewTopology(10, 12, 12, 12, 10)
}

func NewTopology(sizes ...int) Topology {
	s := make([]int, len(sizes))
	copy(s, sizes)
	return Topology{sizes: s}
}

func (t Topology) Layers() int { return len(t.sizes) }

// Size returns the node count of layer l, or 0 when l is out of range.
func (t Topology) Size(l int) int {
	if l < 0 || l >= len(t.sizes) {
		return 0
	}
	return t.sizes[l]
}

// HasNode reports whether (l, i) names a node.
func (t Topology) HasNode(l, i int) bool {
	return i >= 0 && i < t.Size(l)
}

// HasEdge reports whether an edge runs from node from of layer l to node to of
// layer l+1.
func (t Topology) HasEdge(l, from, to int) bool {
	return t.HasNode(l, from) && t.HasNode(l+1, to)
}
