package netdiagram

import "testing"

func TestDefaultTopology(t *testing.T) {
	topo := DefaultTopology()
	want := []int{10, 12, 12, 12, 10}
	if topo.Layers() != len(want) {
		t.Fatalf("expected %d layers, got %d", len(want), topo.Layers())
	}
	for l, n := range want {
		if topo.Size(l) != n {
			t.Errorf("layer %d: expected %d nodes, got %d", l, n, topo.Size(l))
		}
	}
}

func TestHasEdge(t *testing.T) {
	topo := DefaultTopology()
	tests := []struct {
		l, from, to int
		want        bool
	}{
		{0, 0, 0, true},
		{0, 9, 11, true},
		{3, 11, 9, true},
		{3, 11, 10, false},
		{0, 10, 0, false},
		{4, 0, 0, false},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		if got := topo.HasEdge(tt.l, tt.from, tt.to); got != tt.want {
			t.Errorf("HasEdge(%d,%d,%d) = %v, want %v", tt.l, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDiagramAddressing(t *testing.T) {
	d := NewDiagram(DefaultTopology())

	if !d.SetNode(2, 11, Active) {
		t.Fatal("expected node (2,11) to exist")
	}
	if v, ok := d.Node(2, 11); !ok || v != Active {
		t.Errorf("expected active node, got %v %v", v, ok)
	}
	if d.SetNode(4, 10, Active) {
		t.Error("output layer has only 10 nodes")
	}

	if !d.SetEdge(3, 4, 7, Output) {
		t.Fatal("expected edge (3,4->7) to exist")
	}
	if v, _ := d.Edge(3, 4, 7); v != Output {
		t.Errorf("expected output edge, got %v", v)
	}
	if v, _ := d.Edge(3, 7, 4); v != Idle {
		t.Errorf("reverse edge should be untouched, got %v", v)
	}
}

func TestEdgeCount(t *testing.T) {
	d := NewDiagram(DefaultTopology())
	n := 0
	d.EachEdge(func(l, from, to int, v Visual) { n++ })
	if want := 10*12 + 12*12 + 12*12 + 12*10; n != want {
		t.Errorf("expected %d edges, got %d", want, n)
	}
}

func TestCloneAndEqual(t *testing.T) {
	d := NewDiagram(DefaultTopology())
	d.Fill(Inactive)
	d.SetEdge(0, 1, 2, Active)

	c := d.Clone()
	if !c.Equal(d) {
		t.Fatal("clone should equal original")
	}
	c.SetNode(0, 0, Output)
	if c.Equal(d) {
		t.Error("mutating the clone must not affect equality with original")
	}
	if v, _ := d.Node(0, 0); v != Inactive {
		t.Errorf("original changed through clone: %v", v)
	}
}

func TestDefaultLayout(t *testing.T) {
	lay := DefaultLayout(DefaultTopology())
	if got := lay.Nodes[0][1]; got.X != 60 || got.Y != 74 || got.R != 10 {
		t.Errorf("unexpected input node geometry %+v", got)
	}
	if got := lay.Nodes[1][11]; got.X != 180 || got.Y != 372 {
		t.Errorf("unexpected hidden node geometry %+v", got)
	}
	x1, _, x2, _ := lay.EdgeEnds(3, 0, 0)
	if x1 != 472 || x2 != 586 {
		t.Errorf("unexpected edge ends %v %v", x1, x2)
	}
}
