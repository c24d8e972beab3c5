package animator

import (
	"reflect"
	"testing"
)

func TestShuffleKnownSequence(t *testing.T) {
	got := Shuffle(10, 1)
	want := []int{5, 1, 7, 3, 0, 8, 6, 9, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Shuffle(10, 1) = %v, want %v", got, want)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		seen := make(map[int]bool)
		for _, v := range Shuffle(12, seed) {
			if v < 0 || v >= 12 || seen[v] {
				t.Fatalf("seed %d: not a permutation", seed)
			}
			seen[v] = true
		}
	}
}

func TestLCGRange(t *testing.T) {
	g := NewLCG(3775)
	for i := 0; i < 1000; i++ {
		v := g.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("value %v out of [0,1)", v)
		}
	}
}

func TestSelectKnownPaths(t *testing.T) {
	sizes := []int{10, 12, 12, 12, 10}
	tests := []struct {
		digit int
		want  Selection
	}{
		{0, Selection{{5, 1, 7}, {11, 0, 6}, {0, 4, 8}, {3, 8, 9}}},
		{3, Selection{{4, 8, 5}, {8, 4, 3}, {5, 9, 4}, {1, 4, 2}}},
		{7, Selection{{2, 1, 0}, {9, 10, 7}, {10, 8, 3}, {5, 11, 10}}},
		{9, Selection{{0, 6, 1}, {6, 1, 7}, {7, 6, 3}, {11, 5, 1}}},
	}
	for _, tt := range tests {
		if got := Select(tt.digit, sizes); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Select(%d) = %v, want %v", tt.digit, got, tt.want)
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	sizes := []int{10, 12, 12, 12, 10}
	for d := 0; d < 10; d++ {
		a, b := Select(d, sizes), Select(d, sizes)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("digit %d: selections differ: %v vs %v", d, a, b)
		}
		for l, nodes := range a {
			if len(nodes) != PerLayer {
				t.Errorf("digit %d layer %d: expected %d nodes, got %d", d, l, PerLayer, len(nodes))
			}
		}
	}
}

func TestSeed(t *testing.T) {
	if Seed(3, 0) != 304 || Seed(3, 1) != 635 || Seed(3, 2) != 924 || Seed(3, 3) != 1261 {
		t.Errorf("unexpected seeds for digit 3: %d %d %d %d", Seed(3, 0), Seed(3, 1), Seed(3, 2), Seed(3, 3))
	}
}

func TestPickBounds(t *testing.T) {
	if got := Pick(2, 3, 1); len(got) != 2 {
		t.Errorf("expected pick to clamp to layer size, got %v", got)
	}
	if got := Pick(10, 0, 1); got != nil {
		t.Errorf("expected nil for k=0, got %v", got)
	}
}
