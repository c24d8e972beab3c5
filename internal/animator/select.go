package animator

import "math"

const (
	lcgMul = 9301
	lcgInc = 49297
	lcgMod = 233280

	// PerLayer is how many nodes each layer contributes to a path.
	PerLayer = 3
)

// seedFactors gives, per layer below the output, the seed D*factor+layer.
var seedFactors = []int64{101, 211, 307, 419}

// LCG is the linear congruential generator behind the shuffle.
type LCG struct {
	seed int64
}

func NewLCG(seed int64) *LCG { return &LCG{seed: seed} }

// Next advances the generator and returns a value in [0, 1).
func (g *LCG) Next() float64 {
	g.seed = (g.seed*lcgMul + lcgInc) % lcgMod
	return float64(g.seed) / lcgMod
}

// Shuffle returns a Fisher-Yates permutation of [0, n) driven by seed. The swap
// walks from the top index down.
func Shuffle(n int, seed int64) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	g := NewLCG(seed)
	for i := n - 1; i > 0; i-- {
		j := int(math.Floor(g.Next() * float64(i+1)))
		a[i], a[j] = a[j], a[i]
	}
	return a
}

// Pick returns the first k indices of Shuffle(total, seed).
func Pick(total, k int, seed int64) []int {
	if k > total {
		k = total
	}
	if k <= 0 {
		return nil
	}
	return Shuffle(total, seed)[:k]
}

// Seed returns the selection seed for layer l and digit d.
func Seed(d, l int) int64 {
	return int64(d)*seedFactors[l] + int64(l) + 1
}

// Selection is the chosen node indices for each non-output layer.
type Selection [][]int

// Select computes the selection for digit d over layers with the given sizes.
// Only the first len(sizes)-1 layers, up to four, are selected.
func Select(d int, sizes []int) Selection {
	n := len(sizes) - 1
	if n > len(seedFactors) {
		n = len(seedFactors)
	}
	if n < 0 {
		n = 0
	}
	sel := make(Selection, n)
	for l := 0; l < n; l++ {
		sel[l] = Pick(sizes[l], PerLayer, Seed(d, l))
	}
	return sel
}
