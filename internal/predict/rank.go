package predict

import (
	"fmt"
	"sort"
)

// Tier buckets a probability for display.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// TierOf returns high above 0.8, medium above 0.5 and low otherwise.
func TierOf(p float64) Tier {
	switch {
	case p > 0.8:
		return TierHigh
	case p > 0.5:
		return TierMedium
	default:
		return TierLow
	}
}

// Row is one line of the ranked probability list.
type Row struct {
	Digit       int
	Probability float64
	Tier        Tier
}

// Percent formats the probability with one decimal, e.g. "70.0%".
func (r Row) Percent() string { return Percent(r.Probability) }

func Percent(p float64) string { return fmt.Sprintf("%.1f%%", p*100) }

// Rank sorts digits by descending probability. Ties keep digit order.
func Rank(probs [Digits]float64) []Row {
	rows := make([]Row, Digits)
	for d, p := range probs {
		rows[d] = Row{Digit: d, Probability: p, Tier: TierOf(p)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Probability > rows[j].Probability
	})
	return rows
}
