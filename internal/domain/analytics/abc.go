package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ABCTier is the Pareto revenue-contribution tier of a product.
type ABCTier string

const (
	TierA ABCTier = "A"
	TierB ABCTier = "B"
	TierC ABCTier = "C"
)

var (
	abcCutA = decimal.NewFromInt(70)
	abcCutB = decimal.NewFromInt(90)
)

// ClassifyABC assigns ABC tiers in place over the full product set. Products
// are ranked by total value descending with product code as a deterministic
// secondary key, then tiered by cumulative share of the grand total: A while
// the cumulative share stays at or below 70%, B at or below 90%, C beyond.
// An all-zero product set tiers everything A, which only happens on an empty
// or worthless ledger.
func ClassifyABC(products []*ProductRollup) {
	if len(products) == 0 {
		return
	}

	ranked := make([]*ProductRollup, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := ranked[i].TotalValue.Cmp(ranked[j].TotalValue)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].ProductCode < ranked[j].ProductCode
	})

	grandTotal := decimal.Zero
	for _, p := range ranked {
		grandTotal = grandTotal.Add(p.TotalValue)
	}

	cumulative := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, p := range ranked {
		cumulative = cumulative.Add(p.TotalValue)
		share := decimal.Zero
		if grandTotal.Sign() > 0 {
			share = cumulative.Div(grandTotal).Mul(hundred)
		}
		switch {
		case share.LessThanOrEqual(abcCutA):
			p.ABCTier = TierA
		case share.LessThanOrEqual(abcCutB):
			p.ABCTier = TierB
		default:
			p.ABCTier = TierC
		}
	}
}

// ScorePerformance assigns the display-ranking score in place:
// 0.4 * value share of the best seller + 0.3 * customer share of the widest
// reach + 0.3 * repurchase rate. Zero maxima contribute zero.
func ScorePerformance(products []*ProductRollup) {
	maxValue := decimal.Zero
	var maxCustomers int64
	for _, p := range products {
		if p.TotalValue.GreaterThan(maxValue) {
			maxValue = p.TotalValue
		}
		if p.DistinctCustomers > maxCustomers {
			maxCustomers = p.DistinctCustomers
		}
	}

	for _, p := range products {
		var valueTerm, customerTerm float64
		if maxValue.Sign() > 0 {
			valueTerm, _ = p.TotalValue.Div(maxValue).Float64()
		}
		if maxCustomers > 0 {
			customerTerm = float64(p.DistinctCustomers) / float64(maxCustomers)
		}
		p.PerformanceScore = 0.4*valueTerm + 0.3*customerTerm + 0.3*(p.RepurchaseRate/100)
	}
}
