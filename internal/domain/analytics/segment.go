package analytics

// Segment is the discrete lifecycle classification of a customer.
type Segment string

const (
	SegmentVIP           Segment = "VIP"
	SegmentFiel          Segment = "Fiel"
	SegmentRegular       Segment = "Regular"
	SegmentNovo          Segment = "Novo"
	SegmentOneShot       Segment = "One-Shot"
	SegmentEmRisco       Segment = "Em Risco"
	SegmentEmCrescimento Segment = "Em Crescimento"
	SegmentInativo       Segment = "Inativo"
)

type segmentRule struct {
	matches func(purchaseCount int64, daysSinceLast int) bool
	segment Segment
}

// segmentRules is an ordered decision table, first match wins. The order is
// part of the contract: a customer with one purchase 95 days ago is Inativo,
// not One-Shot, because the inactivity rule is evaluated first.
var segmentRules = []segmentRule{
	{func(c int64, d int) bool { return c >= 10 && d <= 30 }, SegmentVIP},
	{func(c int64, d int) bool { return c >= 5 && d <= 60 }, SegmentFiel},
	{func(c int64, d int) bool { return c >= 3 && d <= 90 }, SegmentRegular},
	{func(c int64, d int) bool { return d > 90 }, SegmentInativo},
	{func(c int64, d int) bool { return c == 1 && d <= 30 }, SegmentNovo},
	{func(c int64, d int) bool { return c == 1 }, SegmentOneShot},
	{func(c int64, d int) bool { return d > 60 }, SegmentEmRisco},
}

// ClassifySegment assigns a segment from purchase count and recency. It is a
// pure function with no cross-customer state.
func ClassifySegment(purchaseCount int64, daysSinceLast int) Segment {
	for _, rule := range segmentRules {
		if rule.matches(purchaseCount, daysSinceLast) {
			return rule.segment
		}
	}
	return SegmentEmCrescimento
}
