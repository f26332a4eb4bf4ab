package analytics

import (
	"fmt"
	"strings"
)

// Recommendation urgencies.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Recommendation types.
type RecommendationType string

const (
	RecommendationReactivation RecommendationType = "Reactivation"
	RecommendationLoyalty      RecommendationType = "Loyalty"
	RecommendationFollowUp     RecommendationType = "Follow-up"
	RecommendationCrossSell    RecommendationType = "Cross-sell"
	RecommendationRepurchase   RecommendationType = "Repurchase reminder"
)

// Recommendation is a generated action item. It is never persisted; a fresh
// list is produced on each query.
type Recommendation struct {
	Type      RecommendationType `json:"type"`
	Urgency   Urgency            `json:"urgency"`
	Action    string             `json:"action"`
	Rationale string             `json:"rationale"`
}

// RecommendationInput bundles the signals the generator combines for one
// customer.
type RecommendationInput struct {
	Segment       Segment
	DaysSinceLast int
	Frequency     FrequencyResult
	CrossSell     []CrossSellSuggestion
	// OverdueRepurchases holds the products the customer bought more than
	// once whose last purchase is over 60 days old.
	OverdueRepurchases []*CustomerProductRollup
}

// GenerateRecommendations evaluates the five action rules in order. The
// rules are independent: every triggered rule appends its item, so one
// customer can collect several recommendations in a single pass.
func GenerateRecommendations(in RecommendationInput) []Recommendation {
	recs := make([]Recommendation, 0, 4)

	if in.Segment == SegmentEmRisco {
		recs = append(recs, Recommendation{
			Type:      RecommendationReactivation,
			Urgency:   UrgencyHigh,
			Action:    "Immediate contact with special discount",
			Rationale: fmt.Sprintf("No purchases in the last %d days", in.DaysSinceLast),
		})
	}

	if in.Segment == SegmentVIP {
		recs = append(recs, Recommendation{
			Type:      RecommendationLoyalty,
			Urgency:   UrgencyMedium,
			Action:    "Offer exclusive VIP benefits",
			Rationale: "High-value customer relationship worth protecting",
		})
	}

	if in.Frequency.Status == FrequencyStatusOverdue {
		overdueBy := float64(in.Frequency.DaysSinceLast) - in.Frequency.MeanIntervalDays
		recs = append(recs, Recommendation{
			Type:      RecommendationFollowUp,
			Urgency:   UrgencyHigh,
			Action:    "Call to understand the absence",
			Rationale: fmt.Sprintf("%.0f days past the usual purchase interval", overdueBy),
		})
	}

	if len(in.CrossSell) > 0 {
		names := make([]string, 0, 2)
		for _, s := range in.CrossSell {
			names = append(names, s.ProductName)
			if len(names) == 2 {
				break
			}
		}
		recs = append(recs, Recommendation{
			Type:      RecommendationCrossSell,
			Urgency:   UrgencyMedium,
			Action:    fmt.Sprintf("Suggest %s", strings.Join(names, ", ")),
			Rationale: "Popular among customers with a similar purchase profile",
		})
	}

	if len(in.OverdueRepurchases) > 0 {
		names := make([]string, 0, 2)
		for _, p := range in.OverdueRepurchases {
			names = append(names, p.ProductName)
			if len(names) == 2 {
				break
			}
		}
		recs = append(recs, Recommendation{
			Type:      RecommendationRepurchase,
			Urgency:   UrgencyHigh,
			Action:    fmt.Sprintf("Remind about %s", strings.Join(names, ", ")),
			Rationale: "Recurring products overdue for repurchase",
		})
	}

	return recs
}
