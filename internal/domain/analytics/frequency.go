package analytics

import (
	"math"
	"sort"
	"time"
)

// Frequency analyzer statuses.
const (
	FrequencyStatusNew         = "New Customer"
	FrequencyStatusOverdue     = "Overdue – needs contact"
	FrequencyStatusApproaching = "Approaching purchase time"
	FrequencyStatusWithin      = "Within pattern"
)

// FrequencyResult is the purchase-cycle profile of one customer. Numeric
// fields are meaningful only when Status differs from FrequencyStatusNew.
type FrequencyResult struct {
	Status             string    `json:"status"`
	PurchaseDates      int       `json:"purchase_dates"`
	MeanIntervalDays   float64   `json:"mean_interval_days"`
	StdDevIntervalDays float64   `json:"stddev_interval_days"`
	DaysSinceLast      int       `json:"days_since_last"`
	LastPurchase       time.Time `json:"last_purchase"`
	PredictedNext      time.Time `json:"predicted_next"`
}

// AnalyzeFrequency derives the inter-purchase interval distribution from a
// customer's purchase dates and forecasts the next purchase. This is a
// renewal heuristic over day gaps, not a fitted model: the mean gap projects
// the next date, and one sample standard deviation of slack separates
// "approaching" from "overdue".
func AnalyzeFrequency(dates []time.Time, now time.Time) FrequencyResult {
	days := distinctDays(dates)
	if len(days) < 2 {
		return FrequencyResult{Status: FrequencyStatusNew, PurchaseDates: len(days)}
	}

	gaps := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		gaps = append(gaps, days[i].Sub(days[i-1]).Hours()/24)
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	// Sample standard deviation; a single gap has no spread.
	stddev := 0.0
	if len(gaps) > 1 {
		var sq float64
		for _, g := range gaps {
			sq += (g - mean) * (g - mean)
		}
		stddev = math.Sqrt(sq / float64(len(gaps)-1))
	}

	last := days[len(days)-1]
	daysSinceLast := int(truncateToDay(now).Sub(last).Hours() / 24)

	result := FrequencyResult{
		PurchaseDates:      len(days),
		MeanIntervalDays:   mean,
		StdDevIntervalDays: stddev,
		DaysSinceLast:      daysSinceLast,
		LastPurchase:       last,
		PredictedNext:      last.Add(time.Duration(mean * 24 * float64(time.Hour))),
	}

	switch {
	case float64(daysSinceLast) > mean+stddev:
		result.Status = FrequencyStatusOverdue
	case float64(daysSinceLast) > mean:
		result.Status = FrequencyStatusApproaching
	default:
		result.Status = FrequencyStatusWithin
	}
	return result
}

// distinctDays truncates to calendar days, deduplicates and sorts ascending.
func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := truncateToDay(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
