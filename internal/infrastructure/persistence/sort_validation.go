package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not in the
// whitelist. Field names are interpolated into ORDER BY, so anything outside
// the whitelist must never pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerRollupSortFields contains allowed sort fields for customer rollups
var CustomerRollupSortFields = map[string]bool{
	"customer_code":     true,
	"customer_name":     true,
	"total_spend":       true,
	"purchase_count":    true,
	"avg_ticket":        true,
	"last_purchase":     true,
	"days_since_last":   true,
	"distinct_products": true,
	"segment":           true,
}

// ProductRollupSortFields contains allowed sort fields for product rollups
var ProductRollupSortFields = map[string]bool{
	"product_code":       true,
	"product_name":       true,
	"quantity_sold":      true,
	"total_value":        true,
	"transaction_count":  true,
	"distinct_customers": true,
	"avg_ticket":         true,
	"repurchase_rate":    true,
	"last_sale":          true,
	"days_since_last":    true,
	"category":           true,
	"abc_tier":           true,
	"performance_score":  true,
}
