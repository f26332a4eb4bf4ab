package analyticsapp

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendascrm/backend/internal/domain/analytics"
)

// CustomerAnalysis is the composite customer view assembled on demand from
// the rollups and the raw ledger.
type CustomerAnalysis struct {
	Customer            *analytics.CustomerRollup          `json:"customer"`
	Products            []*analytics.CustomerProductRollup `json:"products"`
	History             []PurchaseHistoryEntry             `json:"history"`
	CategoryBreakdown   []CategoryValue                    `json:"category_breakdown"`
	UnpurchasedProducts []UnpurchasedProduct               `json:"unpurchased_products"`
	Frequency           analytics.FrequencyResult          `json:"frequency"`
	SimilarCustomers    []analytics.SimilarCustomer        `json:"similar_customers"`
	CrossSell           []analytics.CrossSellSuggestion    `json:"cross_sell"`
	Recommendations     []analytics.Recommendation         `json:"recommendations"`
}

// PurchaseHistoryEntry is one transaction of a customer, newest first.
type PurchaseHistoryEntry struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Total         decimal.Decimal `json:"total"`
	Items         int             `json:"items"`
}

// CategoryValue is the spend of one customer inside one product category.
type CategoryValue struct {
	Category   analytics.Category `json:"category"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Share      float64            `json:"share"`
}

// UnpurchasedProduct is a product the customer never bought, ranked by how
// attractive it is as an offer.
type UnpurchasedProduct struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Score       float64 `json:"score"`
}

// CustomersNeedingAction groups the customers the sales team should contact.
type CustomersNeedingAction struct {
	AtRisk       []*analytics.CustomerRollup `json:"at_risk"`
	Reactivation []*analytics.CustomerRollup `json:"reactivation"`
	CrossSell    []*analytics.CustomerRollup `json:"cross_sell"`
}

// ProductAnalysis is the composite product view.
type ProductAnalysis struct {
	Product       *analytics.ProductRollup           `json:"product"`
	TopBuyers     []*analytics.CustomerProductRollup `json:"top_buyers"`
	MonthlySeries []MonthlyPoint                     `json:"monthly_series"`
	Complementary []analytics.ComplementaryProduct   `json:"complementary_products"`
	Margin        MarginSummary                      `json:"margin"`
	Seasonality   []SeasonalityPoint                 `json:"seasonality"`
}

// MonthlyPoint is one month of a product's sales series (YYYY-MM).
type MonthlyPoint struct {
	Month        string          `json:"month"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Quantity     decimal.Decimal `json:"quantity"`
	Transactions int             `json:"transactions"`
}

// MarginSummary summarizes row margins and price adjustments of a product.
type MarginSummary struct {
	AvgMarginPercent float64         `json:"avg_margin_percent"`
	MinMarginPercent float64         `json:"min_margin_percent"`
	MaxMarginPercent float64         `json:"max_margin_percent"`
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	TotalSurcharge   decimal.Decimal `json:"total_surcharge"`
}

// Seasonality classifications.
const (
	SeasonPeak   = "Pico"
	SeasonLow    = "Baixa"
	SeasonNormal = "Normal"
)

// SeasonalityPoint is the average sales value of one calendar month across
// all years in the ledger.
type SeasonalityPoint struct {
	Month          int     `json:"month"`
	AvgValue       float64 `json:"avg_value"`
	Classification string  `json:"classification"`
}

// Dashboard carries the landing-page KPIs.
type Dashboard struct {
	TotalRevenue        decimal.Decimal             `json:"total_revenue"`
	Transactions        int64                       `json:"transactions"`
	Customers           int64                       `json:"customers"`
	Products            int64                       `json:"products"`
	AvgTicket           decimal.Decimal             `json:"avg_ticket"`
	SegmentDistribution []SegmentSlice              `json:"segment_distribution"`
	TopProducts         []*analytics.ProductRollup  `json:"top_products"`
	TopCustomers        []*analytics.CustomerRollup `json:"top_customers"`
	MonthlyRevenue      []MonthlyRevenuePoint       `json:"monthly_revenue"`
}

// SegmentSlice is the customer count and spend of one segment.
type SegmentSlice struct {
	Segment    analytics.Segment `json:"segment"`
	Customers  int               `json:"customers"`
	TotalSpend decimal.Decimal   `json:"total_spend"`
}

// MonthlyRevenuePoint is one month of overall revenue (YYYY-MM).
type MonthlyRevenuePoint struct {
	Month        string          `json:"month"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Transactions int64           `json:"transactions"`
}
