package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRollup is the derived per-customer summary, fully recomputed from
// the ledger on every rebuild.
type CustomerRollup struct {
	CustomerCode     string          `json:"customer_code"`
	CustomerName     string          `json:"customer_name"`
	TotalSpend       decimal.Decimal `json:"total_spend"`
	PurchaseCount    int64           `json:"purchase_count"`
	AvgTicket        decimal.Decimal `json:"avg_ticket"`
	FirstPurchase    time.Time       `json:"first_purchase"`
	LastPurchase     time.Time       `json:"last_purchase"`
	DaysSinceLast    int             `json:"days_since_last"`
	DistinctProducts int64           `json:"distinct_products"`
	Segment          Segment         `json:"segment"`
}

// ProductRollup is the derived per-product summary.
type ProductRollup struct {
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	QuantitySold      decimal.Decimal `json:"quantity_sold"`
	TotalValue        decimal.Decimal `json:"total_value"`
	TransactionCount  int64           `json:"transaction_count"`
	DistinctCustomers int64           `json:"distinct_customers"`
	AvgTicket         decimal.Decimal `json:"avg_ticket"`
	AvgMarginPercent  float64         `json:"avg_margin_percent"`
	RepurchaseRate    float64         `json:"repurchase_rate"`
	FirstSale         time.Time       `json:"first_sale"`
	LastSale          time.Time       `json:"last_sale"`
	DaysSinceLast     int             `json:"days_since_last"`
	Category          Category        `json:"category"`
	ABCTier           ABCTier         `json:"abc_tier"`
	PerformanceScore  float64         `json:"performance_score"`
}

// CustomerProductRollup is the derived (customer, product) purchase summary.
type CustomerProductRollup struct {
	CustomerCode  string          `json:"customer_code"`
	CustomerName  string          `json:"customer_name"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PurchaseCount int64           `json:"purchase_count"`
	FirstPurchase time.Time       `json:"first_purchase"`
	LastPurchase  time.Time       `json:"last_purchase"`
	DaysSinceLast int             `json:"days_since_last"`
}
