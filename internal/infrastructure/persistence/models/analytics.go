package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendascrm/backend/internal/domain/analytics"
)

// CustomerRollupModel is the persistence model for per-customer rollups.
type CustomerRollupModel struct {
	BaseModel
	CustomerCode     string          `gorm:"size:50;not null;uniqueIndex"`
	CustomerName     string          `gorm:"size:255"`
	TotalSpend       decimal.Decimal `gorm:"type:decimal(15,2)"`
	PurchaseCount    int64           `gorm:"not null"`
	AvgTicket        decimal.Decimal `gorm:"type:decimal(15,2)"`
	FirstPurchase    time.Time
	LastPurchase     time.Time
	DaysSinceLast    int    `gorm:"not null"`
	DistinctProducts int64  `gorm:"not null"`
	Segment          string `gorm:"size:30;index"`
}

// TableName returns the table name for CustomerRollupModel
func (CustomerRollupModel) TableName() string {
	return "customer_rollups"
}

// ToDomain converts CustomerRollupModel to a domain CustomerRollup
func (m *CustomerRollupModel) ToDomain() *analytics.CustomerRollup {
	return &analytics.CustomerRollup{
		CustomerCode:     m.CustomerCode,
		CustomerName:     m.CustomerName,
		TotalSpend:       m.TotalSpend,
		PurchaseCount:    m.PurchaseCount,
		AvgTicket:        m.AvgTicket,
		FirstPurchase:    m.FirstPurchase,
		LastPurchase:     m.LastPurchase,
		DaysSinceLast:    m.DaysSinceLast,
		DistinctProducts: m.DistinctProducts,
		Segment:          analytics.Segment(m.Segment),
	}
}

// FromDomain populates CustomerRollupModel from a domain CustomerRollup
func (m *CustomerRollupModel) FromDomain(r *analytics.CustomerRollup) {
	m.CustomerCode = r.CustomerCode
	m.CustomerName = r.CustomerName
	m.TotalSpend = r.TotalSpend
	m.PurchaseCount = r.PurchaseCount
	m.AvgTicket = r.AvgTicket
	m.FirstPurchase = r.FirstPurchase
	m.LastPurchase = r.LastPurchase
	m.DaysSinceLast = r.DaysSinceLast
	m.DistinctProducts = r.DistinctProducts
	m.Segment = string(r.Segment)
}

// ProductRollupModel is the persistence model for per-product rollups.
type ProductRollupModel struct {
	BaseModel
	ProductCode       string          `gorm:"size:50;not null;uniqueIndex"`
	ProductName       string          `gorm:"size:255"`
	QuantitySold      decimal.Decimal `gorm:"type:decimal(15,3)"`
	TotalValue        decimal.Decimal `gorm:"type:decimal(15,2)"`
	TransactionCount  int64           `gorm:"not null"`
	DistinctCustomers int64           `gorm:"not null"`
	AvgTicket         decimal.Decimal `gorm:"type:decimal(15,2)"`
	AvgMarginPercent  float64
	RepurchaseRate    float64
	FirstSale         time.Time
	LastSale          time.Time
	DaysSinceLast     int    `gorm:"not null"`
	Category          string `gorm:"size:50;index"`
	ABCTier           string `gorm:"size:1;index"`
	PerformanceScore  float64
}

// TableName returns the table name for ProductRollupModel
func (ProductRollupModel) TableName() string {
	return "product_rollups"
}

// ToDomain converts ProductRollupModel to a domain ProductRollup
func (m *ProductRollupModel) ToDomain() *analytics.ProductRollup {
	return &analytics.ProductRollup{
		ProductCode:       m.ProductCode,
		ProductName:       m.ProductName,
		QuantitySold:      m.QuantitySold,
		TotalValue:        m.TotalValue,
		TransactionCount:  m.TransactionCount,
		DistinctCustomers: m.DistinctCustomers,
		AvgTicket:         m.AvgTicket,
		AvgMarginPercent:  m.AvgMarginPercent,
		RepurchaseRate:    m.RepurchaseRate,
		FirstSale:         m.FirstSale,
		LastSale:          m.LastSale,
		DaysSinceLast:     m.DaysSinceLast,
		Category:          analytics.Category(m.Category),
		ABCTier:           analytics.ABCTier(m.ABCTier),
		PerformanceScore:  m.PerformanceScore,
	}
}

// FromDomain populates ProductRollupModel from a domain ProductRollup
func (m *ProductRollupModel) FromDomain(r *analytics.ProductRollup) {
	m.ProductCode = r.ProductCode
	m.ProductName = r.ProductName
	m.QuantitySold = r.QuantitySold
	m.TotalValue = r.TotalValue
	m.TransactionCount = r.TransactionCount
	m.DistinctCustomers = r.DistinctCustomers
	m.AvgTicket = r.AvgTicket
	m.AvgMarginPercent = r.AvgMarginPercent
	m.RepurchaseRate = r.RepurchaseRate
	m.FirstSale = r.FirstSale
	m.LastSale = r.LastSale
	m.DaysSinceLast = r.DaysSinceLast
	m.Category = string(r.Category)
	m.ABCTier = string(r.ABCTier)
	m.PerformanceScore = r.PerformanceScore
}

// CustomerProductRollupModel is the persistence model for the
// (customer, product) rollup.
type CustomerProductRollupModel struct {
	BaseModel
	CustomerCode  string          `gorm:"size:50;not null;uniqueIndex:idx_customer_product;index"`
	CustomerName  string          `gorm:"size:255"`
	ProductCode   string          `gorm:"size:50;not null;uniqueIndex:idx_customer_product;index"`
	ProductName   string          `gorm:"size:255"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,3)"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(15,2)"`
	PurchaseCount int64           `gorm:"not null"`
	FirstPurchase time.Time
	LastPurchase  time.Time
	DaysSinceLast int `gorm:"not null"`
}

// TableName returns the table name for CustomerProductRollupModel
func (CustomerProductRollupModel) TableName() string {
	return "customer_product_rollups"
}

// ToDomain converts CustomerProductRollupModel to a domain rollup
func (m *CustomerProductRollupModel) ToDomain() *analytics.CustomerProductRollup {
	return &analytics.CustomerProductRollup{
		CustomerCode:  m.CustomerCode,
		CustomerName:  m.CustomerName,
		ProductCode:   m.ProductCode,
		ProductName:   m.ProductName,
		Quantity:      m.Quantity,
		TotalValue:    m.TotalValue,
		PurchaseCount: m.PurchaseCount,
		FirstPurchase: m.FirstPurchase,
		LastPurchase:  m.LastPurchase,
		DaysSinceLast: m.DaysSinceLast,
	}
}

// FromDomain populates CustomerProductRollupModel from a domain rollup
func (m *CustomerProductRollupModel) FromDomain(r *analytics.CustomerProductRollup) {
	m.CustomerCode = r.CustomerCode
	m.CustomerName = r.CustomerName
	m.ProductCode = r.ProductCode
	m.ProductName = r.ProductName
	m.Quantity = r.Quantity
	m.TotalValue = r.TotalValue
	m.PurchaseCount = r.PurchaseCount
	m.FirstPurchase = r.FirstPurchase
	m.LastPurchase = r.LastPurchase
	m.DaysSinceLast = r.DaysSinceLast
}
