package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendascrm/backend/internal/domain/ledger"
)

// SaleLineModel is the persistence model for raw ledger line items.
type SaleLineModel struct {
	BaseModel
	TransactionID   string          `gorm:"size:50;not null;index"`
	Date            time.Time       `gorm:"not null;index"`
	ProductCode     string          `gorm:"size:50;index"`
	ProductName     string          `gorm:"size:255"`
	CustomerCode    string          `gorm:"size:50;index"`
	CustomerName    string          `gorm:"size:255"`
	Quantity        decimal.Decimal `gorm:"type:decimal(15,3)"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(15,2)"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(15,2)"`
	FinalPrice      decimal.Decimal `gorm:"type:decimal(15,2)"`
	Discount        decimal.Decimal `gorm:"type:decimal(15,2)"`
	Surcharge       decimal.Decimal `gorm:"type:decimal(15,2)"`
	GrossValue      decimal.Decimal `gorm:"type:decimal(15,2)"`
	NetTotal        decimal.Decimal `gorm:"type:decimal(15,2)"`
	SalespersonCode string          `gorm:"size:50"`
	SalespersonName string          `gorm:"size:255"`
}

// TableName returns the table name for SaleLineModel
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts SaleLineModel to a domain SaleLine
func (m *SaleLineModel) ToDomain() *ledger.SaleLine {
	return &ledger.SaleLine{
		BaseEntity:      m.BaseModel.ToDomain(),
		TransactionID:   m.TransactionID,
		Date:            m.Date,
		ProductCode:     m.ProductCode,
		ProductName:     m.ProductName,
		CustomerCode:    m.CustomerCode,
		CustomerName:    m.CustomerName,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		BasePrice:       m.BasePrice,
		FinalPrice:      m.FinalPrice,
		Discount:        m.Discount,
		Surcharge:       m.Surcharge,
		GrossValue:      m.GrossValue,
		NetTotal:        m.NetTotal,
		SalespersonCode: m.SalespersonCode,
		SalespersonName: m.SalespersonName,
	}
}

// FromDomain populates SaleLineModel from a domain SaleLine
func (m *SaleLineModel) FromDomain(l *ledger.SaleLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TransactionID = l.TransactionID
	m.Date = l.Date
	m.ProductCode = l.ProductCode
	m.ProductName = l.ProductName
	m.CustomerCode = l.CustomerCode
	m.CustomerName = l.CustomerName
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.BasePrice = l.BasePrice
	m.FinalPrice = l.FinalPrice
	m.Discount = l.Discount
	m.Surcharge = l.Surcharge
	m.GrossValue = l.GrossValue
	m.NetTotal = l.NetTotal
	m.SalespersonCode = l.SalespersonCode
	m.SalespersonName = l.SalespersonName
}
