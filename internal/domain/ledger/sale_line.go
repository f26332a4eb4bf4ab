package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendascrm/backend/internal/domain/shared"
)

// SaleLine is one raw line item of the sales ledger. Lines are immutable
// once written; the whole ledger is replaced on re-import.
type SaleLine struct {
	shared.BaseEntity
	TransactionID   string
	Date            time.Time
	ProductCode     string
	ProductName     string
	CustomerCode    string
	CustomerName    string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	BasePrice       decimal.Decimal
	FinalPrice      decimal.Decimal
	Discount        decimal.Decimal
	Surcharge       decimal.Decimal
	GrossValue      decimal.Decimal
	NetTotal        decimal.Decimal
	SalespersonCode string
	SalespersonName string
}

// NewSaleLine creates a ledger line. Transaction id and date are mandatory;
// customer and product codes may be empty, such rows are kept but excluded
// from aggregation.
func NewSaleLine(transactionID string, date time.Time) (*SaleLine, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction id is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale date is required")
	}
	return &SaleLine{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: transactionID,
		Date:          date,
	}, nil
}

// Aggregable reports whether the line participates in rollups. Rows with an
// unknown customer or product are stored but never aggregated.
func (l *SaleLine) Aggregable() bool {
	return strings.TrimSpace(l.CustomerCode) != "" && strings.TrimSpace(l.ProductCode) != ""
}

// MarginPercent computes the row margin as (final - base) / base * 100.
// A non-positive base price yields 0 rather than a division error.
func (l *SaleLine) MarginPercent() float64 {
	if l.BasePrice.Sign() <= 0 {
		return 0
	}
	m, _ := l.FinalPrice.Sub(l.BasePrice).
		Div(l.BasePrice).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return m
}
