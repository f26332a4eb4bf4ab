package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerAggregate is one grouped row of the per-customer aggregation pass.
type CustomerAggregate struct {
	CustomerCode     string
	CustomerName     string
	TotalSpend       decimal.Decimal
	PurchaseCount    int64
	DistinctProducts int64
	FirstPurchase    time.Time
	LastPurchase     time.Time
}

// ProductAggregate is one grouped row of the per-product aggregation pass.
type ProductAggregate struct {
	ProductCode       string
	ProductName       string
	QuantitySold      decimal.Decimal
	TotalValue        decimal.Decimal
	TransactionCount  int64
	DistinctCustomers int64
	AvgMarginPercent  float64
	TotalDiscount     decimal.Decimal
	TotalSurcharge    decimal.Decimal
	FirstSale         time.Time
	LastSale          time.Time
}

// PairAggregate is one grouped row of the (customer, product) pass.
type PairAggregate struct {
	CustomerCode  string
	CustomerName  string
	ProductCode   string
	ProductName   string
	Quantity      decimal.Decimal
	TotalValue    decimal.Decimal
	PurchaseCount int64
	FirstPurchase time.Time
	LastPurchase  time.Time
}

// DateTotal is one grouped row of the per-date revenue pass, used to build
// monthly series without loading the raw ledger.
type DateTotal struct {
	Date         time.Time
	TotalValue   decimal.Decimal
	Transactions int64
}

// TransactionProduct is a distinct (transaction, product) membership pair,
// used by the co-occurrence miner.
type TransactionProduct struct {
	TransactionID string
	ProductCode   string
	ProductName   string
}

// Repository is the read side of the ledger plus the bulk replace used by
// imports. Aggregation queries exclude rows with empty customer or product
// codes.
type Repository interface {
	ReplaceAll(ctx context.Context, lines []*SaleLine) (int, error)
	Count(ctx context.Context) (int64, error)

	CustomerAggregates(ctx context.Context) ([]CustomerAggregate, error)
	ProductAggregates(ctx context.Context) ([]ProductAggregate, error)
	PairAggregates(ctx context.Context) ([]PairAggregate, error)

	// DateTotals returns per-date revenue and transaction counts over
	// aggregable rows, ascending by date.
	DateTotals(ctx context.Context) ([]DateTotal, error)

	// PurchaseDates returns the distinct purchase dates for one customer in
	// ascending order.
	PurchaseDates(ctx context.Context, customerCode string) ([]time.Time, error)

	// TransactionIDsForProduct returns the distinct transaction ids that
	// contain the given product.
	TransactionIDsForProduct(ctx context.Context, productCode string) ([]string, error)

	// ProductsInTransactions returns the distinct (transaction, product)
	// pairs across the given transactions.
	ProductsInTransactions(ctx context.Context, transactionIDs []string) ([]TransactionProduct, error)

	// LinesForCustomer and LinesForProduct return the raw lines for one
	// entity, oldest first.
	LinesForCustomer(ctx context.Context, customerCode string) ([]*SaleLine, error)
	LinesForProduct(ctx context.Context, productCode string) ([]*SaleLine, error)
}
