package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/infrastructure/persistence/models"
)

const saleLineInsertBatchSize = 500

// GormSaleLineRepository implements ledger.Repository using GORM. The
// aggregation queries group in SQL and exclude rows with empty customer or
// product codes.
type GormSaleLineRepository struct {
	db *gorm.DB
}

// NewGormSaleLineRepository creates a new GormSaleLineRepository
func NewGormSaleLineRepository(db *gorm.DB) *GormSaleLineRepository {
	return &GormSaleLineRepository{db: db}
}

// ReplaceAll replaces the whole ledger in one transaction.
func (r *GormSaleLineRepository) ReplaceAll(ctx context.Context, lines []*ledger.SaleLine) (int, error) {
	lineModels := make([]models.SaleLineModel, len(lines))
	for i, line := range lines {
		lineModels[i].FromDomain(line)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sale_lines").Error; err != nil {
			return err
		}
		if len(lineModels) == 0 {
			return nil
		}
		return tx.CreateInBatches(lineModels, saleLineInsertBatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(lineModels), nil
}

// Count returns the number of ledger lines.
func (r *GormSaleLineRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SaleLineModel{}).Count(&count).Error
	return count, err
}

type customerAggregateRow struct {
	CustomerCode     string
	CustomerName     string
	TotalSpend       decimal.Decimal
	PurchaseCount    int64
	DistinctProducts int64
	FirstPurchase    time.Time
	LastPurchase     time.Time
}

// CustomerAggregates runs the grouped per-customer pass.
func (r *GormSaleLineRepository) CustomerAggregates(ctx context.Context) ([]ledger.CustomerAggregate, error) {
	var rows []customerAggregateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT customer_code,
		       MAX(customer_name)              AS customer_name,
		       SUM(net_total)                  AS total_spend,
		       COUNT(DISTINCT transaction_id)  AS purchase_count,
		       COUNT(DISTINCT product_code)    AS distinct_products,
		       MIN(date)                       AS first_purchase,
		       MAX(date)                       AS last_purchase
		FROM sale_lines
		WHERE customer_code <> '' AND product_code <> ''
		GROUP BY customer_code`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]ledger.CustomerAggregate, len(rows))
	for i, row := range rows {
		aggregates[i] = ledger.CustomerAggregate{
			CustomerCode:     row.CustomerCode,
			CustomerName:     row.CustomerName,
			TotalSpend:       row.TotalSpend,
			PurchaseCount:    row.PurchaseCount,
			DistinctProducts: row.DistinctProducts,
			FirstPurchase:    row.FirstPurchase,
			LastPurchase:     row.LastPurchase,
		}
	}
	return aggregates, nil
}

type productAggregateRow struct {
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

// ProductAggregates runs the grouped per-product pass. The margin average
// treats rows with a non-positive base price as zero margin rather than
// excluding them.
func (r *GormSaleLineRepository) ProductAggregates(ctx context.Context) ([]ledger.ProductAggregate, error) {
	var rows []productAggregateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT product_code,
		       MAX(product_name)               AS product_name,
		       SUM(quantity)                   AS quantity_sold,
		       SUM(net_total)                  AS total_value,
		       COUNT(DISTINCT transaction_id)  AS transaction_count,
		       COUNT(DISTINCT customer_code)   AS distinct_customers,
		       AVG(CASE WHEN base_price > 0
		                THEN (final_price - base_price) * 100.0 / base_price
		                ELSE 0 END)            AS avg_margin_percent,
		       SUM(discount)                   AS total_discount,
		       SUM(surcharge)                  AS total_surcharge,
		       MIN(date)                       AS first_sale,
		       MAX(date)                       AS last_sale
		FROM sale_lines
		WHERE customer_code <> '' AND product_code <> ''
		GROUP BY product_code`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]ledger.ProductAggregate, len(rows))
	for i, row := range rows {
		aggregates[i] = ledger.ProductAggregate{
			ProductCode:       row.ProductCode,
			ProductName:       row.ProductName,
			QuantitySold:      row.QuantitySold,
			TotalValue:        row.TotalValue,
			TransactionCount:  row.TransactionCount,
			DistinctCustomers: row.DistinctCustomers,
			AvgMarginPercent:  row.AvgMarginPercent,
			TotalDiscount:     row.TotalDiscount,
			TotalSurcharge:    row.TotalSurcharge,
			FirstSale:         row.FirstSale,
			LastSale:          row.LastSale,
		}
	}
	return aggregates, nil
}

type pairAggregateRow struct {
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

// PairAggregates runs the grouped (customer, product) pass.
func (r *GormSaleLineRepository) PairAggregates(ctx context.Context) ([]ledger.PairAggregate, error) {
	var rows []pairAggregateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT customer_code,
		       MAX(customer_name)              AS customer_name,
		       product_code,
		       MAX(product_name)               AS product_name,
		       SUM(quantity)                   AS quantity,
		       SUM(net_total)                  AS total_value,
		       COUNT(DISTINCT transaction_id)  AS purchase_count,
		       MIN(date)                       AS first_purchase,
		       MAX(date)                       AS last_purchase
		FROM sale_lines
		WHERE customer_code <> '' AND product_code <> ''
		GROUP BY customer_code, product_code`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]ledger.PairAggregate, len(rows))
	for i, row := range rows {
		aggregates[i] = ledger.PairAggregate{
			CustomerCode:  row.CustomerCode,
			CustomerName:  row.CustomerName,
			ProductCode:   row.ProductCode,
			ProductName:   row.ProductName,
			Quantity:      row.Quantity,
			TotalValue:    row.TotalValue,
			PurchaseCount: row.PurchaseCount,
			FirstPurchase: row.FirstPurchase,
			LastPurchase:  row.LastPurchase,
		}
	}
	return aggregates, nil
}

type dateTotalRow struct {
	Date         time.Time
	TotalValue   decimal.Decimal
	Transactions int64
}

// DateTotals runs the grouped per-date revenue pass.
func (r *GormSaleLineRepository) DateTotals(ctx context.Context) ([]ledger.DateTotal, error) {
	var rows []dateTotalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT date,
		       SUM(net_total)                  AS total_value,
		       COUNT(DISTINCT transaction_id)  AS transactions
		FROM sale_lines
		WHERE customer_code <> '' AND product_code <> ''
		GROUP BY date
		ORDER BY date ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]ledger.DateTotal, len(rows))
	for i, row := range rows {
		totals[i] = ledger.DateTotal{
			Date:         row.Date,
			TotalValue:   row.TotalValue,
			Transactions: row.Transactions,
		}
	}
	return totals, nil
}

// PurchaseDates returns one customer's distinct purchase dates ascending.
func (r *GormSaleLineRepository) PurchaseDates(ctx context.Context, customerCode string) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.SaleLineModel{}).
		Distinct().
		Where("customer_code = ?", customerCode).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

// TransactionIDsForProduct returns the distinct transactions containing the
// product.
func (r *GormSaleLineRepository) TransactionIDsForProduct(ctx context.Context, productCode string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.SaleLineModel{}).
		Distinct().
		Where("product_code = ?", productCode).
		Pluck("transaction_id", &ids).Error
	return ids, err
}

// ProductsInTransactions returns the distinct (transaction, product) pairs
// across the given transactions.
func (r *GormSaleLineRepository) ProductsInTransactions(ctx context.Context, transactionIDs []string) ([]ledger.TransactionProduct, error) {
	if len(transactionIDs) == 0 {
		return nil, nil
	}
	var pairs []ledger.TransactionProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT transaction_id, product_code, product_name
		FROM sale_lines
		WHERE transaction_id IN ? AND product_code <> ''`, transactionIDs).
		Scan(&pairs).Error
	return pairs, err
}

// LinesForCustomer returns one customer's raw lines oldest first.
func (r *GormSaleLineRepository) LinesForCustomer(ctx context.Context, customerCode string) ([]*ledger.SaleLine, error) {
	return r.findLines(ctx, "customer_code = ?", customerCode)
}

// LinesForProduct returns one product's raw lines oldest first.
func (r *GormSaleLineRepository) LinesForProduct(ctx context.Context, productCode string) ([]*ledger.SaleLine, error) {
	return r.findLines(ctx, "product_code = ?", productCode)
}

func (r *GormSaleLineRepository) findLines(ctx context.Context, query string, arg string) ([]*ledger.SaleLine, error) {
	var lineModels []models.SaleLineModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("date ASC").
		Find(&lineModels).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*ledger.SaleLine, len(lineModels))
	for i := range lineModels {
		lines[i] = lineModels[i].ToDomain()
	}
	return lines, nil
}
