package analytics

import (
	"context"

	"github.com/vendascrm/backend/internal/domain/shared"
)

// RollupRepository persists and queries the derived rollup tables. ReplaceAll
// is the only writer and must swap the previous contents atomically from the
// reader's point of view.
type RollupRepository interface {
	ReplaceAll(ctx context.Context, customers []*CustomerRollup, products []*ProductRollup, pairs []*CustomerProductRollup) error

	CustomerByCode(ctx context.Context, code string) (*CustomerRollup, error)
	Customers(ctx context.Context, filter shared.Filter) ([]*CustomerRollup, int64, error)
	AllCustomers(ctx context.Context) ([]*CustomerRollup, error)

	ProductByCode(ctx context.Context, code string) (*ProductRollup, error)
	Products(ctx context.Context, filter shared.Filter) ([]*ProductRollup, int64, error)
	AllProducts(ctx context.Context) ([]*ProductRollup, error)

	PairsForCustomer(ctx context.Context, customerCode string) ([]*CustomerProductRollup, error)
	PairsForProduct(ctx context.Context, productCode string) ([]*CustomerProductRollup, error)
	AllPairs(ctx context.Context) ([]*CustomerProductRollup, error)
}
