package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
)

// MockLedgerRepository is a mock implementation of ledger.Repository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ReplaceAll(ctx context.Context, lines []*ledger.SaleLine) (int, error) {
	args := m.Called(ctx, lines)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CustomerAggregates(ctx context.Context) ([]ledger.CustomerAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.CustomerAggregate), args.Error(1)
}

func (m *MockLedgerRepository) ProductAggregates(ctx context.Context) ([]ledger.ProductAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ProductAggregate), args.Error(1)
}

func (m *MockLedgerRepository) PairAggregates(ctx context.Context) ([]ledger.PairAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.PairAggregate), args.Error(1)
}

func (m *MockLedgerRepository) DateTotals(ctx context.Context) ([]ledger.DateTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.DateTotal), args.Error(1)
}

func (m *MockLedgerRepository) PurchaseDates(ctx context.Context, customerCode string) ([]time.Time, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockLedgerRepository) TransactionIDsForProduct(ctx context.Context, productCode string) ([]string, error) {
	args := m.Called(ctx, productCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepository) ProductsInTransactions(ctx context.Context, transactionIDs []string) ([]ledger.TransactionProduct, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.TransactionProduct), args.Error(1)
}

func (m *MockLedgerRepository) LinesForCustomer(ctx context.Context, customerCode string) ([]*ledger.SaleLine, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.SaleLine), args.Error(1)
}

func (m *MockLedgerRepository) LinesForProduct(ctx context.Context, productCode string) ([]*ledger.SaleLine, error) {
	args := m.Called(ctx, productCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.SaleLine), args.Error(1)
}

// MockRollupRepository is a mock implementation of analytics.RollupRepository
type MockRollupRepository struct {
	mock.Mock
}

func (m *MockRollupRepository) ReplaceAll(ctx context.Context, customers []*analytics.CustomerRollup, products []*analytics.ProductRollup, pairs []*analytics.CustomerProductRollup) error {
	args := m.Called(ctx, customers, products, pairs)
	return args.Error(0)
}

func (m *MockRollupRepository) CustomerByCode(ctx context.Context, code string) (*analytics.CustomerRollup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CustomerRollup), args.Error(1)
}

func (m *MockRollupRepository) Customers(ctx context.Context, filter shared.Filter) ([]*analytics.CustomerRollup, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*analytics.CustomerRollup), args.Get(1).(int64), args.Error(2)
}

func (m *MockRollupRepository) AllCustomers(ctx context.Context) ([]*analytics.CustomerRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.CustomerRollup), args.Error(1)
}

func (m *MockRollupRepository) ProductByCode(ctx context.Context, code string) (*analytics.ProductRollup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.ProductRollup), args.Error(1)
}

func (m *MockRollupRepository) Products(ctx context.Context, filter shared.Filter) ([]*analytics.ProductRollup, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*analytics.ProductRollup), args.Get(1).(int64), args.Error(2)
}

func (m *MockRollupRepository) AllProducts(ctx context.Context) ([]*analytics.ProductRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.ProductRollup), args.Error(1)
}

func (m *MockRollupRepository) PairsForCustomer(ctx context.Context, customerCode string) ([]*analytics.CustomerProductRollup, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.CustomerProductRollup), args.Error(1)
}

func (m *MockRollupRepository) PairsForProduct(ctx context.Context, productCode string) ([]*analytics.CustomerProductRollup, error) {
	args := m.Called(ctx, productCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.CustomerProductRollup), args.Error(1)
}

func (m *MockRollupRepository) AllPairs(ctx context.Context) ([]*analytics.CustomerProductRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.CustomerProductRollup), args.Error(1)
}
