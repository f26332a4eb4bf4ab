package analyticsapp

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
)

func marginLine(txn string, date time.Time, base, final float64) *ledger.SaleLine {
	return &ledger.SaleLine{
		TransactionID: txn,
		Date:          date,
		ProductCode:   "P001",
		CustomerCode:  "C001",
		BasePrice:     decimal.NewFromFloat(base),
		FinalPrice:    decimal.NewFromFloat(final),
		NetTotal:      decimal.NewFromFloat(final),
		Quantity:      decimal.NewFromInt(1),
	}
}

func TestProductAnalysisService_GetProductAnalysis(t *testing.T) {
	product := &analytics.ProductRollup{
		ProductCode: "P001",
		ProductName: "CASTANHA DO PARA",
		Category:    "Oleaginosas",
	}
	buyers := []*analytics.CustomerProductRollup{
		{CustomerCode: "C001", ProductCode: "P001", TotalValue: decimal.NewFromInt(500)},
		{CustomerCode: "C002", ProductCode: "P001", TotalValue: decimal.NewFromInt(200)},
	}
	lines := []*ledger.SaleLine{
		marginLine("T1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 10, 12),
		marginLine("T2", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 10, 11),
		marginLine("T3", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), 0, 15),
	}

	t.Run("assembles the composite view", func(t *testing.T) {
		rollupRepo := new(MockRollupRepository)
		ledgerRepo := new(MockLedgerRepository)

		rollupRepo.On("ProductByCode", mock.Anything, "P001").Return(product, nil)
		rollupRepo.On("PairsForProduct", mock.Anything, "P001").Return(buyers, nil)
		ledgerRepo.On("LinesForProduct", mock.Anything, "P001").Return(lines, nil)
		ledgerRepo.On("TransactionIDsForProduct", mock.Anything, "P001").Return([]string{"T1", "T2", "T3"}, nil)
		ledgerRepo.On("ProductsInTransactions", mock.Anything, []string{"T1", "T2", "T3"}).Return([]ledger.TransactionProduct{
			{TransactionID: "T1", ProductCode: "P001", ProductName: "CASTANHA DO PARA"},
			{TransactionID: "T1", ProductCode: "P002", ProductName: "UVA PASSA"},
			{TransactionID: "T2", ProductCode: "P002", ProductName: "UVA PASSA"},
			{TransactionID: "T3", ProductCode: "P003", ProductName: "CHA VERDE"},
		}, nil)

		svc := NewProductAnalysisService(rollupRepo, ledgerRepo, cache.NewInMemoryAnalysisCache(), time.Minute, zap.NewNop())

		result, err := svc.GetProductAnalysis(context.Background(), "P001")
		require.NoError(t, err)

		assert.Equal(t, "P001", result.Product.ProductCode)
		assert.Len(t, result.TopBuyers, 2)

		require.Len(t, result.MonthlySeries, 2)
		assert.Equal(t, "2024-01", result.MonthlySeries[0].Month)
		assert.True(t, result.MonthlySeries[0].TotalValue.Equal(decimal.NewFromInt(23)))
		assert.Equal(t, 2, result.MonthlySeries[0].Transactions)

		require.Len(t, result.Complementary, 2)
		assert.Equal(t, "P002", result.Complementary[0].ProductCode)
		assert.InDelta(t, 66.666, result.Complementary[0].Confidence, 0.01)

		// Margins 20%, 10% and 0% (zero base price).
		assert.InDelta(t, 10.0, result.Margin.AvgMarginPercent, 0.001)
		assert.InDelta(t, 0.0, result.Margin.MinMarginPercent, 0.001)
		assert.InDelta(t, 20.0, result.Margin.MaxMarginPercent, 0.001)
	})

	t.Run("unknown product returns not found", func(t *testing.T) {
		rollupRepo := new(MockRollupRepository)
		ledgerRepo := new(MockLedgerRepository)
		rollupRepo.On("ProductByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		svc := NewProductAnalysisService(rollupRepo, ledgerRepo, cache.NewInMemoryAnalysisCache(), time.Minute, zap.NewNop())

		_, err := svc.GetProductAnalysis(context.Background(), "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMonthlySeries(t *testing.T) {
	lines := []*ledger.SaleLine{
		marginLine("T1", time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), 10, 12),
		marginLine("T2", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 10, 12),
		marginLine("T2", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 10, 12),
	}

	series := monthlySeries(lines)

	require.Len(t, series, 2)
	assert.Equal(t, "2023-12", series[0].Month)
	assert.Equal(t, "2024-01", series[1].Month)
	// Two lines of the same transaction count once.
	assert.Equal(t, 1, series[1].Transactions)
	assert.True(t, series[1].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestMarginSummary_Empty(t *testing.T) {
	summary := marginSummary(nil)

	assert.Zero(t, summary.AvgMarginPercent)
	assert.True(t, summary.TotalDiscount.IsZero())
}

func TestSeasonality(t *testing.T) {
	jan2023 := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	jan2024 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jun2023 := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	sep2023 := time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC)

	lines := []*ledger.SaleLine{
		// January averages 1000 across two years.
		marginLine("T1", jan2023, 0, 900),
		marginLine("T2", jan2024, 0, 1100),
		// June and September stay near the mean.
		marginLine("T3", jun2023, 0, 400),
		marginLine("T4", sep2023, 0, 100),
	}

	points := seasonality(lines)
	require.Len(t, points, 3)

	byMonth := make(map[int]SeasonalityPoint)
	for _, p := range points {
		byMonth[p.Month] = p
	}

	// Mean of (1000, 400, 100) = 500; 1000 > 650 is a peak, 100 < 350 is low.
	assert.Equal(t, SeasonPeak, byMonth[1].Classification)
	assert.Equal(t, SeasonNormal, byMonth[6].Classification)
	assert.Equal(t, SeasonLow, byMonth[9].Classification)
	assert.InDelta(t, 1000, byMonth[1].AvgValue, 0.001)
}

func TestSeasonality_Empty(t *testing.T) {
	assert.Nil(t, seasonality(nil))
}
