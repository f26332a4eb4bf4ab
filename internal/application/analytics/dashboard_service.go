package analyticsapp

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
)

const maxDashboardEntries = 10

// DashboardService assembles the landing-page KPIs from the rollup tables
// and the per-date revenue pass.
type DashboardService struct {
	rollupRepo analytics.RollupRepository
	ledgerRepo ledger.Repository
	cache      cache.AnalysisCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(
	rollupRepo analytics.RollupRepository,
	ledgerRepo ledger.Repository,
	analysisCache cache.AnalysisCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		rollupRepo: rollupRepo,
		ledgerRepo: ledgerRepo,
		cache:      analysisCache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetDashboard computes the KPIs. An empty dataset yields zeros and empty
// lists, never an error.
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	key, err := s.cache.Key(ctx, "dashboard")
	if err != nil {
		s.logger.Debug("cache key unavailable", zap.Error(err))
		key = ""
	}
	if key != "" {
		var cached Dashboard
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	customers, err := s.rollupRepo.AllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.rollupRepo.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	dateTotals, err := s.ledgerRepo.DateTotals(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Customers:           int64(len(customers)),
		Products:            int64(len(products)),
		SegmentDistribution: segmentDistribution(customers),
		TopProducts:         topN(products, maxDashboardEntries),
		TopCustomers:        topN(customers, maxDashboardEntries),
		MonthlyRevenue:      monthlyRevenue(dateTotals),
	}
	for _, dt := range dateTotals {
		dashboard.TotalRevenue = dashboard.TotalRevenue.Add(dt.TotalValue)
		dashboard.Transactions += dt.Transactions
	}
	if dashboard.Transactions > 0 {
		dashboard.AvgTicket = dashboard.TotalRevenue.DivRound(decimal.NewFromInt(dashboard.Transactions), 4)
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, dashboard, s.cacheTTL); err != nil {
			s.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return dashboard, nil
}

// segmentDistribution counts customers and spend per segment, ordered by
// spend descending.
func segmentDistribution(customers []*analytics.CustomerRollup) []SegmentSlice {
	index := make(map[analytics.Segment]int)
	slices := make([]SegmentSlice, 0)
	for _, c := range customers {
		i, ok := index[c.Segment]
		if !ok {
			index[c.Segment] = len(slices)
			slices = append(slices, SegmentSlice{Segment: c.Segment})
			i = len(slices) - 1
		}
		slices[i].Customers++
		slices[i].TotalSpend = slices[i].TotalSpend.Add(c.TotalSpend)
	}
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].TotalSpend.Equal(slices[j].TotalSpend) {
			return slices[i].TotalSpend.GreaterThan(slices[j].TotalSpend)
		}
		return slices[i].Segment < slices[j].Segment
	})
	return slices
}

// topN keeps the first n entries of an already-ordered rollup list.
func topN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// monthlyRevenue folds the per-date totals into a YYYY-MM series, ascending.
func monthlyRevenue(dateTotals []ledger.DateTotal) []MonthlyRevenuePoint {
	index := make(map[string]int)
	series := make([]MonthlyRevenuePoint, 0)
	for _, dt := range dateTotals {
		month := dt.Date.Format("2006-01")
		i, ok := index[month]
		if !ok {
			index[month] = len(series)
			series = append(series, MonthlyRevenuePoint{Month: month})
			i = len(series) - 1
		}
		series[i].TotalValue = series[i].TotalValue.Add(dt.TotalValue)
		series[i].Transactions += dt.Transactions
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}
