package analyticsapp

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
)

const maxTopBuyers = 10

// Seasonality thresholds relative to the mean monthly value.
const (
	seasonPeakFactor = 1.3
	seasonLowFactor  = 0.7
)

// ProductAnalysisService answers product-side analytics queries.
type ProductAnalysisService struct {
	rollupRepo analytics.RollupRepository
	ledgerRepo ledger.Repository
	cache      cache.AnalysisCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewProductAnalysisService creates a ProductAnalysisService.
func NewProductAnalysisService(
	rollupRepo analytics.RollupRepository,
	ledgerRepo ledger.Repository,
	analysisCache cache.AnalysisCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProductAnalysisService {
	return &ProductAnalysisService{
		rollupRepo: rollupRepo,
		ledgerRepo: ledgerRepo,
		cache:      analysisCache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ListProducts returns a page of product rollups. The filter supports
// category and ABC tier filters plus a code/name search.
func (s *ProductAnalysisService) ListProducts(ctx context.Context, filter shared.Filter) (shared.Paginated[*analytics.ProductRollup], error) {
	products, total, err := s.rollupRepo.Products(ctx, filter)
	if err != nil {
		return shared.Paginated[*analytics.ProductRollup]{}, err
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// GetProduct returns one product rollup or shared.ErrNotFound.
func (s *ProductAnalysisService) GetProduct(ctx context.Context, code string) (*analytics.ProductRollup, error) {
	return s.rollupRepo.ProductByCode(ctx, code)
}

// GetProductAnalysis assembles the full product view: top buyers, monthly
// series, complementary products, margin summary and seasonality profile.
func (s *ProductAnalysisService) GetProductAnalysis(ctx context.Context, code string) (*ProductAnalysis, error) {
	key := s.cacheKey(ctx, "product_analysis", code)
	if key != "" {
		var cached ProductAnalysis
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	product, err := s.rollupRepo.ProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	buyers, err := s.rollupRepo.PairsForProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(buyers) > maxTopBuyers {
		buyers = buyers[:maxTopBuyers]
	}

	lines, err := s.ledgerRepo.LinesForProduct(ctx, code)
	if err != nil {
		return nil, err
	}

	txnIDs, err := s.ledgerRepo.TransactionIDsForProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	memberships, err := s.ledgerRepo.ProductsInTransactions(ctx, txnIDs)
	if err != nil {
		return nil, err
	}

	result := &ProductAnalysis{
		Product:       product,
		TopBuyers:     buyers,
		MonthlySeries: monthlySeries(lines),
		Complementary: analytics.MineComplementary(code, len(txnIDs), memberships),
		Margin:        marginSummary(lines),
		Seasonality:   seasonality(lines),
	}

	s.cacheSet(ctx, key, result)
	return result, nil
}

func (s *ProductAnalysisService) cacheKey(ctx context.Context, parts ...string) string {
	key, err := s.cache.Key(ctx, parts...)
	if err != nil {
		s.logger.Debug("cache key unavailable", zap.Error(err))
		return ""
	}
	return key
}

func (s *ProductAnalysisService) cacheSet(ctx context.Context, key string, value interface{}) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// monthlySeries folds raw lines into a YYYY-MM series, ascending.
func monthlySeries(lines []*ledger.SaleLine) []MonthlyPoint {
	type bucket struct {
		value    decimal.Decimal
		quantity decimal.Decimal
		txns     map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	for _, line := range lines {
		month := line.Date.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{txns: make(map[string]struct{})}
			buckets[month] = b
		}
		b.value = b.value.Add(line.NetTotal)
		b.quantity = b.quantity.Add(line.Quantity)
		b.txns[line.TransactionID] = struct{}{}
	}

	series := make([]MonthlyPoint, 0, len(buckets))
	for month, b := range buckets {
		series = append(series, MonthlyPoint{
			Month:        month,
			TotalValue:   b.value,
			Quantity:     b.quantity,
			Transactions: len(b.txns),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// marginSummary aggregates per-row margins and price adjustments.
func marginSummary(lines []*ledger.SaleLine) MarginSummary {
	summary := MarginSummary{}
	if len(lines) == 0 {
		return summary
	}

	var sum float64
	for i, line := range lines {
		m := line.MarginPercent()
		sum += m
		if i == 0 || m < summary.MinMarginPercent {
			summary.MinMarginPercent = m
		}
		if i == 0 || m > summary.MaxMarginPercent {
			summary.MaxMarginPercent = m
		}
		summary.TotalDiscount = summary.TotalDiscount.Add(line.Discount)
		summary.TotalSurcharge = summary.TotalSurcharge.Add(line.Surcharge)
	}
	summary.AvgMarginPercent = sum / float64(len(lines))
	return summary
}

// seasonality averages the monthly sales totals per calendar month across
// the years in the ledger and tags each month against the overall mean.
func seasonality(lines []*ledger.SaleLine) []SeasonalityPoint {
	// Sum per (year, month) first so multi-year ledgers average whole
	// months, not individual rows.
	type yearMonth struct {
		year  int
		month time.Month
	}
	totals := make(map[yearMonth]decimal.Decimal)
	for _, line := range lines {
		key := yearMonth{line.Date.Year(), line.Date.Month()}
		totals[key] = totals[key].Add(line.NetTotal)
	}
	if len(totals) == 0 {
		return nil
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for key, value := range totals {
		v, _ := value.Float64()
		sums[int(key.month)] += v
		counts[int(key.month)]++
	}

	points := make([]SeasonalityPoint, 0, len(sums))
	var total float64
	for month, sum := range sums {
		avg := sum / float64(counts[month])
		total += avg
		points = append(points, SeasonalityPoint{Month: month, AvgValue: avg})
	}
	mean := total / float64(len(points))

	for i := range points {
		switch {
		case points[i].AvgValue > mean*seasonPeakFactor:
			points[i].Classification = SeasonPeak
		case points[i].AvgValue < mean*seasonLowFactor:
			points[i].Classification = SeasonLow
		default:
			points[i].Classification = SeasonNormal
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
