package analyticsapp

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
)

// AggregationService recomputes the rollup tables from the raw ledger. A
// rebuild is exclusive: a second concurrent call fails fast instead of
// queueing behind the first.
type AggregationService struct {
	ledgerRepo ledger.Repository
	rollupRepo analytics.RollupRepository
	cache      cache.AnalysisCache
	logger     *zap.Logger
	now        func() time.Time

	mu sync.Mutex
}

// NewAggregationService creates an AggregationService.
func NewAggregationService(
	ledgerRepo ledger.Repository,
	rollupRepo analytics.RollupRepository,
	analysisCache cache.AnalysisCache,
	logger *zap.Logger,
) *AggregationService {
	return &AggregationService{
		ledgerRepo: ledgerRepo,
		rollupRepo: rollupRepo,
		cache:      analysisCache,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the reference clock used for recency calculations.
func (s *AggregationService) WithClock(now func() time.Time) *AggregationService {
	s.now = now
	return s
}

// Rebuild recomputes all three rollup tables from the full ledger and swaps
// them in atomically, then orphans every cached analysis payload. An empty
// ledger produces empty rollups and succeeds. Returns
// shared.ErrRebuildInProgress when another rebuild holds the lock.
func (s *AggregationService) Rebuild(ctx context.Context) error {
	if !s.mu.TryLock() {
		return shared.ErrRebuildInProgress
	}
	defer s.mu.Unlock()

	start := s.now()
	now := start

	if err := ctx.Err(); err != nil {
		return err
	}
	customerAggs, err := s.ledgerRepo.CustomerAggregates(ctx)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	productAggs, err := s.ledgerRepo.ProductAggregates(ctx)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	pairAggs, err := s.ledgerRepo.PairAggregates(ctx)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	customers := buildCustomerRollups(customerAggs, now)
	products := buildProductRollups(productAggs, pairAggs, now)
	pairs := buildPairRollups(pairAggs, now)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.rollupRepo.ReplaceAll(ctx, customers, products, pairs); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("cache invalidation after rebuild failed", zap.Error(err))
	}

	s.logger.Info("metrics rebuild complete",
		zap.Int("customers", len(customers)),
		zap.Int("products", len(products)),
		zap.Int("pairs", len(pairs)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func buildCustomerRollups(aggs []ledger.CustomerAggregate, now time.Time) []*analytics.CustomerRollup {
	rollups := make([]*analytics.CustomerRollup, len(aggs))
	for i, agg := range aggs {
		days := daysBetween(agg.LastPurchase, now)
		r := &analytics.CustomerRollup{
			CustomerCode:     agg.CustomerCode,
			CustomerName:     agg.CustomerName,
			TotalSpend:       agg.TotalSpend,
			PurchaseCount:    agg.PurchaseCount,
			FirstPurchase:    agg.FirstPurchase,
			LastPurchase:     agg.LastPurchase,
			DaysSinceLast:    days,
			DistinctProducts: agg.DistinctProducts,
			Segment:          analytics.ClassifySegment(agg.PurchaseCount, days),
		}
		if agg.PurchaseCount > 0 {
			r.AvgTicket = agg.TotalSpend.DivRound(decimal.NewFromInt(agg.PurchaseCount), 4)
		}
		rollups[i] = r
	}
	return rollups
}

func buildProductRollups(aggs []ledger.ProductAggregate, pairAggs []ledger.PairAggregate, now time.Time) []*analytics.ProductRollup {
	repurchase := repurchaseRates(pairAggs)

	rollups := make([]*analytics.ProductRollup, len(aggs))
	for i, agg := range aggs {
		r := &analytics.ProductRollup{
			ProductCode:       agg.ProductCode,
			ProductName:       agg.ProductName,
			QuantitySold:      agg.QuantitySold,
			TotalValue:        agg.TotalValue,
			TransactionCount:  agg.TransactionCount,
			DistinctCustomers: agg.DistinctCustomers,
			AvgMarginPercent:  agg.AvgMarginPercent,
			RepurchaseRate:    repurchase[agg.ProductCode],
			FirstSale:         agg.FirstSale,
			LastSale:          agg.LastSale,
			DaysSinceLast:     daysBetween(agg.LastSale, now),
			Category:          analytics.ClassifyCategory(agg.ProductName),
		}
		if agg.TransactionCount > 0 {
			r.AvgTicket = agg.TotalValue.DivRound(decimal.NewFromInt(agg.TransactionCount), 4)
		}
		rollups[i] = r
	}

	analytics.ClassifyABC(rollups)
	analytics.ScorePerformance(rollups)
	return rollups
}

func buildPairRollups(aggs []ledger.PairAggregate, now time.Time) []*analytics.CustomerProductRollup {
	rollups := make([]*analytics.CustomerProductRollup, len(aggs))
	for i, agg := range aggs {
		rollups[i] = &analytics.CustomerProductRollup{
			CustomerCode:  agg.CustomerCode,
			CustomerName:  agg.CustomerName,
			ProductCode:   agg.ProductCode,
			ProductName:   agg.ProductName,
			Quantity:      agg.Quantity,
			TotalValue:    agg.TotalValue,
			PurchaseCount: agg.PurchaseCount,
			FirstPurchase: agg.FirstPurchase,
			LastPurchase:  agg.LastPurchase,
			DaysSinceLast: daysBetween(agg.LastPurchase, now),
		}
	}
	return rollups
}

// repurchaseRates derives, per product, the share of its buyers that bought
// it in more than one transaction.
func repurchaseRates(pairAggs []ledger.PairAggregate) map[string]float64 {
	buyers := make(map[string]int)
	repeat := make(map[string]int)
	for _, agg := range pairAggs {
		buyers[agg.ProductCode]++
		if agg.PurchaseCount > 1 {
			repeat[agg.ProductCode]++
		}
	}

	rates := make(map[string]float64, len(buyers))
	for code, total := range buyers {
		rates[code] = float64(repeat[code]) / float64(total) * 100
	}
	return rates
}

// daysBetween counts whole calendar days from then to now, never negative.
func daysBetween(then, now time.Time) int {
	if then.IsZero() {
		return 0
	}
	days := int(truncateToDay(now).Sub(truncateToDay(then)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
