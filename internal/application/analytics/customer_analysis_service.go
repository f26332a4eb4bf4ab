package analyticsapp

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
)

// Caps on the list sections of the composite views.
const (
	maxUnpurchasedProducts = 10
	actionListCap          = 20
)

// CustomerAnalysisService answers customer-side analytics queries over the
// rollup tables, reaching back into the raw ledger only for per-transaction
// detail. Composite answers are cached until the next rebuild.
type CustomerAnalysisService struct {
	rollupRepo analytics.RollupRepository
	ledgerRepo ledger.Repository
	cache      cache.AnalysisCache
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewCustomerAnalysisService creates a CustomerAnalysisService.
func NewCustomerAnalysisService(
	rollupRepo analytics.RollupRepository,
	ledgerRepo ledger.Repository,
	analysisCache cache.AnalysisCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CustomerAnalysisService {
	return &CustomerAnalysisService{
		rollupRepo: rollupRepo,
		ledgerRepo: ledgerRepo,
		cache:      analysisCache,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the reference clock used for recency calculations.
func (s *CustomerAnalysisService) WithClock(now func() time.Time) *CustomerAnalysisService {
	s.now = now
	return s
}

// ListCustomers returns a page of customer rollups. The filter supports a
// segment filter and a code/name search.
func (s *CustomerAnalysisService) ListCustomers(ctx context.Context, filter shared.Filter) (shared.Paginated[*analytics.CustomerRollup], error) {
	customers, total, err := s.rollupRepo.Customers(ctx, filter)
	if err != nil {
		return shared.Paginated[*analytics.CustomerRollup]{}, err
	}
	return shared.NewPaginated(customers, total, filter.Page, filter.PageSize), nil
}

// GetCustomer returns one customer rollup or shared.ErrNotFound.
func (s *CustomerAnalysisService) GetCustomer(ctx context.Context, code string) (*analytics.CustomerRollup, error) {
	return s.rollupRepo.CustomerByCode(ctx, code)
}

// GetCustomerAnalysis assembles the full customer view: purchased products,
// transaction history, spend per category, ranked unpurchased products,
// purchase-cycle profile, similar customers and recommendations.
func (s *CustomerAnalysisService) GetCustomerAnalysis(ctx context.Context, code string) (*CustomerAnalysis, error) {
	key := s.cacheKey(ctx, "customer_analysis", code)
	if key != "" {
		var cached CustomerAnalysis
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	customer, err := s.rollupRepo.CustomerByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	pairs, err := s.rollupRepo.PairsForCustomer(ctx, code)
	if err != nil {
		return nil, err
	}

	lines, err := s.ledgerRepo.LinesForCustomer(ctx, code)
	if err != nil {
		return nil, err
	}

	allPairs, err := s.rollupRepo.AllPairs(ctx)
	if err != nil {
		return nil, err
	}

	allProducts, err := s.rollupRepo.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := s.ledgerRepo.PurchaseDates(ctx, code)
	if err != nil {
		return nil, err
	}

	frequency := analytics.AnalyzeFrequency(dates, s.now())
	similar, crossSell := analytics.FindSimilarCustomers(code, allPairs)

	result := &CustomerAnalysis{
		Customer:            customer,
		Products:            pairs,
		History:             purchaseHistory(lines),
		CategoryBreakdown:   categoryBreakdown(lines),
		UnpurchasedProducts: rankUnpurchased(pairs, allProducts),
		Frequency:           frequency,
		SimilarCustomers:    similar,
		CrossSell:           crossSell,
		Recommendations: analytics.GenerateRecommendations(analytics.RecommendationInput{
			Segment:            customer.Segment,
			DaysSinceLast:      customer.DaysSinceLast,
			Frequency:          frequency,
			CrossSell:          crossSell,
			OverdueRepurchases: overdueRepurchases(pairs),
		}),
	}

	s.cacheSet(ctx, key, result)
	return result, nil
}

// GetRecommendations returns the action items for one customer. An unknown
// customer yields an empty list, not an error.
func (s *CustomerAnalysisService) GetRecommendations(ctx context.Context, code string) ([]analytics.Recommendation, error) {
	customer, err := s.rollupRepo.CustomerByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []analytics.Recommendation{}, nil
		}
		return nil, err
	}

	pairs, err := s.rollupRepo.PairsForCustomer(ctx, code)
	if err != nil {
		return nil, err
	}

	allPairs, err := s.rollupRepo.AllPairs(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := s.ledgerRepo.PurchaseDates(ctx, code)
	if err != nil {
		return nil, err
	}

	_, crossSell := analytics.FindSimilarCustomers(code, allPairs)

	return analytics.GenerateRecommendations(analytics.RecommendationInput{
		Segment:            customer.Segment,
		DaysSinceLast:      customer.DaysSinceLast,
		Frequency:          analytics.AnalyzeFrequency(dates, s.now()),
		CrossSell:          crossSell,
		OverdueRepurchases: overdueRepurchases(pairs),
	}), nil
}

// GetCustomersNeedingAction splits the customer base into the three contact
// lists, each capped and ordered by total spend descending.
func (s *CustomerAnalysisService) GetCustomersNeedingAction(ctx context.Context) (*CustomersNeedingAction, error) {
	key := s.cacheKey(ctx, "customer_actions")
	if key != "" {
		var cached CustomersNeedingAction
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	customers, err := s.rollupRepo.AllCustomers(ctx)
	if err != nil {
		return nil, err
	}

	result := &CustomersNeedingAction{
		AtRisk:       []*analytics.CustomerRollup{},
		Reactivation: []*analytics.CustomerRollup{},
		CrossSell:    []*analytics.CustomerRollup{},
	}
	for _, c := range customers {
		if c.Segment == analytics.SegmentEmRisco || c.Segment == analytics.SegmentInativo {
			if len(result.AtRisk) < actionListCap {
				result.AtRisk = append(result.AtRisk, c)
			}
		}
		if c.DaysSinceLast > 60 && c.PurchaseCount > 1 {
			if len(result.Reactivation) < actionListCap {
				result.Reactivation = append(result.Reactivation, c)
			}
		}
		if c.DistinctProducts < 5 && c.PurchaseCount > 2 && c.DaysSinceLast < 60 {
			if len(result.CrossSell) < actionListCap {
				result.CrossSell = append(result.CrossSell, c)
			}
		}
	}

	s.cacheSet(ctx, key, result)
	return result, nil
}

func (s *CustomerAnalysisService) cacheKey(ctx context.Context, parts ...string) string {
	key, err := s.cache.Key(ctx, parts...)
	if err != nil {
		s.logger.Debug("cache key unavailable", zap.Error(err))
		return ""
	}
	return key
}

func (s *CustomerAnalysisService) cacheSet(ctx context.Context, key string, value interface{}) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// purchaseHistory folds raw lines into per-transaction entries, newest first.
func purchaseHistory(lines []*ledger.SaleLine) []PurchaseHistoryEntry {
	index := make(map[string]int)
	history := make([]PurchaseHistoryEntry, 0)
	for _, line := range lines {
		i, ok := index[line.TransactionID]
		if !ok {
			index[line.TransactionID] = len(history)
			history = append(history, PurchaseHistoryEntry{
				TransactionID: line.TransactionID,
				Date:          line.Date,
				Total:         line.NetTotal,
				Items:         1,
			})
			continue
		}
		history[i].Total = history[i].Total.Add(line.NetTotal)
		history[i].Items++
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history
}

// categoryBreakdown sums spend per product category, largest first. Share is
// the percentage of the customer's total.
func categoryBreakdown(lines []*ledger.SaleLine) []CategoryValue {
	totals := make(map[analytics.Category]decimal.Decimal)
	var grand decimal.Decimal
	for _, line := range lines {
		cat := analytics.ClassifyCategory(line.ProductName)
		totals[cat] = totals[cat].Add(line.NetTotal)
		grand = grand.Add(line.NetTotal)
	}

	breakdown := make([]CategoryValue, 0, len(totals))
	for cat, value := range totals {
		cv := CategoryValue{Category: cat, TotalValue: value}
		if grand.Sign() > 0 {
			cv.Share, _ = value.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
		}
		breakdown = append(breakdown, cv)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].TotalValue.Equal(breakdown[j].TotalValue) {
			return breakdown[i].TotalValue.GreaterThan(breakdown[j].TotalValue)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// rankUnpurchased scores the products the customer never bought by breadth
// of adoption, repurchase behavior and recency, keeping the top ten.
func rankUnpurchased(owned []*analytics.CustomerProductRollup, allProducts []*analytics.ProductRollup) []UnpurchasedProduct {
	purchased := make(map[string]struct{}, len(owned))
	for _, p := range owned {
		purchased[p.ProductCode] = struct{}{}
	}

	ranked := make([]UnpurchasedProduct, 0)
	for _, p := range allProducts {
		if _, ok := purchased[p.ProductCode]; ok {
			continue
		}
		days := p.DaysSinceLast
		if p.LastSale.IsZero() {
			days = 100
		}
		score := float64(p.DistinctCustomers)*0.3 +
			p.RepurchaseRate*0.4 +
			float64(100-days)*0.3
		ranked = append(ranked, UnpurchasedProduct{
			ProductCode: p.ProductCode,
			ProductName: p.ProductName,
			Score:       score,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ProductCode < ranked[j].ProductCode
	})
	if len(ranked) > maxUnpurchasedProducts {
		ranked = ranked[:maxUnpurchasedProducts]
	}
	return ranked
}

// overdueRepurchases keeps the recurring products whose last purchase is
// over 60 days old.
func overdueRepurchases(pairs []*analytics.CustomerProductRollup) []*analytics.CustomerProductRollup {
	overdue := make([]*analytics.CustomerProductRollup, 0)
	for _, p := range pairs {
		if p.PurchaseCount > 1 && p.DaysSinceLast > 60 {
			overdue = append(overdue, p)
		}
	}
	return overdue
}
