package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	analyticsapp "github.com/vendascrm/backend/internal/application/analytics"
	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
	"github.com/vendascrm/backend/internal/interfaces/http/dto"
)

func setupAnalyticsRouter(rollupRepo *MockRollupRepository, ledgerRepo *MockLedgerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	analysisCache := cache.NewInMemoryAnalysisCache()
	logger := zap.NewNop()

	customerSvc := analyticsapp.NewCustomerAnalysisService(rollupRepo, ledgerRepo, analysisCache, time.Minute, logger)
	productSvc := analyticsapp.NewProductAnalysisService(rollupRepo, ledgerRepo, analysisCache, time.Minute, logger)
	dashboardSvc := analyticsapp.NewDashboardService(rollupRepo, ledgerRepo, analysisCache, time.Minute, logger)
	aggregationSvc := analyticsapp.NewAggregationService(ledgerRepo, rollupRepo, analysisCache, logger)

	h := NewAnalyticsHandler(customerSvc, productSvc, dashboardSvc, aggregationSvc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func doRequest(engine *gin.Engine, method, path string) (*httptest.ResponseRecorder, dto.Response) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestAnalyticsHandler_ListCustomers(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)

	rollupRepo.On("Customers", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["segment"] == "VIP" && f.Page == 1
	})).Return([]*analytics.CustomerRollup{
		{CustomerCode: "C001", CustomerName: "Mercearia Central", Segment: analytics.SegmentVIP},
	}, int64(1), nil)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/customers?segment=VIP")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestAnalyticsHandler_GetCustomer(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		rollupRepo := new(MockRollupRepository)
		ledgerRepo := new(MockLedgerRepository)
		rollupRepo.On("CustomerByCode", mock.Anything, "C001").Return(&analytics.CustomerRollup{
			CustomerCode: "C001",
			Segment:      analytics.SegmentFiel,
		}, nil)

		engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
		w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/customers/C001")

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "C001", data["customer_code"])
		assert.Equal(t, "Fiel", data["segment"])
	})

	t.Run("unknown code answers 404", func(t *testing.T) {
		rollupRepo := new(MockRollupRepository)
		ledgerRepo := new(MockLedgerRepository)
		rollupRepo.On("CustomerByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
		w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/customers/NOPE")

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestAnalyticsHandler_GetRecommendations_UnknownCustomer(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)
	rollupRepo.On("CustomerByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/customers/NOPE/recommendations")

	// An unknown customer has no recommendations, which is not an error.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestAnalyticsHandler_GetCustomerActions(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)
	rollupRepo.On("AllCustomers", mock.Anything).Return([]*analytics.CustomerRollup{
		{CustomerCode: "C001", Segment: analytics.SegmentEmRisco, DaysSinceLast: 70, PurchaseCount: 3},
	}, nil)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/customers/actions")

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	atRisk := data["at_risk"].([]interface{})
	assert.Len(t, atRisk, 1)
}

func TestAnalyticsHandler_ListProducts_InvalidTier(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/products?tier=X")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
}

func TestAnalyticsHandler_GetDashboard(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)
	rollupRepo.On("AllCustomers", mock.Anything).Return([]*analytics.CustomerRollup{}, nil)
	rollupRepo.On("AllProducts", mock.Anything).Return([]*analytics.ProductRollup{}, nil)
	ledgerRepo.On("DateTotals", mock.Anything).Return([]ledger.DateTotal{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), TotalValue: decimal.NewFromInt(500), Transactions: 2},
	}, nil)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodGet, "/api/v1/analytics/dashboard")

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "500", data["total_revenue"])
	assert.Equal(t, float64(2), data["transactions"])
}

func TestAnalyticsHandler_Rebuild(t *testing.T) {
	rollupRepo := new(MockRollupRepository)
	ledgerRepo := new(MockLedgerRepository)
	ledgerRepo.On("CustomerAggregates", mock.Anything).Return([]ledger.CustomerAggregate{}, nil)
	ledgerRepo.On("ProductAggregates", mock.Anything).Return([]ledger.ProductAggregate{}, nil)
	ledgerRepo.On("PairAggregates", mock.Anything).Return([]ledger.PairAggregate{}, nil)
	rollupRepo.On("ReplaceAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine := setupAnalyticsRouter(rollupRepo, ledgerRepo)
	w, resp := doRequest(engine, http.MethodPost, "/api/v1/analytics/rebuild")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}
