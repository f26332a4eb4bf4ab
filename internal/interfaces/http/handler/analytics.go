package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/vendascrm/backend/internal/application/analytics"
	"github.com/vendascrm/backend/internal/interfaces/http/dto"
)

// AnalyticsHandler handles the analytics API endpoints
type AnalyticsHandler struct {
	BaseHandler
	customerService    *analyticsapp.CustomerAnalysisService
	productService     *analyticsapp.ProductAnalysisService
	dashboardService   *analyticsapp.DashboardService
	aggregationService *analyticsapp.AggregationService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	customerService *analyticsapp.CustomerAnalysisService,
	productService *analyticsapp.ProductAnalysisService,
	dashboardService *analyticsapp.DashboardService,
	aggregationService *analyticsapp.AggregationService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		customerService:    customerService,
		productService:     productService,
		dashboardService:   dashboardService,
		aggregationService: aggregationService,
	}
}

// Rebuild recomputes all rollups from the ledger. Answers 409 when a
// rebuild is already running.
func (h *AnalyticsHandler) Rebuild(c *gin.Context) {
	if err := h.aggregationService.Rebuild(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"rebuilt": true})
}

// ListCustomers returns a page of customer rollups
func (h *AnalyticsHandler) ListCustomers(c *gin.Context) {
	var req dto.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.customerService.ListCustomers(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCustomer returns one customer rollup
func (h *AnalyticsHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// GetCustomerAnalysis returns the composite customer view
func (h *AnalyticsHandler) GetCustomerAnalysis(c *gin.Context) {
	analysis, err := h.customerService.GetCustomerAnalysis(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analysis)
}

// GetRecommendations returns the action items for one customer
func (h *AnalyticsHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.customerService.GetRecommendations(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recs)
}

// GetCustomerActions returns the at-risk/reactivation/cross-sell lists
func (h *AnalyticsHandler) GetCustomerActions(c *gin.Context) {
	actions, err := h.customerService.GetCustomersNeedingAction(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, actions)
}

// ListProducts returns a page of product rollups
func (h *AnalyticsHandler) ListProducts(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetProduct returns one product rollup
func (h *AnalyticsHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetProductAnalysis returns the composite product view
func (h *AnalyticsHandler) GetProductAnalysis(c *gin.Context) {
	analysis, err := h.productService.GetProductAnalysis(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analysis)
}

// GetDashboard returns the landing-page KPIs
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// RegisterRoutes implements router.RouteRegistrar
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.POST("/rebuild", h.Rebuild)
		analytics.GET("/dashboard", h.GetDashboard)

		customers := analytics.Group("/customers")
		{
			customers.GET("", h.ListCustomers)
			customers.GET("/actions", h.GetCustomerActions)
			customers.GET("/:code", h.GetCustomer)
			customers.GET("/:code/analysis", h.GetCustomerAnalysis)
			customers.GET("/:code/recommendations", h.GetRecommendations)
		}

		products := analytics.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/:code", h.GetProduct)
			products.GET("/:code/analysis", h.GetProductAnalysis)
		}
	}
}
