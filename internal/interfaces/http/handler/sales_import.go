package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vendascrm/backend/internal/application/importing"
	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/interfaces/http/dto"
)

// SalesImportHandler handles the ledger bulk-replacement endpoint
type SalesImportHandler struct {
	BaseHandler
	importService *importing.LedgerImportService
}

// NewSalesImportHandler creates a new SalesImportHandler
func NewSalesImportHandler(importService *importing.LedgerImportService) *SalesImportHandler {
	return &SalesImportHandler{importService: importService}
}

// ImportSales replaces the whole ledger with the posted lines and triggers
// a rebuild. Lines with an unparseable date are rejected with the row index
// so the caller can fix the payload.
func (h *SalesImportHandler) ImportSales(c *gin.Context) {
	var req dto.ImportSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]*ledger.SaleLine, 0, len(req.Lines))
	var details []dto.ValidationDetail
	for i, lineReq := range req.Lines {
		line, err := lineReq.ToDomain()
		if err != nil {
			details = append(details, dto.ValidationDetail{
				Field:   fmt.Sprintf("lines[%d]", i),
				Message: err.Error(),
			})
			continue
		}
		lines = append(lines, line)
	}
	if len(details) > 0 {
		h.ValidationError(c, details)
		return
	}

	result, err := h.importService.ReplaceLedger(c.Request.Context(), lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SalesImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	{
		imports.POST("/sales", h.ImportSales)
	}
}
