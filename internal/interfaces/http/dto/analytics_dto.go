package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
)

// CustomerListRequest narrows a customer rollup listing
type CustomerListRequest struct {
	ListRequest
	Segment string `form:"segment"`
}

// ProductListRequest narrows a product rollup listing
type ProductListRequest struct {
	ListRequest
	Category string `form:"category"`
	Tier     string `form:"tier" binding:"omitempty,oneof=A B C"`
}

// ToFilter converts the request into a repository filter
func (r *CustomerListRequest) ToFilter() shared.Filter {
	filter := listFilter(r.ListRequest)
	if r.Segment != "" {
		filter.Filters["segment"] = r.Segment
	}
	return filter
}

// ToFilter converts the request into a repository filter
func (r *ProductListRequest) ToFilter() shared.Filter {
	filter := listFilter(r.ListRequest)
	if r.Category != "" {
		filter.Filters["category"] = r.Category
	}
	if r.Tier != "" {
		filter.Filters["abc_tier"] = r.Tier
	}
	return filter
}

func listFilter(r ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if r.Page > 0 {
		filter.Page = r.Page
	}
	if r.PageSize > 0 {
		filter.PageSize = r.PageSize
	}
	filter.OrderBy = r.OrderBy
	if r.OrderDir != "" {
		filter.OrderDir = r.OrderDir
	}
	filter.Search = r.Search
	return filter
}

// ImportSalesRequest is a bulk ledger replacement
type ImportSalesRequest struct {
	Lines []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SaleLineRequest is one already-parsed ledger line
type SaleLineRequest struct {
	TransactionID   string          `json:"transaction_id" binding:"required,max=100"`
	Date            string          `json:"date" binding:"required"`
	ProductCode     string          `json:"product_code" binding:"max=100"`
	ProductName     string          `json:"product_name" binding:"max=200"`
	CustomerCode    string          `json:"customer_code" binding:"max=100"`
	CustomerName    string          `json:"customer_name" binding:"max=200"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	BasePrice       decimal.Decimal `json:"base_price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Discount        decimal.Decimal `json:"discount"`
	Surcharge       decimal.Decimal `json:"surcharge"`
	GrossValue      decimal.Decimal `json:"gross_value"`
	NetTotal        decimal.Decimal `json:"net_total"`
	SalespersonCode string          `json:"salesperson_code" binding:"max=100"`
	SalespersonName string          `json:"salesperson_name" binding:"max=200"`
}

// saleDateLayouts are accepted date encodings, tried in order.
var saleDateLayouts = []string{"2006-01-02", time.RFC3339}

// ToDomain converts the request line into a ledger entity
func (r *SaleLineRequest) ToDomain() (*ledger.SaleLine, error) {
	var date time.Time
	var err error
	for _, layout := range saleDateLayouts {
		if date, err = time.Parse(layout, r.Date); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	line, err := ledger.NewSaleLine(r.TransactionID, date)
	if err != nil {
		return nil, err
	}
	line.ProductCode = r.ProductCode
	line.ProductName = r.ProductName
	line.CustomerCode = r.CustomerCode
	line.CustomerName = r.CustomerName
	line.Quantity = r.Quantity
	line.UnitPrice = r.UnitPrice
	line.BasePrice = r.BasePrice
	line.FinalPrice = r.FinalPrice
	line.Discount = r.Discount
	line.Surcharge = r.Surcharge
	line.GrossValue = r.GrossValue
	line.NetTotal = r.NetTotal
	line.SalespersonCode = r.SalespersonCode
	line.SalespersonName = r.SalespersonName
	return line, nil
}
