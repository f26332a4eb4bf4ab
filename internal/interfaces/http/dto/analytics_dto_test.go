package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleLineRequest_ToDomain(t *testing.T) {
	t.Run("parses a date-only line", func(t *testing.T) {
		req := SaleLineRequest{
			TransactionID: "T-100",
			Date:          "2024-03-15",
			ProductCode:   "P001",
			CustomerCode:  "C001",
			NetTotal:      decimal.NewFromInt(120),
		}

		line, err := req.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, "T-100", line.TransactionID)
		assert.Equal(t, 2024, line.Date.Year())
		assert.True(t, line.Aggregable())
	})

	t.Run("accepts RFC3339 dates", func(t *testing.T) {
		req := SaleLineRequest{TransactionID: "T-101", Date: "2024-03-15T10:30:00Z"}

		line, err := req.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, 15, line.Date.Day())
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		req := SaleLineRequest{TransactionID: "T-102", Date: "15/03/2024"}

		_, err := req.ToDomain()
		assert.Error(t, err)
	})

	t.Run("rejects a blank transaction id", func(t *testing.T) {
		req := SaleLineRequest{TransactionID: "  ", Date: "2024-03-15"}

		_, err := req.ToDomain()
		assert.Error(t, err)
	})
}

func TestCustomerListRequest_ToFilter(t *testing.T) {
	req := CustomerListRequest{
		ListRequest: ListRequest{Page: 2, PageSize: 50, Search: "mercearia"},
		Segment:     "VIP",
	}

	filter := req.ToFilter()

	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, "mercearia", filter.Search)
	assert.Equal(t, "VIP", filter.Filters["segment"])
}

func TestProductListRequest_ToFilter(t *testing.T) {
	req := ProductListRequest{Category: "Oleaginosas", Tier: "A"}

	filter := req.ToFilter()

	// Defaults apply when the request leaves paging empty.
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "Oleaginosas", filter.Filters["category"])
	assert.Equal(t, "A", filter.Filters["abc_tier"])
}
