package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleLine(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("valid line", func(t *testing.T) {
		line, err := NewSaleLine("V-1001", date)
		require.NoError(t, err)
		assert.Equal(t, "V-1001", line.TransactionID)
		assert.Equal(t, date, line.Date)
		assert.NotEqual(t, "", line.ID.String())
	})

	t.Run("empty transaction id", func(t *testing.T) {
		_, err := NewSaleLine("  ", date)
		assert.Error(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := NewSaleLine("V-1001", time.Time{})
		assert.Error(t, err)
	})
}

func TestSaleLineAggregable(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	line, err := NewSaleLine("V-1001", date)
	require.NoError(t, err)

	assert.False(t, line.Aggregable())

	line.CustomerCode = "C001"
	assert.False(t, line.Aggregable())

	line.ProductCode = "P001"
	assert.True(t, line.Aggregable())

	line.CustomerCode = "   "
	assert.False(t, line.Aggregable())
}

func TestSaleLineMarginPercent(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		final    string
		expected float64
	}{
		{"positive margin", "10.00", "12.50", 25},
		{"negative margin", "10.00", "9.00", -10},
		{"zero base yields zero", "0", "12.50", 0},
		{"negative base yields zero", "-5.00", "12.50", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := &SaleLine{
				BasePrice:  decimal.RequireFromString(tt.base),
				FinalPrice: decimal.RequireFromString(tt.final),
			}
			assert.InDelta(t, tt.expected, line.MarginPercent(), 0.0001)
		})
	}
}
