package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySegment(t *testing.T) {
	tests := []struct {
		name          string
		purchaseCount int64
		daysSinceLast int
		expected      Segment
	}{
		{"frequent recent buyer is VIP", 12, 20, SegmentVIP},
		{"VIP boundary", 10, 30, SegmentVIP},
		{"loyal buyer", 6, 45, SegmentFiel},
		{"regular buyer", 3, 90, SegmentRegular},
		{"long silence wins over single purchase", 1, 95, SegmentInativo},
		{"long silence wins over frequency", 20, 120, SegmentInativo},
		{"fresh first purchase", 1, 15, SegmentNovo},
		{"single stale purchase", 1, 45, SegmentOneShot},
		{"fading multi buyer", 2, 75, SegmentEmRisco},
		{"growing buyer", 2, 40, SegmentEmCrescimento},
		{"few purchases just inside window", 2, 10, SegmentEmCrescimento},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifySegment(tt.purchaseCount, tt.daysSinceLast))
		})
	}
}

func TestClassifySegmentPriorityOrder(t *testing.T) {
	// Rule order is part of the contract: inactivity is checked before the
	// single-purchase rules, so one purchase 95 days ago is Inativo rather
	// than One-Shot.
	assert.Equal(t, SegmentInativo, ClassifySegment(1, 95))
	assert.NotEqual(t, SegmentOneShot, ClassifySegment(1, 95))
	assert.NotEqual(t, SegmentNovo, ClassifySegment(1, 95))
}
