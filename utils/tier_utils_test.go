package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBonusTier(t *testing.T) {
	tests := []struct {
		attainment float64
		label      string
	}{
		{0, "abaixo"},
		{0.69, "abaixo"},
		{0.7, "parcial"},
		{0.99, "parcial"},
		{1.0, "meta"},
		{1.2, "supermeta"},
		{1.5, "hipermeta"},
		{4, "hipermeta"},
	}

	for _, tt := range tests {
		tier, ok := CalculateBonusTier(tt.attainment, DefaultBonusTiers)
		assert.True(t, ok)
		assert.Equal(t, tt.label, tier.Label, "attainment %v", tt.attainment)
	}
}

func TestCalculateBonusTierOutsideEveryRange(t *testing.T) {
	_, ok := CalculateBonusTier(-0.1, DefaultBonusTiers)
	assert.False(t, ok)

	_, ok = CalculateBonusTier(1, nil)
	assert.False(t, ok)
}
