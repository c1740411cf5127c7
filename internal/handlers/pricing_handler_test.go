package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunrk/campusvibe/internal/models"
)

func sampleTiers() []models.PricingTier {
	return []models.PricingTier{
		{Name: "Early Bird", Price: decimal.NewFromInt(99), Available: false},
		{Name: "Standard", Price: decimal.NewFromInt(150), Available: true},
		{Name: "VIP", Price: decimal.NewFromInt(300), Available: true},
	}
}

func TestPickTierDefaultsToFirstAvailable(t *testing.T) {
	tier, found := pickTier(sampleTiers(), "")
	require.True(t, found)
	assert.Equal(t, "Standard", tier.Name)
}

func TestPickTierMatchesByName(t *testing.T) {
	tier, found := pickTier(sampleTiers(), "VIP")
	require.True(t, found)
	assert.True(t, tier.Price.Equal(decimal.NewFromInt(300)))
}

func TestPickTierSkipsUnavailable(t *testing.T) {
	_, found := pickTier(sampleTiers(), "Early Bird")
	assert.False(t, found)
}

func TestPickTierEmptyList(t *testing.T) {
	_, found := pickTier(nil, "Standard")
	assert.False(t, found)
}
