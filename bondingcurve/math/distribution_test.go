package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalancedDistributionShape(t *testing.T) {
	binIDs, distribution := BalancedDistribution(100, 10, 200_000_000_000_000_000, 80_000_000_000)

	require.Len(t, binIDs, 21)
	require.Len(t, distribution, 21)

	// Bins run contiguously from active-10 to active+10.
	for i, id := range binIDs {
		assert.Equal(t, int32(90+i), id)
	}
}

func TestBalancedDistributionAllocation(t *testing.T) {
	totalBase := uint64(200_000_000_000_000_000)
	totalQuote := uint64(80_000_000_000)
	binIDs, distribution := BalancedDistribution(0, 4, totalBase, totalQuote)

	require.Len(t, binIDs, 9)

	// 40% of the base spread over the low side.
	basePerBin := totalBase * 40 / 100 / 4
	for i := 0; i < 4; i++ {
		assert.Equal(t, basePerBin, distribution[i], "low bin %d", binIDs[i])
	}

	// 40% of the quote spread over the high side.
	quotePerBin := totalQuote * 40 / 100 / 4
	for i := 5; i < 9; i++ {
		assert.Equal(t, quotePerBin, distribution[i], "high bin %d", binIDs[i])
	}

	// The active bin takes 10% of each budget.
	assert.Equal(t, totalBase*20/200+totalQuote*20/200, distribution[4])
}

func TestBalancedDistributionNeverOverspends(t *testing.T) {
	totalBase := uint64(123_456_789_012_345)
	totalQuote := uint64(98_765_432_101)
	_, distribution := BalancedDistribution(-37, 10, totalBase, totalQuote)

	var spent uint64
	for _, amount := range distribution {
		spent += amount
	}
	assert.LessOrEqual(t, spent, totalBase+totalQuote)
}

func TestBalancedDistributionZeroSides(t *testing.T) {
	binIDs, distribution := BalancedDistribution(5, 0, 1_000_000, 1_000_000)
	require.Len(t, binIDs, 1)
	assert.Equal(t, int32(5), binIDs[0])
	assert.Equal(t, uint64(100_000+100_000), distribution[0])
}

func TestSeedDistribution(t *testing.T) {
	deposits := SeedDistribution(0, 5, 1_000_000_000, 1_000_000_000)
	require.NotEmpty(t, deposits)

	var base, quote uint64
	for _, d := range deposits {
		base += d.BaseAmount
		quote += d.QuoteAmount
		switch {
		case d.BinIndex < 0:
			assert.Zero(t, d.QuoteAmount, "bin %d", d.BinIndex)
		case d.BinIndex > 0:
			assert.Zero(t, d.BaseAmount, "bin %d", d.BinIndex)
		default:
			assert.NotZero(t, d.BaseAmount)
			assert.NotZero(t, d.QuoteAmount)
		}
	}
	assert.LessOrEqual(t, base, uint64(1_000_000_000))
	assert.LessOrEqual(t, quote, uint64(1_000_000_000))
}

func TestSeedDistributionEmpty(t *testing.T) {
	assert.Empty(t, SeedDistribution(0, 0, 1_000, 1_000))
}
