package math

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

func TestPriceQ64RoundTrip(t *testing.T) {
	for _, price := range []uint64{1, 37, 1_000, 5_000_000, 1_000_000_000} {
		q := PriceToQ64(price, 9)
		back := Q64ToPrice(q, 9)
		assert.LessOrEqual(t, AbsDiff(price, back), uint64(1), "price %d", price)
	}
}

func TestPriceToQ64Scaling(t *testing.T) {
	// A PriceScale price of exactly 1e9 with 9 token decimals is 1.0 in Q64.64.
	q := PriceToQ64(1_000_000_000, 9)
	one := new(big.Int).Lsh(big.NewInt(1), shared.Resolution)
	assert.Equal(t, 0, q.Cmp(one))
}

func TestBinIndexToPrice(t *testing.T) {
	one := new(big.Int).Lsh(big.NewInt(1), shared.Resolution)

	// Index zero is always price 1.0 regardless of step.
	assert.Equal(t, 0, BinIndexToPrice(0, 25).Cmp(one))
	assert.Equal(t, 0, BinIndexToPrice(0, 100).Cmp(one))

	// One step up is exactly 1 + step.
	step := new(big.Int).Div(new(big.Int).Mul(one, big.NewInt(25)), big.NewInt(10_000))
	expected := new(big.Int).Add(one, step)
	assert.Equal(t, 0, BinIndexToPrice(1, 25).Cmp(expected))

	// Prices are strictly increasing in the index.
	prev := BinIndexToPrice(-100, 25)
	for _, idx := range []int32{-50, -1, 0, 1, 50, 100} {
		price := BinIndexToPrice(idx, 25)
		assert.Equal(t, 1, price.Cmp(prev), "index %d", idx)
		prev = price
	}
}

func TestBinIndexToPriceReciprocal(t *testing.T) {
	one := new(big.Int).Lsh(big.NewInt(1), shared.Resolution)
	for _, idx := range []int32{1, 10, 64, 200} {
		up := BinIndexToPrice(idx, 50)
		down := BinIndexToPrice(-idx, 50)

		// P(i) * P(-i) must come back to 1.0 within rounding drift.
		product := new(big.Int).Mul(up, down)
		product.Rsh(product, shared.Resolution)

		diff := new(big.Int).Sub(product, one)
		diff.Abs(diff)
		// Allow one part in a million of drift from repeated flooring.
		tolerance := new(big.Int).Div(one, big.NewInt(1_000_000))
		assert.True(t, diff.Cmp(tolerance) <= 0, "index %d drift %s", idx, diff)
	}
}

func TestPriceToBinIndex(t *testing.T) {
	one := new(big.Int).Lsh(big.NewInt(1), shared.Resolution)

	assert.Equal(t, int32(0), PriceToBinIndex(one, 25))
	assert.Equal(t, int32(math.MinInt32), PriceToBinIndex(big.NewInt(0), 25))
	assert.Equal(t, int32(math.MinInt32), PriceToBinIndex(big.NewInt(-5), 25))

	// Prices above 1.0 map at or above zero, prices below map at or below.
	above := new(big.Int).Mul(one, big.NewInt(3))
	require.True(t, PriceToBinIndex(above, 25) >= 0)

	below := new(big.Int).Div(one, big.NewInt(3))
	require.True(t, PriceToBinIndex(below, 25) <= 0)
}

func TestPriceToBinIndexMonotonic(t *testing.T) {
	one := new(big.Int).Lsh(big.NewInt(1), shared.Resolution)
	prev := int32(math.MinInt32)
	for _, mult := range []int64{1, 2, 8, 64, 1024} {
		idx := PriceToBinIndex(new(big.Int).Mul(one, big.NewInt(mult)), 25)
		assert.GreaterOrEqual(t, idx, prev, "multiplier %d", mult)
		prev = idx
	}
}

func TestBinArrayLowerIndex(t *testing.T) {
	cases := []struct {
		in  int32
		out int32
	}{
		{0, 0},
		{1, 0},
		{63, 0},
		{64, 64},
		{127, 64},
		{128, 128},
		{-1, -64},
		{-64, -64},
		{-65, -128},
		{-128, -128},
		{-129, -192},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, BinArrayLowerIndex(c.in), "bin %d", c.in)
	}
}

func TestBinArrayOffset(t *testing.T) {
	assert.Equal(t, uint32(0), BinArrayOffset(64, 64))
	assert.Equal(t, uint32(63), BinArrayOffset(127, 64))
	assert.Equal(t, uint32(63), BinArrayOffset(-1, -64))
}

func TestU128Conversions(t *testing.T) {
	small := big.NewInt(42)
	assert.Equal(t, uint64(42), BigToU128(small).Lo)
	assert.Equal(t, uint64(0), BigToU128(small).Hi)

	wide := new(big.Int).Lsh(big.NewInt(1), 100)
	u := BigToU128(wide)
	assert.Equal(t, 0, U128ToBig(u).Cmp(wide))

	// Values past 128 bits saturate.
	huge := new(big.Int).Lsh(big.NewInt(1), 130)
	sat := BigToU128(huge)
	assert.Equal(t, ^uint64(0), sat.Lo)
	assert.Equal(t, ^uint64(0), sat.Hi)

	assert.Equal(t, uint64(0), BigToU128(big.NewInt(-1)).Lo)
}
