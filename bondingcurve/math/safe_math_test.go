package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

func TestSaturating(t *testing.T) {
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, ^uint64(0), SaturatingAdd(^uint64(0), 1))
	assert.Equal(t, uint64(1), SaturatingSub(3, 2))
	assert.Equal(t, uint64(0), SaturatingSub(2, 3))
}

func TestChecked(t *testing.T) {
	sum, err := CheckedAdd(2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), sum)

	_, err = CheckedAdd(^uint64(0), 1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	diff, err := CheckedSub(3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), diff)

	_, err = CheckedSub(2, 3)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestMulDiv(t *testing.T) {
	// Intermediate exceeds 64 bits but the quotient fits.
	out, err := MulDiv(^uint64(0), 10, 100)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0)/10, out)

	out, err = MulDiv(1_000_000_000, 100, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), out)

	_, err = MulDiv(1, 1, 0)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = MulDiv(^uint64(0), ^uint64(0), 1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestDiv128ToU64(t *testing.T) {
	out, err := Div128ToU64(Mul128(1_000_000_000, 1_000_000_000), 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), out)

	_, err = Div128ToU64(big.NewInt(1), 0)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = Div128ToU64(Mul128(^uint64(0), ^uint64(0)), 1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestAbsDiff(t *testing.T) {
	assert.Equal(t, uint64(2), AbsDiff(5, 3))
	assert.Equal(t, uint64(2), AbsDiff(3, 5))
	assert.Equal(t, uint64(0), AbsDiff(7, 7))
}
