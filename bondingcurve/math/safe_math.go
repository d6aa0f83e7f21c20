package math

import (
	"math/big"
	"math/bits"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// Arithmetic helpers for the u64 reserve domain. Products are taken through
// 128-bit intermediates; a result that does not fit back into u64 is a
// rejected operation, never a wrap.

func SaturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, shared.ErrMathOverflow
	}
	return sum, nil
}

func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, shared.ErrMathOverflow
	}
	return a - b, nil
}

// MulDiv computes a*b/den with a 128-bit intermediate product and floor
// rounding. Division by zero and results exceeding u64 are errors.
func MulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, shared.ErrMathOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		return 0, shared.ErrMathOverflow
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}

// Mul128 returns a*b as a big.Int. Used where the 128-bit product itself is
// the working value (constant product k).
func Mul128(a, b uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
}

// Div128ToU64 divides a 128-bit numerator by a u64 denominator and checks the
// quotient fits u64.
func Div128ToU64(num *big.Int, den uint64) (uint64, error) {
	if den == 0 {
		return 0, shared.ErrMathOverflow
	}
	quo := new(big.Int).Div(num, new(big.Int).SetUint64(den))
	if !quo.IsUint64() {
		return 0, shared.ErrMathOverflow
	}
	return quo.Uint64(), nil
}

// AbsDiff returns |a-b|.
func AbsDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
