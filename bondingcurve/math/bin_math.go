package math

import (
	"math"
	"math/big"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// Q64.64 fixed point bin math for the Orbit venue. Everything here is integer
// only so every platform derives bit-identical bin indices.

var (
	q64     = new(big.Int).Lsh(big.NewInt(1), shared.Resolution)
	q128    = new(big.Int).Lsh(big.NewInt(1), 2*shared.Resolution)
	ln2Q64  = new(big.Int).SetUint64(shared.LN2Q64)
	bigZero = big.NewInt(0)
)

// PriceToQ64 rescales a PriceScale-scaled lamports-per-token price into
// Q64.64.
func PriceToQ64(priceScaled uint64, tokenDecimals uint8) *big.Int {
	decimalAdjustment := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(tokenDecimals)), nil)
	num := new(big.Int).Mul(new(big.Int).SetUint64(priceScaled), q64)
	return num.Div(num, decimalAdjustment)
}

// Q64ToPrice converts a Q64.64 price back to the PriceScale representation.
func Q64ToPrice(priceQ64 *big.Int, tokenDecimals uint8) uint64 {
	decimalAdjustment := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(tokenDecimals)), nil)
	num := new(big.Int).Mul(priceQ64, decimalAdjustment)
	num.Rsh(num, shared.Resolution)
	if !num.IsUint64() {
		return ^uint64(0)
	}
	return num.Uint64()
}

// PriceToBinIndex maps a Q64.64 price onto a bin index:
// floor(ln(price) / ln(1 + step)). ln uses the bit-length approximation and
// ln(1+step) stays the first-order step itself. The mapping is monotone and
// sign-correct around the unit price, but the coarse ln makes it approximate:
// it does not invert BinIndexToPrice exactly away from index zero.
func PriceToBinIndex(priceQ64 *big.Int, binStepBps uint16) int32 {
	if priceQ64.Sign() <= 0 {
		return math.MinInt32
	}

	lnPrice := integerLn(priceQ64)
	lnStep := integerLnStep(binStepBps)
	if lnStep.Sign() == 0 {
		return 0
	}

	idx := new(big.Int).Quo(lnPrice, lnStep)
	return int32(idx.Int64())
}

// BinIndexToPrice computes (1 + step)^binIndex in Q64.64 via exponentiation by
// squaring; negative indices take the reciprocal.
func BinIndexToPrice(binIndex int32, binStepBps uint16) *big.Int {
	step := new(big.Int).Mul(q64, big.NewInt(int64(binStepBps)))
	step.Div(step, big.NewInt(shared.MaxBasisPoint))
	onePlusStep := new(big.Int).Add(q64, step)

	if binIndex >= 0 {
		return powQ64(onePlusStep, uint32(binIndex))
	}
	denominator := powQ64(onePlusStep, uint32(-int64(binIndex)))
	if denominator.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Div(q128, denominator)
}

// BinArrayLowerIndex aligns a bin index down to its 64-bin array boundary.
// Negative indices floor toward negative infinity: -1 aligns to -64, -65 to
// -128.
func BinArrayLowerIndex(binIndex int32) int32 {
	if binIndex >= 0 {
		return (binIndex / shared.BinArraySize) * shared.BinArraySize
	}
	return ((binIndex - shared.BinArraySize + 1) / shared.BinArraySize) * shared.BinArraySize
}

// BinArrayOffset is the position of binIndex inside the array starting at
// lowerBinIndex.
func BinArrayOffset(binIndex, lowerBinIndex int32) uint32 {
	return uint32(binIndex - lowerBinIndex)
}

// integerLn approximates ln of a Q64.64 value, negative below 1.0.
func integerLn(value *big.Int) *big.Int {
	if value.Cmp(q64) <= 0 {
		inverse := new(big.Int).Div(q128, value)
		return new(big.Int).Neg(integerLnPositive(inverse))
	}
	return integerLnPositive(value)
}

// integerLnPositive approximates ln for values >= 1.0 in Q64.64:
// ln(x) ~= (bitlength(x) - 1 - 64) * ln(2).
func integerLnPositive(value *big.Int) *big.Int {
	bitPosition := value.BitLen() - 1
	if bitPosition < shared.Resolution {
		return new(big.Int).Set(bigZero)
	}
	return new(big.Int).Mul(big.NewInt(int64(bitPosition-shared.Resolution)), ln2Q64)
}

// integerLnStep is ln(1+step) under the first-order approximation ln(1+x)~=x,
// scaled to Q64.64. Downstream bin parity depends on exactly this rounding.
func integerLnStep(binStepBps uint16) *big.Int {
	step := new(big.Int).Mul(q64, big.NewInt(int64(binStepBps)))
	return step.Div(step, big.NewInt(shared.MaxBasisPoint))
}

func powQ64(base *big.Int, exp uint32) *big.Int {
	if exp == 0 {
		return new(big.Int).Set(q64)
	}
	if exp == 1 {
		return new(big.Int).Set(base)
	}

	result := new(big.Int).Set(q64)
	b := new(big.Int).Set(base)
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result.Mul(result, b)
			result.Rsh(result, shared.Resolution)
		}
		b.Mul(b, b)
		b.Rsh(b, shared.Resolution)
	}
	return result
}

// BigToU128 narrows a non-negative big.Int into the account Uint128
// representation, saturating at the 128-bit maximum.
func BigToU128(v *big.Int) shared.Uint128 {
	var out shared.Uint128
	if v.Sign() <= 0 {
		return out
	}
	if v.BitLen() > 128 {
		out.Lo = ^uint64(0)
		out.Hi = ^uint64(0)
		return out
	}
	out.Lo = v.Uint64()
	out.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return out
}

// U128ToBig widens an account Uint128 into a big.Int.
func U128ToBig(v shared.Uint128) *big.Int {
	return v.BigInt()
}
