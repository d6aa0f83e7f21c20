package math

import (
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// Constant product swap math for the bonding curve. All quotes are computed
// against virtual reserves; real reserve checks belong to the state machine.

// CalculateBuy prices quoteIn lamports against the curve and returns the base
// amount out. Fees are taken from the input before it moves the curve: the
// creator fee is carved out of the total fee, never added on top.
func CalculateBuy(quoteIn uint64, reserves shared.CurveReserves, totalFeeBps, creatorFeeBps uint16) (shared.SwapQuote, error) {
	if quoteIn < shared.MinTradeAmount {
		return shared.SwapQuote{}, shared.ErrTradeTooSmall
	}
	if reserves.VirtualQuote == 0 || reserves.VirtualBase == 0 {
		return shared.SwapQuote{}, shared.ErrInvalidReserves
	}

	totalFee, err := MulDiv(quoteIn, uint64(totalFeeBps), shared.MaxBasisPoint)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	creatorFee, err := MulDiv(quoteIn, uint64(creatorFeeBps), shared.MaxBasisPoint)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	protocolFee := SaturatingSub(totalFee, creatorFee)

	quoteInAfterFee := SaturatingSub(quoteIn, totalFee)
	if quoteInAfterFee == 0 {
		return shared.SwapQuote{}, shared.ErrTradeTooSmall
	}

	k := Mul128(reserves.VirtualQuote, reserves.VirtualBase)
	newVirtualQuote := SaturatingAdd(reserves.VirtualQuote, quoteInAfterFee)
	newVirtualBase, err := Div128ToU64(k, newVirtualQuote)
	if err != nil {
		return shared.SwapQuote{}, err
	}

	baseOut := SaturatingSub(reserves.VirtualBase, newVirtualBase)
	if baseOut == 0 {
		return shared.SwapQuote{}, shared.ErrInsufficientOutput
	}
	if baseOut > reserves.VirtualBase {
		return shared.SwapQuote{}, shared.ErrInsufficientLiquidity
	}

	priceBefore := CalculatePrice(reserves.VirtualQuote, reserves.VirtualBase)
	priceAfter := CalculatePrice(newVirtualQuote, newVirtualBase)

	return shared.SwapQuote{
		AmountOut:       baseOut,
		ProtocolFee:     protocolFee,
		CreatorFee:      creatorFee,
		TotalFee:        totalFee,
		NewVirtualQuote: newVirtualQuote,
		NewVirtualBase:  newVirtualBase,
		PriceAfter:      priceAfter,
		PriceImpactBps:  priceImpactBps(priceBefore, priceAfter),
	}, nil
}

// CalculateSell prices baseIn tokens against the curve and returns the quote
// payout. Fees come out of the payout, not the input.
func CalculateSell(baseIn uint64, reserves shared.CurveReserves, totalFeeBps, creatorFeeBps uint16) (shared.SwapQuote, error) {
	if baseIn == 0 {
		return shared.SwapQuote{}, shared.ErrTradeTooSmall
	}
	if reserves.VirtualQuote == 0 || reserves.VirtualBase == 0 {
		return shared.SwapQuote{}, shared.ErrInvalidReserves
	}

	k := Mul128(reserves.VirtualQuote, reserves.VirtualBase)
	newVirtualBase := SaturatingAdd(reserves.VirtualBase, baseIn)
	newVirtualQuote, err := Div128ToU64(k, newVirtualBase)
	if err != nil {
		return shared.SwapQuote{}, err
	}

	quoteOutBeforeFee := SaturatingSub(reserves.VirtualQuote, newVirtualQuote)
	if quoteOutBeforeFee == 0 {
		return shared.SwapQuote{}, shared.ErrInsufficientOutput
	}
	if quoteOutBeforeFee > reserves.VirtualQuote {
		return shared.SwapQuote{}, shared.ErrInsufficientLiquidity
	}

	totalFee, err := MulDiv(quoteOutBeforeFee, uint64(totalFeeBps), shared.MaxBasisPoint)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	creatorFee, err := MulDiv(quoteOutBeforeFee, uint64(creatorFeeBps), shared.MaxBasisPoint)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	protocolFee := SaturatingSub(totalFee, creatorFee)

	quoteOut := SaturatingSub(quoteOutBeforeFee, totalFee)
	if quoteOut < shared.MinTradeAmount {
		return shared.SwapQuote{}, shared.ErrTradeTooSmall
	}

	priceBefore := CalculatePrice(reserves.VirtualQuote, reserves.VirtualBase)
	priceAfter := CalculatePrice(newVirtualQuote, newVirtualBase)

	return shared.SwapQuote{
		AmountOut:       quoteOut,
		ProtocolFee:     protocolFee,
		CreatorFee:      creatorFee,
		TotalFee:        totalFee,
		NewVirtualQuote: newVirtualQuote,
		NewVirtualBase:  newVirtualBase,
		PriceAfter:      priceAfter,
		PriceImpactBps:  priceImpactBps(priceBefore, priceAfter),
	}, nil
}

// CalculatePrice returns lamports per token scaled by shared.PriceScale, or 0
// when the base reserve is empty.
func CalculatePrice(quoteReserve, baseReserve uint64) uint64 {
	if baseReserve == 0 {
		return 0
	}
	price, err := MulDiv(quoteReserve, shared.PriceScale, baseReserve)
	if err != nil {
		return ^uint64(0)
	}
	return price
}

// CalculateQuoteForExactBase returns the lamports needed to buy exactly
// baseOut tokens, fee included. The +1 covers floor rounding on the forward
// path.
func CalculateQuoteForExactBase(baseOut uint64, reserves shared.CurveReserves, totalFeeBps uint16) (uint64, error) {
	if baseOut == 0 || baseOut >= reserves.VirtualBase {
		return 0, shared.ErrInvalidAmount
	}
	if reserves.VirtualQuote == 0 || reserves.VirtualBase == 0 {
		return 0, shared.ErrInvalidReserves
	}

	k := Mul128(reserves.VirtualQuote, reserves.VirtualBase)
	newVirtualBase := reserves.VirtualBase - baseOut
	newVirtualQuote, err := Div128ToU64(k, newVirtualBase)
	if err != nil {
		return 0, err
	}
	quoteInAfterFee := SaturatingSub(newVirtualQuote, reserves.VirtualQuote)

	quoteIn, err := MulDiv(quoteInAfterFee, shared.MaxBasisPoint, shared.MaxBasisPoint-uint64(totalFeeBps))
	if err != nil {
		return 0, err
	}
	return SaturatingAdd(quoteIn, 1), nil
}

// CalculateBaseForExactQuote is the forward quote restricted to the output
// amount.
func CalculateBaseForExactQuote(quoteIn uint64, reserves shared.CurveReserves, totalFeeBps, creatorFeeBps uint16) (uint64, error) {
	quote, err := CalculateBuy(quoteIn, reserves, totalFeeBps, creatorFeeBps)
	if err != nil {
		return 0, err
	}
	return quote.AmountOut, nil
}

func priceImpactBps(before, after uint64) uint64 {
	if before == 0 {
		return 0
	}
	impact, err := MulDiv(AbsDiff(after, before), shared.MaxBasisPoint, before)
	if err != nil {
		return ^uint64(0)
	}
	return impact
}
