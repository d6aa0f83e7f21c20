package math

// Liquidity placement for graduated pools.

// Allocation percentages for the balanced strategy: base tokens below the
// active bin, quote above, the remainder mixed into the active bin.
const (
	BaseAllocationPct  = 40
	QuoteAllocationPct = 40
	ActiveBinPct       = 20
	MaxSeedBins        = 32
)

// BinDeposit is one bin's share of a seed distribution.
type BinDeposit struct {
	BinIndex    int32
	BaseAmount  uint64
	QuoteAmount uint64
}

// BalancedDistribution splits the liquidity budgets 40/40/20 across
// 2*binsPerSide+1 bins centered on activeBin. Base tokens fill the bins
// strictly below the active bin, quote fills the bins strictly above, and the
// active bin takes half of each remaining 20%.
func BalancedDistribution(activeBin int32, binsPerSide uint8, totalBase, totalQuote uint64) ([]int32, []uint64) {
	n := int32(binsPerSide)
	binIDs := make([]int32, 0, 2*n+1)
	distribution := make([]uint64, 0, 2*n+1)

	var basePerBin, quotePerBin uint64
	if binsPerSide > 0 {
		baseSide, _ := MulDiv(totalBase, BaseAllocationPct, 100)
		quoteSide, _ := MulDiv(totalQuote, QuoteAllocationPct, 100)
		basePerBin = baseSide / uint64(binsPerSide)
		quotePerBin = quoteSide / uint64(binsPerSide)
	}
	activeBase, _ := MulDiv(totalBase, ActiveBinPct, 200)
	activeQuote, _ := MulDiv(totalQuote, ActiveBinPct, 200)

	for i := n; i >= 1; i-- {
		binIDs = append(binIDs, activeBin-i)
		distribution = append(distribution, basePerBin)
	}

	binIDs = append(binIDs, activeBin)
	distribution = append(distribution, SaturatingAdd(activeBase, activeQuote))

	for i := int32(1); i <= n; i++ {
		binIDs = append(binIDs, activeBin+i)
		distribution = append(distribution, quotePerBin)
	}

	return binIDs, distribution
}

// SeedDistribution spreads liquidity across numBins bins with triangular
// weights peaking at the active bin: token depth below, quote depth above, a
// 50/50 mix at the center. Used by graduation previews; the on-pool deposit
// itself uses BalancedDistribution.
func SeedDistribution(activeBin int32, numBins uint8, totalBase, totalQuote uint64) []BinDeposit {
	deposits := make([]BinDeposit, 0, numBins)
	if numBins == 0 {
		return deposits
	}

	halfBins := int32(numBins) / 2
	startBin := activeBin - halfBins

	var totalWeight uint64
	weights := make([]uint64, numBins)
	for i := int32(0); i < int32(numBins); i++ {
		distance := i - halfBins
		if distance < 0 {
			distance = -distance
		}
		weights[i] = SaturatingSub(uint64(numBins), uint64(distance))
		totalWeight = SaturatingAdd(totalWeight, weights[i])
	}
	if totalWeight == 0 {
		return deposits
	}

	for i := int32(0); i < int32(numBins); i++ {
		binIndex := startBin + i
		weight := weights[i]

		var baseAmount, quoteAmount uint64
		switch {
		case binIndex < activeBin:
			baseAmount, _ = MulDiv(totalBase, weight, totalWeight)
		case binIndex > activeBin:
			quoteAmount, _ = MulDiv(totalQuote, weight, totalWeight)
		default:
			baseAmount, _ = MulDiv(totalBase, weight, 2*totalWeight)
			quoteAmount, _ = MulDiv(totalQuote, weight, 2*totalWeight)
		}

		if baseAmount > 0 || quoteAmount > 0 {
			deposits = append(deposits, BinDeposit{
				BinIndex:    binIndex,
				BaseAmount:  baseAmount,
				QuoteAmount: quoteAmount,
			})
		}
	}
	return deposits
}
