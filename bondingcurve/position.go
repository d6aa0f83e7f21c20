package bondingcurve

import (
	"github.com/gagliardetto/solana-go"

	"github.com/launchr-fi/launchr-go/bondingcurve/math"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// UserPosition tracks one trader's activity on one launch: lifetime volume,
// current balance, and a cost basis that is reduced proportionally on sells.
type UserPosition struct {
	Launch solana.PublicKey
	User   solana.PublicKey

	TokensBought uint64
	TokensSold   uint64
	TokenBalance uint64

	QuoteSpent    uint64
	QuoteReceived uint64

	FirstTradeAt int64
	LastTradeAt  int64

	BuyCount  uint32
	SellCount uint32

	AvgBuyPrice uint64
	CostBasis   uint64
}

// NewUserPosition opens an empty position record.
func NewUserPosition(launch, user solana.PublicKey, now int64) *UserPosition {
	return &UserPosition{
		Launch:       launch,
		User:         user,
		FirstTradeAt: now,
		LastTradeAt:  now,
	}
}

// RecordBuy folds a fill into the position: balance and spend grow, the cost
// basis absorbs the full quote amount, and the average price is restated over
// the new balance.
func (p *UserPosition) RecordBuy(tokens, quoteAmount uint64, now int64) {
	p.TokensBought = math.SaturatingAdd(p.TokensBought, tokens)
	p.TokenBalance = math.SaturatingAdd(p.TokenBalance, tokens)
	p.QuoteSpent = math.SaturatingAdd(p.QuoteSpent, quoteAmount)

	p.CostBasis = math.SaturatingAdd(p.CostBasis, quoteAmount)
	if p.TokenBalance > 0 {
		p.AvgBuyPrice = mulDivClamped(p.CostBasis, shared.PriceScale, p.TokenBalance)
	}

	p.BuyCount++
	p.LastTradeAt = now
}

// RecordSell folds a sell fill into the position. The cost basis is reduced in
// proportion to the share of lifetime-bought tokens being sold, which keeps
// realized and unrealized PnL consistent with each other. Selling more than
// the tracked balance is rejected.
func (p *UserPosition) RecordSell(tokens, quoteAmount uint64, now int64) error {
	if tokens > p.TokenBalance {
		return shared.ErrInvalidAmount
	}

	p.TokensSold = math.SaturatingAdd(p.TokensSold, tokens)
	p.TokenBalance -= tokens
	p.QuoteReceived = math.SaturatingAdd(p.QuoteReceived, quoteAmount)

	if p.TokensBought > 0 {
		soldRatio := mulDivClamped(tokens, shared.PriceScale, p.TokensBought)
		costReduction := mulDivClamped(p.CostBasis, soldRatio, shared.PriceScale)
		p.CostBasis = math.SaturatingSub(p.CostBasis, costReduction)
	}

	if p.TokenBalance > 0 {
		p.AvgBuyPrice = mulDivClamped(p.CostBasis, shared.PriceScale, p.TokenBalance)
	} else {
		p.AvgBuyPrice = 0
	}

	p.SellCount++
	p.LastTradeAt = now
	return nil
}

// RealizedPnL is the quote received from sells minus the pro-rata cost of the
// tokens sold, in lamports. Negative means a realized loss.
func (p *UserPosition) RealizedPnL() int64 {
	if p.TokensBought == 0 {
		return 0
	}
	costOfSold := mulDivClamped(p.QuoteSpent, p.TokensSold, p.TokensBought)
	return int64(p.QuoteReceived) - int64(costOfSold)
}

// UnrealizedPnL marks the held balance at currentPrice against the remaining
// cost basis.
func (p *UserPosition) UnrealizedPnL(currentPrice uint64) int64 {
	if p.TokenBalance == 0 {
		return 0
	}
	currentValue := mulDivClamped(p.TokenBalance, currentPrice, shared.PriceScale)
	return int64(currentValue) - int64(p.CostBasis)
}

// TotalPnL is realized plus unrealized PnL at currentPrice.
func (p *UserPosition) TotalPnL(currentPrice uint64) int64 {
	return p.RealizedPnL() + p.UnrealizedPnL(currentPrice)
}

// ROIBps is total PnL over total quote spent, in basis points. Zero spend
// yields zero rather than a division error.
func (p *UserPosition) ROIBps(currentPrice uint64) int64 {
	if p.QuoteSpent == 0 {
		return 0
	}
	return p.TotalPnL(currentPrice) * int64(shared.MaxBasisPoint) / int64(p.QuoteSpent)
}

// IsNew reports whether the position has never traded.
func (p *UserPosition) IsNew() bool {
	return p.BuyCount == 0 && p.SellCount == 0
}

// TotalTrades is the combined buy and sell count.
func (p *UserPosition) TotalTrades() uint32 {
	sum := p.BuyCount + p.SellCount
	if sum < p.BuyCount {
		return ^uint32(0)
	}
	return sum
}

// mulDivClamped is a*b/den with 128-bit intermediates, clamping to the uint64
// range instead of erroring. Position accounting is advisory, so clamping
// beats poisoning the record with a hard failure.
func mulDivClamped(a, b, den uint64) uint64 {
	out, err := math.MulDiv(a, b, den)
	if err != nil {
		return ^uint64(0)
	}
	return out
}
