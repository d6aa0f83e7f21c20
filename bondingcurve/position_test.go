package bondingcurve

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

func newTestPosition() *UserPosition {
	return NewUserPosition(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1_700_000_000)
}

func TestNewUserPosition(t *testing.T) {
	p := newTestPosition()
	assert.True(t, p.IsNew())
	assert.Zero(t, p.TotalTrades())
	assert.Equal(t, int64(1_700_000_000), p.FirstTradeAt)
}

func TestRecordBuy(t *testing.T) {
	p := newTestPosition()
	p.RecordBuy(100_000_000_000, 1_000_000_000, 1_700_000_010)

	assert.Equal(t, uint64(100_000_000_000), p.TokenBalance)
	assert.Equal(t, uint64(1_000_000_000), p.QuoteSpent)
	assert.Equal(t, uint64(1_000_000_000), p.CostBasis)
	// 1e9 lamports for 100e9 tokens: 0.01 lamports per token, scaled by 1e9.
	assert.Equal(t, uint64(10_000_000), p.AvgBuyPrice)
	assert.Equal(t, uint32(1), p.BuyCount)
	assert.Equal(t, int64(1_700_000_010), p.LastTradeAt)
	assert.False(t, p.IsNew())

	// A second buy at a higher price restates the average.
	p.RecordBuy(100_000_000_000, 3_000_000_000, 1_700_000_020)
	assert.Equal(t, uint64(200_000_000_000), p.TokenBalance)
	assert.Equal(t, uint64(4_000_000_000), p.CostBasis)
	assert.Equal(t, uint64(20_000_000), p.AvgBuyPrice)
}

func TestRecordSell(t *testing.T) {
	p := newTestPosition()
	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)

	require.NoError(t, p.RecordSell(40_000_000_000, 600_000_000, 10))

	assert.Equal(t, uint64(60_000_000_000), p.TokenBalance)
	assert.Equal(t, uint64(40_000_000_000), p.TokensSold)
	assert.Equal(t, uint64(600_000_000), p.QuoteReceived)

	// 40% of the lifetime buys sold reduces the cost basis by 40%.
	assert.Equal(t, uint64(600_000_000), p.CostBasis)
	assert.Equal(t, uint64(10_000_000), p.AvgBuyPrice)
	assert.Equal(t, uint32(1), p.SellCount)
}

func TestRecordSellFullExit(t *testing.T) {
	p := newTestPosition()
	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)
	require.NoError(t, p.RecordSell(100_000_000_000, 1_500_000_000, 10))

	assert.Zero(t, p.TokenBalance)
	assert.Zero(t, p.CostBasis)
	assert.Zero(t, p.AvgBuyPrice)
	assert.Equal(t, uint32(2), p.TotalTrades())
}

func TestRecordSellRejectsOverdraw(t *testing.T) {
	p := newTestPosition()
	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)

	before := *p
	err := p.RecordSell(100_000_000_001, 1, 10)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	assert.Equal(t, before, *p)
}

func TestRealizedPnL(t *testing.T) {
	p := newTestPosition()
	assert.Zero(t, p.RealizedPnL())

	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)
	require.NoError(t, p.RecordSell(50_000_000_000, 800_000_000, 10))

	// Sold half the lifetime buys for 0.8 SOL against a 0.5 SOL pro-rata cost.
	assert.Equal(t, int64(300_000_000), p.RealizedPnL())

	// A losing exit goes negative.
	require.NoError(t, p.RecordSell(50_000_000_000, 100_000_000, 20))
	assert.Equal(t, int64(-100_000_000), p.RealizedPnL())
}

func TestUnrealizedPnL(t *testing.T) {
	p := newTestPosition()
	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)

	// Bought at 0.01 lamports per token; marked at 0.02 the holding doubled.
	assert.Equal(t, int64(1_000_000_000), p.UnrealizedPnL(20_000_000))
	assert.Equal(t, int64(0), p.UnrealizedPnL(10_000_000))
	assert.Equal(t, int64(-500_000_000), p.UnrealizedPnL(5_000_000))

	require.NoError(t, p.RecordSell(100_000_000_000, 1_000_000_000, 10))
	assert.Zero(t, p.UnrealizedPnL(20_000_000))
}

func TestTotalPnLAndROI(t *testing.T) {
	p := newTestPosition()
	assert.Zero(t, p.ROIBps(10_000_000))

	p.RecordBuy(100_000_000_000, 1_000_000_000, 0)

	// Flat price: no realized, no unrealized.
	assert.Zero(t, p.TotalPnL(10_000_000))
	assert.Zero(t, p.ROIBps(10_000_000))

	// Price doubles: +100% on the 1 SOL spent.
	assert.Equal(t, int64(1_000_000_000), p.TotalPnL(20_000_000))
	assert.Equal(t, int64(10_000), p.ROIBps(20_000_000))
}
