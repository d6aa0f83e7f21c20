package bondingcurve

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

const testTotalFeeBps = shared.DefaultProtocolFeeBps

func testMetadata() LaunchMetadata {
	return LaunchMetadata{
		Name:   "Moon Token",
		Symbol: "MOON",
		URI:    "https://example.com/moon.json",
	}
}

func newTestLaunch(t *testing.T, threshold uint64) *Launch {
	t.Helper()
	launch, err := NewLaunch(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), threshold, 1_700_000_000, testMetadata())
	require.NoError(t, err)
	return launch
}

func TestNewLaunch(t *testing.T) {
	creator := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	launch, err := NewLaunch(mint, creator, shared.DefaultGraduationThreshold, 1_700_000_000, testMetadata())
	require.NoError(t, err)

	assert.Equal(t, StatusActive, launch.Status)
	assert.Equal(t, uint64(shared.TotalSupply), launch.TotalSupply)
	assert.Equal(t, shared.CurveTokens(), launch.Reserves.RealBase)
	assert.Equal(t, shared.LPReserveTokens(), launch.GraduationTokens)
	assert.Equal(t, launch.TotalSupply, launch.Reserves.RealBase+launch.GraduationTokens)
	assert.Equal(t, uint64(shared.InitialVirtualQuote), launch.Reserves.VirtualQuote)
	assert.Equal(t, uint64(shared.InitialVirtualBase), launch.Reserves.VirtualBase)
	assert.Equal(t, uint64(0), launch.Reserves.RealQuote)
	assert.Equal(t, uint32(1), launch.HolderCount)
	assert.Equal(t, uint16(shared.CreatorFeeBps), launch.CreatorFeeBps)
	assert.True(t, launch.IsTradeable())
}

func TestNewLaunchMetadataRules(t *testing.T) {
	meta := testMetadata()
	meta.Twitter = strings.Repeat("x", 100)
	launch, err := NewLaunch(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1, 0, meta)
	require.NoError(t, err)
	assert.Len(t, launch.Metadata.Twitter, shared.MaxSocialLen)

	meta = testMetadata()
	meta.Name = ""
	_, err = NewLaunch(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1, 0, meta)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)

	meta = testMetadata()
	meta.Name = strings.Repeat("n", shared.MaxNameLen+1)
	_, err = NewLaunch(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1, 0, meta)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)
}

func TestApplyBuy(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)

	quote, err := launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)

	// 100 bps total on 1 SOL; the fixed 20 bps creator share is carved out
	// of it, leaving 80 bps for the treasury.
	assert.Equal(t, uint64(10_000_000), quote.TotalFee)
	assert.Equal(t, uint64(2_000_000), quote.CreatorFee)
	assert.Equal(t, uint64(8_000_000), quote.ProtocolFee)

	assert.Equal(t, uint64(1_000_000_000-10_000_000), launch.Reserves.RealQuote)
	assert.Equal(t, shared.CurveTokens()-quote.AmountOut, launch.Reserves.RealBase)
	assert.Equal(t, quote.AmountOut, launch.TokensSold)
	assert.Equal(t, uint64(1), launch.TradeCount)
	assert.Equal(t, StatusActive, launch.Status)
}

func TestApplyBuySlippageLeavesStateUntouched(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	before := *launch

	_, err := launch.ApplyBuy(1_000_000_000, ^uint64(0), testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrSlippageExceeded)
	assert.Equal(t, before, *launch)

	_, err = launch.ApplyBuy(shared.MinTradeAmount-1, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrTradeTooSmall)
	assert.Equal(t, before, *launch)
}

func TestApplyBuyCrossesThreshold(t *testing.T) {
	launch := newTestLaunch(t, 1_000_000_000)

	_, err := launch.ApplyBuy(2_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingGraduation, launch.Status)
	assert.False(t, launch.IsTradeable())
	assert.True(t, launch.CanGraduate())

	// Trading halts until the migration completes.
	_, err = launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrLaunchNotActive)
	_, err = launch.ApplySell(1_000_000, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrLaunchNotActive)
}

func TestApplySell(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	buy, err := launch.ApplyBuy(10_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)

	quoteBefore := launch.Reserves.RealQuote
	sell, err := launch.ApplySell(buy.AmountOut/2, 0, testTotalFeeBps)
	require.NoError(t, err)

	assert.Equal(t, quoteBefore-sell.AmountOut-sell.TotalFee, launch.Reserves.RealQuote)
	assert.Equal(t, buy.AmountOut-buy.AmountOut/2, launch.TokensSold)
	assert.Equal(t, uint64(2), launch.TradeCount)
}

func TestApplySellRespectsVaultFloor(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	buy, err := launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)

	// Selling the entire bought amount would drag the vault below its
	// rent-exempt floor.
	before := *launch
	_, err = launch.ApplySell(buy.AmountOut, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrInsufficientLiquidity)
	assert.Equal(t, before, *launch)

	// A partial sell that leaves the floor intact goes through.
	_, err = launch.ApplySell(buy.AmountOut/2, 0, testTotalFeeBps)
	assert.NoError(t, err)
}

func TestApplySellSlippage(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	buy, err := launch.ApplyBuy(10_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)

	before := *launch
	_, err = launch.ApplySell(buy.AmountOut/2, ^uint64(0), testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrSlippageExceeded)
	assert.Equal(t, before, *launch)
}

func TestGraduate(t *testing.T) {
	launch := newTestLaunch(t, 1_000_000_000)
	pool := solana.NewWallet().PublicKey()

	err := launch.Graduate(pool, 1_700_000_100)
	assert.ErrorIs(t, err, shared.ErrThresholdNotReached)

	_, err = launch.ApplyBuy(2_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)

	require.NoError(t, launch.Graduate(pool, 1_700_000_100))
	assert.Equal(t, StatusGraduated, launch.Status)
	assert.Equal(t, pool, launch.OrbitPool)
	assert.Equal(t, int64(1_700_000_100), launch.GraduatedAt)

	// Graduation happens once.
	err = launch.Graduate(solana.NewWallet().PublicKey(), 1_700_000_200)
	assert.ErrorIs(t, err, shared.ErrAlreadyGraduated)
	assert.Equal(t, pool, launch.OrbitPool)

	_, err = launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrLaunchNotActive)
}

func TestCancel(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)

	err := launch.Cancel(solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Equal(t, StatusActive, launch.Status)

	require.NoError(t, launch.Cancel(launch.Creator))
	assert.Equal(t, StatusCancelled, launch.Status)

	err = launch.Cancel(launch.Creator)
	assert.ErrorIs(t, err, shared.ErrLaunchNotActive)

	_, err = launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	assert.ErrorIs(t, err, shared.ErrLaunchNotActive)
}

func TestCurrentPriceAndMarketCap(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)

	// 30e9 virtual quote over 800e15 virtual base, scaled by 1e9.
	assert.Equal(t, uint64(37), launch.CurrentPrice())
	assert.Equal(t, uint64(37_000_000_000), launch.MarketCap())

	_, err := launch.ApplyBuy(10_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)
	assert.Greater(t, launch.CurrentPrice(), uint64(37))
}

func TestBuildGraduationPlan(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	quoteMint := solana.NewWallet().PublicKey()

	_, err := launch.BuildGraduationPlan(quoteMint, shared.DefaultBinStepBps, shared.DefaultBinsPerSide)
	assert.ErrorIs(t, err, shared.ErrThresholdNotReached)

	launch.Reserves.RealQuote = shared.DefaultGraduationThreshold
	launch.Status = StatusPendingGraduation

	_, err = launch.BuildGraduationPlan(quoteMint, 0, shared.DefaultBinsPerSide)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)
	_, err = launch.BuildGraduationPlan(quoteMint, shared.MaxBinStepBps+1, shared.DefaultBinsPerSide)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)

	plan, err := launch.BuildGraduationPlan(quoteMint, shared.DefaultBinStepBps, shared.DefaultBinsPerSide)
	require.NoError(t, err)

	assert.Equal(t, uint64(shared.CreatorRewardLamports), plan.CreatorReward)
	assert.Equal(t, uint64(shared.TreasuryFeeLamports), plan.TreasuryFee)
	assert.Equal(t, uint64(shared.DefaultGraduationThreshold-shared.CreatorRewardLamports-shared.TreasuryFeeLamports), plan.LPQuoteLamports)
	assert.Equal(t, launch.Reserves.RealBase+launch.GraduationTokens, plan.LPBaseTokens)

	require.Len(t, plan.BinIDs, 2*shared.DefaultBinsPerSide+1)
	require.Len(t, plan.Distribution, len(plan.BinIDs))
	assert.Equal(t, plan.ActiveBinIndex, plan.BinIDs[shared.DefaultBinsPerSide])
	assert.LessOrEqual(t, plan.BinArrayLowerBound, plan.ActiveBinIndex)
	assert.Equal(t, uint16(shared.DefaultBinStepBps), plan.BinStepBps)

	// Plans never mutate the launch; graduation is a separate commit.
	assert.Equal(t, StatusPendingGraduation, launch.Status)

	require.NoError(t, launch.Graduate(solana.NewWallet().PublicKey(), 1))
	_, err = launch.BuildGraduationPlan(quoteMint, shared.DefaultBinStepBps, shared.DefaultBinsPerSide)
	assert.ErrorIs(t, err, shared.ErrAlreadyGraduated)
}

func TestBuildGraduationPlanMintOrder(t *testing.T) {
	lowMint := solana.PublicKeyFromBytes(append([]byte{1}, make([]byte, 31)...))
	highMint := solana.PublicKeyFromBytes(append([]byte{2}, make([]byte, 31)...))

	launch, err := NewLaunch(lowMint, solana.NewWallet().PublicKey(), shared.DefaultGraduationThreshold, 0, testMetadata())
	require.NoError(t, err)
	launch.Reserves.RealQuote = shared.DefaultGraduationThreshold

	plan, err := launch.BuildGraduationPlan(highMint, shared.DefaultBinStepBps, shared.DefaultBinsPerSide)
	require.NoError(t, err)
	assert.True(t, plan.BaseMintIsPrimary)

	plan, err = launch.BuildGraduationPlan(solana.PublicKeyFromBytes(make([]byte, 32)), shared.DefaultBinStepBps, shared.DefaultBinsPerSide)
	require.NoError(t, err)
	assert.False(t, plan.BaseMintIsPrimary)
}

func TestLaunchStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "pending_graduation", StatusPendingGraduation.String())
	assert.Equal(t, "graduated", StatusGraduated.String())
	assert.Equal(t, "cancelled", StatusCancelled.String())
	assert.Equal(t, "unknown", LaunchStatus(99).String())
}

func TestApplyBuyWithConfiguredFee(t *testing.T) {
	var cfg Config
	admin := solana.NewWallet().PublicKey()
	require.NoError(t, cfg.Init(admin, solana.NewWallet().PublicKey(), DefaultConfigParams(solana.NewWallet().PublicKey())))

	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	quote, err := launch.ApplyBuy(1_000_000_000, 0, cfg.TotalFeeBps())
	require.NoError(t, err)

	assert.Equal(t, uint64(10_000_000), quote.TotalFee)
	assert.Equal(t, uint64(2_000_000), quote.CreatorFee)
	assert.Equal(t, uint64(8_000_000), quote.ProtocolFee)
	assert.Equal(t, quote.TotalFee, quote.CreatorFee+quote.ProtocolFee)
}

func TestHolderCountTracksFirstPositions(t *testing.T) {
	launch := newTestLaunch(t, shared.DefaultGraduationThreshold)
	require.Equal(t, uint32(1), launch.HolderCount)

	buyer := solana.NewWallet().PublicKey()
	pos := NewUserPosition(launch.Mint, buyer, 1_700_000_000)

	quote, err := launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)
	if pos.IsNew() {
		launch.RecordNewHolder()
	}
	pos.RecordBuy(quote.AmountOut, 1_000_000_000, 1_700_000_000)

	assert.Equal(t, uint32(2), launch.HolderCount)
	assert.False(t, pos.IsNew())

	// A repeat buy from the same position leaves the count alone.
	quote, err = launch.ApplyBuy(1_000_000_000, 0, testTotalFeeBps)
	require.NoError(t, err)
	if pos.IsNew() {
		launch.RecordNewHolder()
	}
	pos.RecordBuy(quote.AmountOut, 1_000_000_000, 1_700_000_001)
	assert.Equal(t, uint32(2), launch.HolderCount)
}
