// Package bondingcurve implements the launch lifecycle: constant product
// trading against virtual reserves, per-user position accounting, and the
// graduation handoff into the Orbit concentrated liquidity venue.
package bondingcurve

import (
	"bytes"
	"math/bits"

	"github.com/gagliardetto/solana-go"

	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	"github.com/launchr-fi/launchr-go/bondingcurve/math"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// LaunchStatus tracks where a launch is in its lifecycle.
type LaunchStatus uint8

const (
	// StatusActive means the launch is trading on the bonding curve.
	StatusActive LaunchStatus = iota
	// StatusPendingGraduation means the threshold was reached and trading is
	// halted until migration completes.
	StatusPendingGraduation
	// StatusGraduated means liquidity has moved to the Orbit pool.
	StatusGraduated
	// StatusCancelled is the terminal creator-cancelled state.
	StatusCancelled
)

func (s LaunchStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPendingGraduation:
		return "pending_graduation"
	case StatusGraduated:
		return "graduated"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// LaunchMetadata holds the launch token metadata. Fields are byte-length
// bounded at creation; see helpers.TruncateUTF8 for the truncation rule.
type LaunchMetadata struct {
	Name     string
	Symbol   string
	URI      string
	Twitter  string
	Telegram string
	Website  string
}

// Launch is the full on-curve state of a single token launch. Identity fields
// are immutable after creation; everything else is mutated only through the
// Apply/Graduate/Cancel operations, each of which either commits completely or
// leaves the record untouched.
type Launch struct {
	Mint    solana.PublicKey
	Creator solana.PublicKey
	Status  LaunchStatus

	TotalSupply      uint64
	TokensSold       uint64
	GraduationTokens uint64
	CreatorTokens    uint64

	Reserves shared.CurveReserves

	GraduationThreshold uint64

	CreatedAt   int64
	GraduatedAt int64

	BuyVolume   shared.Uint128
	SellVolume  shared.Uint128
	TradeCount  uint64
	HolderCount uint32

	OrbitPool solana.PublicKey

	CreatorFeeBps uint16

	Metadata LaunchMetadata
}

// NewLaunch initializes a launch with the fixed supply split and virtual
// reserve constants. The creator fee is fixed; callers cannot choose it.
func NewLaunch(mint, creator solana.PublicKey, graduationThreshold uint64, now int64, meta LaunchMetadata) (*Launch, error) {
	meta.Twitter = helpers.TruncateUTF8(meta.Twitter, shared.MaxSocialLen)
	meta.Telegram = helpers.TruncateUTF8(meta.Telegram, shared.MaxSocialLen)
	meta.Website = helpers.TruncateUTF8(meta.Website, shared.MaxSocialLen)
	if err := helpers.ValidateMetadata(meta.Name, meta.Symbol, meta.URI, meta.Twitter, meta.Telegram, meta.Website); err != nil {
		return nil, err
	}
	return &Launch{
		Mint:             mint,
		Creator:          creator,
		Status:           StatusActive,
		TotalSupply:      shared.TotalSupply,
		GraduationTokens: shared.LPReserveTokens(),
		CreatorTokens:    0,
		Reserves: shared.CurveReserves{
			VirtualQuote: shared.InitialVirtualQuote,
			VirtualBase:  shared.InitialVirtualBase,
			RealQuote:    0,
			RealBase:     shared.CurveTokens(),
		},
		GraduationThreshold: graduationThreshold,
		CreatedAt:           now,
		HolderCount:         1,
		CreatorFeeBps:       shared.CreatorFeeBps,
		Metadata:            meta,
	}, nil
}

// IsTradeable reports whether buys and sells are currently accepted.
func (l *Launch) IsTradeable() bool {
	return l.Status == StatusActive
}

// CanGraduate reports whether graduation is permitted from the current state.
func (l *Launch) CanGraduate() bool {
	return l.Status == StatusActive || l.Status == StatusPendingGraduation
}

// ThresholdReached reports whether the accumulated quote meets the graduation
// threshold.
func (l *Launch) ThresholdReached() bool {
	return l.Reserves.RealQuote >= l.GraduationThreshold
}

// CurrentPrice is the spot price in lamports per token scaled by PriceScale.
func (l *Launch) CurrentPrice() uint64 {
	return math.CalculatePrice(l.Reserves.VirtualQuote, l.Reserves.VirtualBase)
}

// MarketCap values the full supply at the current price, in lamports.
func (l *Launch) MarketCap() uint64 {
	cap, err := math.MulDiv(l.CurrentPrice(), l.TotalSupply, shared.PriceScale)
	if err != nil {
		return ^uint64(0)
	}
	return cap
}

// RecordNewHolder bumps the holder count. Call it alongside ApplyBuy when the
// buyer's position IsNew; the creator's graduation reserve seat is counted at
// creation.
func (l *Launch) RecordNewHolder() {
	l.HolderCount = saturatingAddU32(l.HolderCount, 1)
}

// ApplyBuy executes a buy of quoteIn lamports against the curve. The quote,
// slippage check, and reserve checks all happen before any field is written,
// so a rejected buy leaves the launch byte-for-byte unchanged. When the buy
// pushes the real quote reserve across the graduation threshold the status
// flips to PendingGraduation in the same operation.
func (l *Launch) ApplyBuy(quoteIn, minBaseOut uint64, totalFeeBps uint16) (shared.SwapQuote, error) {
	if !l.IsTradeable() {
		return shared.SwapQuote{}, shared.ErrLaunchNotActive
	}

	quote, err := math.CalculateBuy(quoteIn, l.Reserves, totalFeeBps, l.CreatorFeeBps)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	if quote.AmountOut < minBaseOut {
		return shared.SwapQuote{}, shared.ErrSlippageExceeded
	}
	if quote.AmountOut > l.Reserves.RealBase {
		return shared.SwapQuote{}, shared.ErrInsufficientLiquidity
	}

	quoteToVault := quoteIn - quote.TotalFee

	l.Reserves.VirtualQuote = quote.NewVirtualQuote
	l.Reserves.VirtualBase = quote.NewVirtualBase
	l.Reserves.RealQuote = math.SaturatingAdd(l.Reserves.RealQuote, quoteToVault)
	l.Reserves.RealBase -= quote.AmountOut
	l.TokensSold = math.SaturatingAdd(l.TokensSold, quote.AmountOut)
	l.BuyVolume = addU128(l.BuyVolume, quoteToVault)
	l.TradeCount++

	if l.Status == StatusActive && l.ThresholdReached() {
		l.Status = StatusPendingGraduation
	}
	return quote, nil
}

// ApplySell executes a sell of baseIn tokens. The payout and both fee legs
// leave the quote vault, so the operation is rejected when that would drag the
// vault below its rent-exempt floor.
func (l *Launch) ApplySell(baseIn, minQuoteOut uint64, totalFeeBps uint16) (shared.SwapQuote, error) {
	if !l.IsTradeable() {
		return shared.SwapQuote{}, shared.ErrLaunchNotActive
	}

	quote, err := math.CalculateSell(baseIn, l.Reserves, totalFeeBps, l.CreatorFeeBps)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	if quote.AmountOut < minQuoteOut {
		return shared.SwapQuote{}, shared.ErrSlippageExceeded
	}

	quoteNeeded, err := math.CheckedAdd(quote.AmountOut, quote.TotalFee)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	floor, err := math.CheckedAdd(quoteNeeded, shared.CurveVaultRentMinimum)
	if err != nil {
		return shared.SwapQuote{}, err
	}
	if l.Reserves.RealQuote < floor {
		return shared.SwapQuote{}, shared.ErrInsufficientLiquidity
	}

	l.Reserves.VirtualQuote = quote.NewVirtualQuote
	l.Reserves.VirtualBase = quote.NewVirtualBase
	l.Reserves.RealQuote -= quoteNeeded
	l.Reserves.RealBase = math.SaturatingAdd(l.Reserves.RealBase, baseIn)
	l.TokensSold = math.SaturatingSub(l.TokensSold, baseIn)
	l.SellVolume = addU128(l.SellVolume, quote.AmountOut)
	l.TradeCount++

	return quote, nil
}

// Graduate marks the launch as migrated. It is permitted once, from Active or
// PendingGraduation, and only when the threshold is met; a second call fails
// with ErrAlreadyGraduated instead of re-executing.
func (l *Launch) Graduate(orbitPool solana.PublicKey, now int64) error {
	if !l.CanGraduate() {
		return shared.ErrAlreadyGraduated
	}
	if !l.ThresholdReached() {
		return shared.ErrThresholdNotReached
	}
	l.Status = StatusGraduated
	l.OrbitPool = orbitPool
	l.GraduatedAt = now
	return nil
}

// Cancel is the creator-triggered terminal exit, allowed only while the launch
// is still actively trading.
func (l *Launch) Cancel(caller solana.PublicKey) error {
	if !caller.Equals(l.Creator) {
		return shared.ErrUnauthorized
	}
	if l.Status != StatusActive {
		return shared.ErrLaunchNotActive
	}
	l.Status = StatusCancelled
	return nil
}

// GraduationPlan carries everything the Orbit venue needs to seed the pool,
// plus the three-way split of the accumulated quote balance.
type GraduationPlan struct {
	ActiveBinIndex     int32
	BinArrayLowerBound int32
	BaseMintIsPrimary  bool
	BinIDs             []int32
	Distribution       []uint64

	LPQuoteLamports uint64
	LPBaseTokens    uint64
	CreatorReward   uint64
	TreasuryFee     uint64

	BinStepBps uint16
	PriceQ64   shared.Uint128
}

// BuildGraduationPlan computes the bin placement and liquidity distribution
// for migrating this launch into an Orbit pool priced at the curve's final
// spot price. It does not mutate the launch; Graduate commits the transition
// after the venue calls succeed.
func (l *Launch) BuildGraduationPlan(quoteMint solana.PublicKey, binStepBps uint16, binsPerSide uint8) (*GraduationPlan, error) {
	if !l.CanGraduate() {
		return nil, shared.ErrAlreadyGraduated
	}
	if !l.ThresholdReached() {
		return nil, shared.ErrThresholdNotReached
	}
	if binStepBps < shared.MinBinStepBps || binStepBps > shared.MaxBinStepBps {
		return nil, shared.ErrInvalidConfig
	}

	// The split is taken in fixed absolute amounts; the vault must hold at
	// least reward+fee on top of something to seed the pool with.
	distributed, err := math.CheckedAdd(shared.CreatorRewardLamports, shared.TreasuryFeeLamports)
	if err != nil {
		return nil, err
	}
	if l.Reserves.RealQuote < l.GraduationThreshold || l.Reserves.RealQuote <= distributed {
		return nil, shared.ErrInsufficientGraduationFunds
	}
	lpQuote := l.Reserves.RealQuote - distributed

	// Unsold curve tokens plus the 20% reserve both move into the pool.
	lpBase := math.SaturatingAdd(l.Reserves.RealBase, l.GraduationTokens)

	priceQ64 := math.PriceToQ64(l.CurrentPrice(), 9)
	activeBin := math.PriceToBinIndex(priceQ64, binStepBps)
	binIDs, distribution := math.BalancedDistribution(activeBin, binsPerSide, lpBase, lpQuote)

	return &GraduationPlan{
		ActiveBinIndex:     activeBin,
		BinArrayLowerBound: math.BinArrayLowerIndex(activeBin),
		BaseMintIsPrimary:  bytes.Compare(l.Mint.Bytes(), quoteMint.Bytes()) < 0,
		BinIDs:             binIDs,
		Distribution:       distribution,
		LPQuoteLamports:    lpQuote,
		LPBaseTokens:       lpBase,
		CreatorReward:      shared.CreatorRewardLamports,
		TreasuryFee:        shared.TreasuryFeeLamports,
		BinStepBps:         binStepBps,
		PriceQ64:           math.BigToU128(priceQ64),
	}, nil
}

func saturatingAddU32(a, b uint32) uint32 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint32(0)
}

func addU128(v shared.Uint128, amount uint64) shared.Uint128 {
	lo, carry := bits.Add64(v.Lo, amount, 0)
	hi, _ := bits.Add64(v.Hi, 0, carry)
	return shared.Uint128{Lo: lo, Hi: hi}
}
