package shared

const (
	// PriceScale is the fixed multiplier applied to lamports-per-token prices.
	PriceScale = 1_000_000_000

	// MaxBasisPoint is the basis point denominator.
	MaxBasisPoint = 10_000

	// MinTradeAmount is the smallest accepted trade size in lamports.
	MinTradeAmount = 1_000

	// Resolution is the number of fractional bits in Q64.64 values.
	Resolution = 64

	// BinArraySize is the number of bins per bin array in the Orbit venue.
	BinArraySize = 64

	// LN2Q64 is ln(2) scaled by 2^64.
	LN2Q64 = 12786308645202655660

	MaxProtocolFeeBps = 1_000
	CreatorFeeBps     = 20

	MinBinStepBps = 1
	MaxBinStepBps = 500

	DefaultBinStepBps     = 25
	DefaultBaseFeeBps     = 30
	DefaultBinsPerSide    = 10
	DefaultProtocolFeeBps = 100

	// CurveVaultRentMinimum is the lamport floor kept in the quote vault so the
	// account stays rent exempt.
	CurveVaultRentMinimum = 890_880
)

// Token supply allocation. The curve sells 80% of supply; 20% is reserved to
// seed the Orbit pool at graduation.
const (
	TotalSupply  = 1_000_000_000_000_000_000
	CurveBps     = 8_000
	LPReserveBps = 2_000
)

// Initial virtual reserves shaping the launch price curve.
const (
	InitialVirtualQuote = 30_000_000_000
	InitialVirtualBase  = 800_000_000_000_000_000
)

// Graduation quote distribution. These are absolute lamport amounts, not ratios
// of the configured threshold: reconfiguring the threshold away from
// DefaultGraduationThreshold leaves the split unbalanced. Kept as-is on purpose.
const (
	DefaultGraduationThreshold = 85_000_000_000
	CreatorRewardLamports      = 2_000_000_000
	TreasuryFeeLamports        = 3_000_000_000
)

// Metadata field byte limits.
const (
	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200
	MaxSocialLen = 64
)

// CurveTokens is the bonding curve share of the total supply.
func CurveTokens() uint64 {
	return TotalSupply / MaxBasisPoint * CurveBps
}

// LPReserveTokens is the share held back for the Orbit migration.
func LPReserveTokens() uint64 {
	return TotalSupply / MaxBasisPoint * LPReserveBps
}

// CurveReserves is the pricing state of one launch. Virtual reserves drive the
// constant product; real reserves track custodial balances.
type CurveReserves struct {
	VirtualQuote uint64
	VirtualBase  uint64
	RealQuote    uint64
	RealBase     uint64
}

// SwapQuote is the outcome of pricing a single trade. It is ephemeral and never
// persisted.
type SwapQuote struct {
	AmountOut       uint64
	ProtocolFee     uint64
	CreatorFee      uint64
	TotalFee        uint64
	NewVirtualQuote uint64
	NewVirtualBase  uint64
	PriceAfter      uint64
	PriceImpactBps  uint64
}
