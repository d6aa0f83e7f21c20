package launchr

import (
	"bytes"
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/launchr-fi/launchr-go/bondingcurve"
	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
	solanago "github.com/launchr-fi/launchr-go/solana"
)

// On-chain account layouts. Field order and widths must match the program's
// borsh serialization exactly.

type LaunchAccount struct {
	Mint    solana.PublicKey
	Creator solana.PublicKey
	Status  uint8

	TotalSupply      uint64
	TokensSold       uint64
	GraduationTokens uint64
	CreatorTokens    uint64

	VirtualQuoteReserve uint64
	VirtualBaseReserve  uint64
	RealQuoteReserve    uint64
	RealBaseReserve     uint64

	GraduationThreshold uint64

	CreatedAt   int64
	GraduatedAt int64

	BuyVolume   binary.Uint128
	SellVolume  binary.Uint128
	TradeCount  uint64
	HolderCount uint32

	OrbitPool solana.PublicKey

	CreatorFeeBps uint16

	Name     [32]byte
	Symbol   [10]byte
	URI      [200]byte
	Twitter  [64]byte
	Telegram [64]byte
	Website  [64]byte

	Bump          uint8
	AuthorityBump uint8
	Reserved      [32]byte
}

type ConfigAccount struct {
	Admin        solana.PublicKey
	FeeAuthority solana.PublicKey

	ProtocolFeeBps      uint16
	GraduationThreshold uint64

	QuoteMint      solana.PublicKey
	OrbitProgramID solana.PublicKey

	DefaultBinStepBps uint16
	DefaultBaseFeeBps uint16

	LaunchesPaused bool
	TradingPaused  bool

	TotalLaunches       uint64
	TotalGraduations    uint64
	TotalVolumeLamports binary.Uint128
	TotalFeesCollected  uint64

	Bump     uint8
	Reserved [64]byte
}

type UserPositionAccount struct {
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

	Bump     uint8
	Reserved [32]byte
}

func decodeAccount(name string, data []byte, out interface{}) error {
	if len(data) < 8 {
		return fmt.Errorf("%s account too short", name)
	}
	if !bytes.Equal(data[:8], helpers.AccountDiscriminator(name)) {
		return fmt.Errorf("account discriminator mismatch, want %s", name)
	}
	return binary.NewBorshDecoder(data[8:]).Decode(out)
}

// GetConfig fetches and decodes the global config.
func (m *Launchr) GetConfig(ctx context.Context) (*ConfigAccount, error) {
	out, err := solanago.GetAccountInfo(ctx, m.rpcClient, m.configAddress)
	if err != nil {
		return nil, err
	}
	var acc ConfigAccount
	if err := decodeAccount("Config", out.Value.Data.GetBinary(), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetLaunch fetches and decodes the launch record for a mint.
func (m *Launchr) GetLaunch(ctx context.Context, mint solana.PublicKey) (*LaunchAccount, error) {
	out, err := solanago.GetAccountInfo(ctx, m.rpcClient, helpers.DeriveLaunchAddress(mint))
	if err != nil {
		return nil, err
	}
	var acc LaunchAccount
	if err := decodeAccount("Launch", out.Value.Data.GetBinary(), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetUserPosition fetches a trader's position on a launch. rpc.ErrNotFound
// means the user never traded it.
func (m *Launchr) GetUserPosition(ctx context.Context, mint, user solana.PublicKey) (*UserPositionAccount, error) {
	launch := helpers.DeriveLaunchAddress(mint)
	out, err := solanago.GetAccountInfo(ctx, m.rpcClient, helpers.DeriveUserPositionAddress(launch, user))
	if err != nil {
		return nil, err
	}
	var acc UserPositionAccount
	if err := decodeAccount("UserPosition", out.Value.Data.GetBinary(), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// launch creator sits right after the discriminator and mint
const launchCreatorOffset = 8 + 32

// GetLaunchesByCreator scans the program for launches created by creator. A
// zero creator returns every launch.
func (m *Launchr) GetLaunchesByCreator(ctx context.Context, creator solana.PublicKey) ([]*LaunchAccount, error) {
	var filter *helpers.Filter
	if !creator.IsZero() {
		filter = &helpers.Filter{Owner: creator, Offset: launchCreatorOffset}
	}
	opts := &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
		Filters:    helpers.CreateProgramAccountFilter("Launch", filter),
	}
	outs, err := m.rpcClient.GetProgramAccountsWithOpts(ctx, ProgramID, opts)
	if err != nil {
		return nil, err
	}
	launches := make([]*LaunchAccount, 0, len(outs))
	for _, out := range outs {
		var acc LaunchAccount
		if err := decodeAccount("Launch", out.Account.Data.GetBinary(), &acc); err != nil {
			return nil, err
		}
		launches = append(launches, &acc)
	}
	return launches, nil
}

// Reserves returns the account's curve reserves in domain form.
func (l *LaunchAccount) Reserves() shared.CurveReserves {
	return shared.CurveReserves{
		VirtualQuote: l.VirtualQuoteReserve,
		VirtualBase:  l.VirtualBaseReserve,
		RealQuote:    l.RealQuoteReserve,
		RealBase:     l.RealBaseReserve,
	}
}

// ToLaunch converts the raw account into the domain state machine, so quotes
// and graduation plans can be computed client side.
func (l *LaunchAccount) ToLaunch() *bondingcurve.Launch {
	return &bondingcurve.Launch{
		Mint:                l.Mint,
		Creator:             l.Creator,
		Status:              bondingcurve.LaunchStatus(l.Status),
		TotalSupply:         l.TotalSupply,
		TokensSold:          l.TokensSold,
		GraduationTokens:    l.GraduationTokens,
		CreatorTokens:       l.CreatorTokens,
		Reserves:            l.Reserves(),
		GraduationThreshold: l.GraduationThreshold,
		CreatedAt:           l.CreatedAt,
		GraduatedAt:         l.GraduatedAt,
		BuyVolume:           l.BuyVolume,
		SellVolume:          l.SellVolume,
		TradeCount:          l.TradeCount,
		HolderCount:         l.HolderCount,
		OrbitPool:           l.OrbitPool,
		CreatorFeeBps:       l.CreatorFeeBps,
		Metadata: bondingcurve.LaunchMetadata{
			Name:     fixedString(l.Name[:]),
			Symbol:   fixedString(l.Symbol[:]),
			URI:      fixedString(l.URI[:]),
			Twitter:  fixedString(l.Twitter[:]),
			Telegram: fixedString(l.Telegram[:]),
			Website:  fixedString(l.Website[:]),
		},
	}
}

// ToPosition converts the raw account into the domain position ledger.
func (p *UserPositionAccount) ToPosition() *bondingcurve.UserPosition {
	return &bondingcurve.UserPosition{
		Launch:        p.Launch,
		User:          p.User,
		TokensBought:  p.TokensBought,
		TokensSold:    p.TokensSold,
		TokenBalance:  p.TokenBalance,
		QuoteSpent:    p.QuoteSpent,
		QuoteReceived: p.QuoteReceived,
		FirstTradeAt:  p.FirstTradeAt,
		LastTradeAt:   p.LastTradeAt,
		BuyCount:      p.BuyCount,
		SellCount:     p.SellCount,
		AvgBuyPrice:   p.AvgBuyPrice,
		CostBasis:     p.CostBasis,
	}
}

func fixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
