package solana

import (
	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// SPL state decoding for vault and holder inspection.

const (
	tokenStateUninitialized uint8 = 0
	tokenStateFrozen        uint8 = 2
)

// TokenAccount is the slice of SPL token account state the client reads:
// enough to reconcile vault balances and holder positions.
type TokenAccount struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
	Owner   solana.PublicKey
	Amount  uint64

	Initialized bool
	Frozen      bool
	Native      bool
}

// splAccountLayout mirrors the fixed 165-byte SPL token account wire format.
// The COption flags decide whether the trailing pointers carry meaning; the
// bytes are always present.
type splAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             *solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	NativeReserve        *uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       *solana.PublicKey
}

// DecodeTokenAccount parses raw SPL token account data.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	raw := &splAccountLayout{}
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, err
	}
	return &TokenAccount{
		Mint:        raw.Mint,
		Owner:       raw.Owner,
		Amount:      raw.Amount,
		Initialized: raw.State != tokenStateUninitialized,
		Frozen:      raw.State == tokenStateFrozen,
		Native:      raw.IsNativeOption > 0,
	}, nil
}

// Mint is a decoded SPL mint together with its owning program, which
// distinguishes the classic token program from impostors.
type Mint struct {
	token.Mint
	ProgramOwner solana.PublicKey
}

// DecodeMint parses raw SPL mint data.
func DecodeMint(data []byte) (*Mint, error) {
	var mint token.Mint
	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return &Mint{Mint: mint}, nil
}
