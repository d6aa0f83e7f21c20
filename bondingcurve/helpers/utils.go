package helpers

import (
	"crypto/sha256"
	"errors"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
)

// ConvertToLamports parses a human-readable amount ("1.5") into base units.
func ConvertToLamports(amount string, tokenDecimal int32) (*big.Int, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	value = value.Mul(decimal.New(1, tokenDecimal))
	return FromDecimalToBig(value), nil
}

// ConvertToDisplay renders base units as a human-readable decimal string.
func ConvertToDisplay(amount uint64, tokenDecimal int32) string {
	return decimal.NewFromUint64(amount).Div(decimal.New(1, tokenDecimal)).String()
}

func FromDecimalToBig(value decimal.Decimal) *big.Int {
	return value.Truncate(0).BigInt()
}

// AccountDiscriminator returns the 8-byte anchor account tag for name.
func AccountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// InstructionDiscriminator returns the 8-byte anchor instruction tag for name.
func InstructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// Filter narrows a program account scan to records owned by a pubkey at a
// fixed byte offset.
type Filter struct {
	Owner  solanago.PublicKey
	Offset uint64
}

// CreateProgramAccountFilter builds getProgramAccounts filters keyed on the
// account discriminator, optionally narrowed by owner.
func CreateProgramAccountFilter(key string, filter *Filter) []rpc.RPCFilter {
	filters := []rpc.RPCFilter{{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  AccountDiscriminator(key),
		},
	}}
	if filter != nil {
		filters = append(filters, rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: filter.Offset,
				Bytes:  filter.Owner[:],
			},
		})
	}
	return filters
}

// BigIntToU64 converts a non-negative big.Int to uint64 with bounds check.
func BigIntToU64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	if v.Sign() < 0 {
		return 0, errors.New("value must be non-negative")
	}
	if v.BitLen() > 64 {
		return 0, errors.New("value overflows uint64")
	}
	return v.Uint64(), nil
}
