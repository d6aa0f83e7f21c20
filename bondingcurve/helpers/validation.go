package helpers

import (
	"context"
	"math/big"
	"unicode/utf8"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// ValidateMetadata checks the byte-length bounds on token metadata. Name,
// symbol and URI over their limits are rejected; social links are expected to
// be pre-truncated with TruncateUTF8 and are rejected only if still too long.
func ValidateMetadata(name, symbol, uri, twitter, telegram, website string) error {
	if name == "" || symbol == "" {
		return shared.ErrInvalidConfig
	}
	if len(name) > shared.MaxNameLen || len(symbol) > shared.MaxSymbolLen || len(uri) > shared.MaxURILen {
		return shared.ErrInvalidConfig
	}
	if len(twitter) > shared.MaxSocialLen || len(telegram) > shared.MaxSocialLen || len(website) > shared.MaxSocialLen {
		return shared.ErrInvalidConfig
	}
	return nil
}

// TruncateUTF8 cuts s down to at most maxBytes without splitting a rune.
func TruncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ValidateSwapAmount rejects zero and sub-minimum trade sizes up front so a
// doomed transaction is never built.
func ValidateSwapAmount(amount uint64) error {
	if amount == 0 {
		return shared.ErrInvalidAmount
	}
	if amount < shared.MinTradeAmount {
		return shared.ErrTradeTooSmall
	}
	return nil
}

// ValidateBalance confirms the owner can fund amountIn before building the
// transaction. For SOL a small headroom is added on top for fees and rent.
func ValidateBalance(ctx context.Context, client *rpc.Client, owner, inputMint, inputTokenAccount solanago.PublicKey, amountIn uint64) error {
	if inputMint.Equals(WrappedSolMint) {
		bal, err := client.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
		if err != nil {
			return err
		}
		required := new(big.Int).Add(new(big.Int).SetUint64(amountIn), big.NewInt(10_000_000))
		if new(big.Int).SetUint64(bal.Value).Cmp(required) < 0 {
			return shared.ErrInsufficientLiquidity
		}
		return nil
	}
	res, err := client.GetTokenAccountBalance(ctx, inputTokenAccount, rpc.CommitmentConfirmed)
	if err != nil {
		return err
	}
	bal := new(big.Int)
	bal.SetString(res.Value.Amount, 10)
	if bal.Cmp(new(big.Int).SetUint64(amountIn)) < 0 {
		return shared.ErrInsufficientLiquidity
	}
	return nil
}
