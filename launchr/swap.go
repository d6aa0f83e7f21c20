package launchr

import (
	"bytes"
	"context"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/launchr-fi/launchr-go/bondingcurve"
	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	"github.com/launchr-fi/launchr-go/bondingcurve/math"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
	solanago "github.com/launchr-fi/launchr-go/solana"
)

// BuyParams is the borsh argument block of buy.
type BuyParams struct {
	QuoteAmount  uint64
	MinTokensOut uint64
}

// SellParams is the borsh argument block of sell.
type SellParams struct {
	TokenAmount uint64
	MinQuoteOut uint64
}

// BuyInstruction builds the instructions for buying tokens with quoteAmount
// lamports, creating the buyer's token account when missing.
func BuyInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	buyer solana.PublicKey,
	mint solana.PublicKey,
	creator solana.PublicKey,
	quoteAmount uint64,
	minTokensOut uint64,
) ([]solana.Instruction, error) {
	if err := helpers.ValidateSwapAmount(quoteAmount); err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	buyerTokenAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, buyer, mint, buyer, &instructions)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.Write(buyDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(BuyParams{
		QuoteAmount:  quoteAmount,
		MinTokensOut: minTokensOut,
	}); err != nil {
		return nil, err
	}

	config := helpers.DeriveConfigAddress()
	launch := helpers.DeriveLaunchAddress(mint)

	buyIx := solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(buyer).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(launch).WRITE(),
		solana.Meta(helpers.DeriveLaunchAuthority(launch)),
		solana.Meta(helpers.DeriveTokenVaultAddress(launch)).WRITE(),
		solana.Meta(helpers.DeriveCurveVaultAddress(launch)).WRITE(),
		solana.Meta(buyerTokenAccount).WRITE(),
		solana.Meta(mint).WRITE(),
		solana.Meta(helpers.DeriveUserPositionAddress(launch, buyer)).WRITE(),
		solana.Meta(helpers.DeriveFeeVaultAddress(config)).WRITE(),
		solana.Meta(creator).WRITE(),
		solana.Meta(token.ProgramID),
		solana.Meta(associatedtokenaccount.ProgramID),
		solana.Meta(system.ProgramID),
	}, buf.Bytes())

	return append(instructions, buyIx), nil
}

// SellInstruction builds the instructions for selling tokenAmount tokens back
// to the curve.
func SellInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	seller solana.PublicKey,
	mint solana.PublicKey,
	creator solana.PublicKey,
	tokenAmount uint64,
	minQuoteOut uint64,
) ([]solana.Instruction, error) {
	if tokenAmount == 0 {
		return nil, shared.ErrInvalidAmount
	}

	sellerTokenAccount, _, err := solana.FindAssociatedTokenAddress(seller, mint)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.Write(sellDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(SellParams{
		TokenAmount: tokenAmount,
		MinQuoteOut: minQuoteOut,
	}); err != nil {
		return nil, err
	}

	config := helpers.DeriveConfigAddress()
	launch := helpers.DeriveLaunchAddress(mint)

	sellIx := solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(seller).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(launch).WRITE(),
		solana.Meta(helpers.DeriveLaunchAuthority(launch)),
		solana.Meta(helpers.DeriveTokenVaultAddress(launch)).WRITE(),
		solana.Meta(helpers.DeriveCurveVaultAddress(launch)).WRITE(),
		solana.Meta(sellerTokenAccount).WRITE(),
		solana.Meta(mint).WRITE(),
		solana.Meta(helpers.DeriveUserPositionAddress(launch, seller)).WRITE(),
		solana.Meta(helpers.DeriveFeeVaultAddress(config)).WRITE(),
		solana.Meta(creator).WRITE(),
		solana.Meta(token.ProgramID),
		solana.Meta(system.ProgramID),
	}, buf.Bytes())

	return []solana.Instruction{sellIx}, nil
}

// Buy purchases tokens on the curve. minTokensOut of zero applies slippageBps
// against a fresh on-chain quote instead.
func (m *Launchr) Buy(ctx context.Context, buyer *solana.Wallet, mint solana.PublicKey, quoteAmount, minTokensOut uint64, slippageBps uint16) (string, error) {
	launchState, err := m.GetLaunch(ctx, mint)
	if err != nil {
		return "", err
	}
	if launchState.Status != uint8(bondingcurve.StatusActive) {
		return "", shared.ErrLaunchNotActive
	}

	configState, err := m.GetConfig(ctx)
	if err != nil {
		return "", err
	}
	if configState.TradingPaused {
		return "", shared.ErrTradingPaused
	}

	if minTokensOut == 0 {
		quote, err := math.CalculateBuy(quoteAmount, launchState.Reserves(), configState.ProtocolFeeBps, launchState.CreatorFeeBps)
		if err != nil {
			return "", err
		}
		minTokensOut = applySlippage(quote.AmountOut, slippageBps)
	}

	instructions, err := BuyInstruction(ctx, m.rpcClient, buyer.PublicKey(), mint, launchState.Creator, quoteAmount, minTokensOut)
	if err != nil {
		return "", err
	}

	sig, err := m.send(ctx, instructions, buyer.PublicKey(), buyer)
	if err != nil {
		return "", err
	}

	m.logger.Info("buy submitted",
		zap.String("mint", mint.String()),
		zap.String("amount_sol", helpers.ConvertToDisplay(quoteAmount, 9)),
		zap.Uint64("min_tokens_out", minTokensOut),
		zap.String("signature", sig))
	return sig, nil
}

// Sell sells tokens back to the curve with the same slippage handling as Buy.
func (m *Launchr) Sell(ctx context.Context, seller *solana.Wallet, mint solana.PublicKey, tokenAmount, minQuoteOut uint64, slippageBps uint16) (string, error) {
	launchState, err := m.GetLaunch(ctx, mint)
	if err != nil {
		return "", err
	}
	if launchState.Status != uint8(bondingcurve.StatusActive) {
		return "", shared.ErrLaunchNotActive
	}

	configState, err := m.GetConfig(ctx)
	if err != nil {
		return "", err
	}
	if configState.TradingPaused {
		return "", shared.ErrTradingPaused
	}

	sellerATA, _, err := solana.FindAssociatedTokenAddress(seller.PublicKey(), mint)
	if err != nil {
		return "", err
	}
	tokenAccount, err := solanago.GetTokenAccount(ctx, m.rpcClient, sellerATA)
	if err != nil {
		return "", err
	}
	if tokenAccount.Amount < tokenAmount {
		return "", shared.ErrInsufficientLiquidity
	}

	if minQuoteOut == 0 {
		quote, err := math.CalculateSell(tokenAmount, launchState.Reserves(), configState.ProtocolFeeBps, launchState.CreatorFeeBps)
		if err != nil {
			return "", err
		}
		minQuoteOut = applySlippage(quote.AmountOut, slippageBps)
	}

	instructions, err := SellInstruction(ctx, m.rpcClient, seller.PublicKey(), mint, launchState.Creator, tokenAmount, minQuoteOut)
	if err != nil {
		return "", err
	}

	sig, err := m.send(ctx, instructions, seller.PublicKey(), seller)
	if err != nil {
		return "", err
	}

	m.logger.Info("sell submitted",
		zap.String("mint", mint.String()),
		zap.Uint64("token_amount", tokenAmount),
		zap.Uint64("min_sol_out", minQuoteOut),
		zap.String("signature", sig))
	return sig, nil
}

func applySlippage(amount uint64, slippageBps uint16) uint64 {
	if slippageBps >= shared.MaxBasisPoint {
		return 0
	}
	out, err := math.MulDiv(amount, uint64(shared.MaxBasisPoint-slippageBps), shared.MaxBasisPoint)
	if err != nil {
		return 0
	}
	return out
}
