package launchr

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"

	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	solanago "github.com/launchr-fi/launchr-go/solana"
)

// GetTokenHoldings returns the owner's non-zero SPL balances keyed by mint.
func (m *Launchr) GetTokenHoldings(ctx context.Context, owner solana.PublicKey) (map[string]uint64, error) {
	resp, err := m.rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		ProgramId: &solana.TokenProgramID,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return nil, err
	}

	mintBalance := make(map[string]uint64)
	for _, v := range resp.Value {
		mint := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.mint").String()
		amount := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.tokenAmount.amount").Uint()
		if amount == 0 || mint == "" {
			continue
		}
		mintBalance[mint] = amount
	}
	return mintBalance, nil
}

// GetTokenBalance returns the owner's balance of a single mint.
func (m *Launchr) GetTokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	holdings, err := m.GetTokenHoldings(ctx, owner)
	if err != nil {
		return 0, err
	}
	return holdings[mint.String()], nil
}

// VaultBalances is a snapshot of a launch's two curve vaults.
type VaultBalances struct {
	QuoteLamports uint64
	BaseTokens    uint64
	ReserveTokens uint64
}

// GetVaultBalances reads the lamport and token vault balances of a launch in
// a single batched call, useful for reconciling on-chain holdings against the
// launch record.
func (m *Launchr) GetVaultBalances(ctx context.Context, mint solana.PublicKey) (*VaultBalances, error) {
	launch := helpers.DeriveLaunchAddress(mint)

	resp, err := solanago.GetMultipleAccountInfo(ctx, m.rpcClient, []solana.PublicKey{
		helpers.DeriveCurveVaultAddress(launch),
		helpers.DeriveTokenVaultAddress(launch),
		helpers.DeriveGraduationVaultAddress(launch),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Value) != 3 {
		return nil, fmt.Errorf("vault lookup for %s returned %d accounts", mint, len(resp.Value))
	}
	for i, acc := range resp.Value {
		if acc == nil {
			return nil, fmt.Errorf("vault %d for %s does not exist", i, mint)
		}
	}

	tokenVault, err := solanago.DecodeTokenAccount(resp.Value[1].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	graduationVault, err := solanago.DecodeTokenAccount(resp.Value[2].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	return &VaultBalances{
		QuoteLamports: resp.Value[0].Lamports,
		BaseTokens:    tokenVault.Amount,
		ReserveTokens: graduationVault.Amount,
	}, nil
}

// GetMintSupply reads the current supply of a launch token.
func (m *Launchr) GetMintSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	out, err := solanago.GetMint(ctx, m.rpcClient, mint)
	if err != nil {
		return 0, err
	}
	return out.Supply, nil
}
