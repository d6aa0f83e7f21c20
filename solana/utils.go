package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
)

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentFinalized})
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: rpc.CommitmentFinalized, Encoding: solana.EncodingBase64})
}

// PrepareTokenATA checks if the ATA exists, appending a create instruction
// when it does not.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	tokenATA, _, err := solana.FindAssociatedTokenAddress(
		owner,
		tokenMint,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}

	exists, err := GetAccountInfo(ctx, rpcClient, tokenATA)
	if err != nil && err != rpc.ErrNotFound {
		return solana.PublicKey{}, err
	}

	if exists == nil {
		ix := associatedtokenaccount.NewCreateInstruction(
			payer, owner, tokenMint,
		).Build()
		*instructions = append(*instructions, ix)
	}
	return tokenATA, nil
}

// GetTokenAccount fetches and decodes an SPL token account.
func GetTokenAccount(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey) (*TokenAccount, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address)
	if err != nil {
		return nil, err
	}
	account, err := DecodeTokenAccount(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	account.Address = address
	return account, nil
}

// GetMint fetches and decodes an SPL mint.
func GetMint(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey) (*Mint, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address)
	if err != nil {
		return nil, err
	}
	mint, err := DecodeMint(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	mint.ProgramOwner = out.Value.Owner
	return mint, nil
}
