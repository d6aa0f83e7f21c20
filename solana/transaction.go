package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// SendInstructions assembles, signs, sends and confirms a transaction. With
// a nil ws client, confirmation falls back to polling signature statuses.
// In simulate mode nothing is broadcast and a zero signature is returned.
func SendInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	sign func(key solana.PublicKey) *solana.PrivateKey,
) (solana.Signature, error) {

	latestBlockhash, err := GetLatestBlockhash(ctx, rpcClient)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err = tx.Sign(sign); err != nil {
		return solana.Signature{}, err
	}

	if IsSimulate {
		out, err := rpcClient.SimulateTransaction(ctx, tx)
		if err != nil {
			return solana.Signature{}, err
		}
		if out.Value.Err != nil {
			return solana.Signature{}, fmt.Errorf("simulation failed: %v", out.Value.Err)
		}
		return solana.Signature{}, nil
	}

	sig, err := rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return solana.Signature{}, err
	}

	if wsClient != nil {
		confirmed, err := sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, nil)
		if confirmed {
			if err != nil {
				return solana.Signature{}, fmt.Errorf("transaction confirmed but failed: %w", err)
			}
			return sig, nil
		}
	}

	statusResp, err := rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("rpc GetSignatureStatuses error: %w", err)
	}
	status := statusResp.Value[0]
	if status == nil {
		return solana.Signature{}, fmt.Errorf("transaction not found (maybe dropped)")
	}
	if status.Err != nil {
		return solana.Signature{}, fmt.Errorf("transaction confirmed but failed: %v", status.Err)
	}
	return sig, nil
}
