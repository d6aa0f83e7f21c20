package launchr

import (
	"context"

	"github.com/gagliardetto/solana-go"

	solanago "github.com/launchr-fi/launchr-go/solana"
)

func (m *Launchr) send(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers ...*solana.Wallet) (string, error) {
	sig, err := solanago.SendInstructions(ctx, m.rpcClient, m.wsClient, instructions, payer,
		func(key solana.PublicKey) *solana.PrivateKey {
			for _, w := range signers {
				if key.Equals(w.PublicKey()) {
					return &w.PrivateKey
				}
			}
			return nil
		})
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}
