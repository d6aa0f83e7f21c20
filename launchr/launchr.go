// Package launchr is the client for the Launchr program: it builds and sends
// the create, buy, sell, and graduate transactions and reads program state.
package launchr

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"

	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
)

// ProgramID is the deployed Launchr program.
var ProgramID = helpers.LaunchrProgramID

// Anchor instruction discriminators for the Launchr program.
var (
	initConfigDiscriminator    = helpers.InstructionDiscriminator("init_config")
	updateConfigDiscriminator  = helpers.InstructionDiscriminator("update_config")
	transferAdminDiscriminator = helpers.InstructionDiscriminator("transfer_admin")
	createLaunchDiscriminator  = helpers.InstructionDiscriminator("create_launch")
	buyDiscriminator           = helpers.InstructionDiscriminator("buy")
	sellDiscriminator          = helpers.InstructionDiscriminator("sell")
	graduateDiscriminator      = helpers.InstructionDiscriminator("graduate")
)

// Launchr wraps an RPC connection and the signing wallets.
type Launchr struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
	payer     *solana.Wallet
	logger    *zap.Logger

	configAddress solana.PublicKey
}

// New builds a Launchr client. The wsClient may be nil when only building
// instructions; sending then falls back to polling signatures.
func New(rpcClient *rpc.Client, wsClient *ws.Client, payer *solana.Wallet, logger *zap.Logger) *Launchr {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Launchr{
		rpcClient: rpcClient,
		wsClient:  wsClient,
		payer:     payer,
		logger:    logger,

		configAddress: helpers.DeriveConfigAddress(),
	}
}

// ConfigAddress is the global config PDA this client targets.
func (m *Launchr) ConfigAddress() solana.PublicKey {
	return m.configAddress
}
