package launchr

import (
	"bytes"
	"context"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/launchr-fi/launchr-go/bondingcurve"
	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
	"github.com/launchr-fi/launchr-go/orbit"
)

// GraduateParams is the borsh argument block of graduate. Nil fields fall
// back to the config defaults on chain.
type GraduateParams struct {
	BinStepBps       *uint16 `bin:"optional"`
	NumLiquidityBins *uint8  `bin:"optional"`
}

// The migration creates a single program-owned position.
const graduationPositionNonce = 0

// GraduateInstruction builds the graduate instruction, which moves the curve
// liquidity into a fresh Orbit pool via CPI. Anyone may be the payer once the
// threshold is met.
func GraduateInstruction(
	payer solana.PublicKey,
	launchState *LaunchAccount,
	configState *ConfigAccount,
	params GraduateParams,
) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(graduateDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(params); err != nil {
		return nil, err
	}

	mint := launchState.Mint
	quoteMint := configState.QuoteMint
	config := helpers.DeriveConfigAddress()
	launch := helpers.DeriveLaunchAddress(mint)
	launchAuthority := helpers.DeriveLaunchAuthority(launch)

	binStepBps := configState.DefaultBinStepBps
	if params.BinStepBps != nil {
		binStepBps = *params.BinStepBps
	}
	binsPerSide := uint8(shared.DefaultBinsPerSide)
	if params.NumLiquidityBins != nil {
		binsPerSide = *params.NumLiquidityBins
	}

	plan, err := launchState.ToLaunch().BuildGraduationPlan(quoteMint, binStepBps, binsPerSide)
	if err != nil {
		return nil, err
	}

	pool := orbit.DerivePoolAddress(mint, quoteMint)

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(launch).WRITE(),
		solana.Meta(launchAuthority),
		solana.Meta(launchState.Creator).WRITE(),
		solana.Meta(configState.FeeAuthority).WRITE(),
		solana.Meta(mint).WRITE(),
		solana.Meta(quoteMint),
		solana.Meta(helpers.DeriveTokenVaultAddress(launch)).WRITE(),
		solana.Meta(helpers.DeriveGraduationVaultAddress(launch)).WRITE(),
		solana.Meta(helpers.DeriveCurveVaultAddress(launch)).WRITE(),
		solana.Meta(configState.OrbitProgramID),
		solana.Meta(pool).WRITE(),
		solana.Meta(orbit.DeriveRegistryAddress(mint, quoteMint)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultBase)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultQuote)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultCreatorFee)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultHoldersFee)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultNftFee)).WRITE(),
		solana.Meta(orbit.DeriveVaultAddress(pool, orbit.VaultProtocolFee)).WRITE(),
		solana.Meta(orbit.DeriveBinArrayAddress(pool, plan.BinArrayLowerBound)).WRITE(),
		solana.Meta(orbit.DerivePositionAddress(pool, launchAuthority, graduationPositionNonce)).WRITE(),
		solana.Meta(token.ProgramID),
		solana.Meta(system.ProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}, buf.Bytes()), nil
}

// Graduate migrates a threshold-crossed launch to its Orbit pool.
func (m *Launchr) Graduate(ctx context.Context, payer *solana.Wallet, mint solana.PublicKey, params GraduateParams) (string, error) {
	launchState, err := m.GetLaunch(ctx, mint)
	if err != nil {
		return "", err
	}
	configState, err := m.GetConfig(ctx)
	if err != nil {
		return "", err
	}

	status := bondingcurve.LaunchStatus(launchState.Status)
	if status != bondingcurve.StatusActive && status != bondingcurve.StatusPendingGraduation {
		return "", shared.ErrAlreadyGraduated
	}
	if launchState.RealQuoteReserve < launchState.GraduationThreshold {
		return "", shared.ErrThresholdNotReached
	}

	ix, err := GraduateInstruction(payer.PublicKey(), launchState, configState, params)
	if err != nil {
		return "", err
	}

	sig, err := m.send(ctx, []solana.Instruction{ix}, payer.PublicKey(), payer)
	if err != nil {
		return "", err
	}

	m.logger.Info("graduation submitted",
		zap.String("mint", mint.String()),
		zap.String("pool", orbit.DerivePoolAddress(mint, configState.QuoteMint).String()),
		zap.String("curve_sol", helpers.ConvertToDisplay(launchState.RealQuoteReserve, 9)),
		zap.String("signature", sig))
	return sig, nil
}
