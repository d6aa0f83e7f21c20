package launchr

import (
	"bytes"
	"context"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"

	"github.com/launchr-fi/launchr-go/bondingcurve/helpers"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// InitConfigParams is the borsh argument block of init_config.
type InitConfigParams struct {
	FeeAuthority        solana.PublicKey
	ProtocolFeeBps      uint16
	GraduationThreshold uint64
	OrbitProgramID      solana.PublicKey
	DefaultBinStepBps   uint16
	DefaultBaseFeeBps   uint16
}

// UpdateConfigParams is the borsh argument block of update_config. Nil fields
// leave the current value in place.
type UpdateConfigParams struct {
	NewFeeAuthority        *solana.PublicKey `bin:"optional"`
	NewProtocolFeeBps      *uint16           `bin:"optional"`
	NewGraduationThreshold *uint64           `bin:"optional"`
	LaunchesPaused         *bool             `bin:"optional"`
	TradingPaused          *bool             `bin:"optional"`
}

// InitConfigInstruction builds the one-time init_config instruction.
func InitConfigInstruction(admin, quoteMint solana.PublicKey, params InitConfigParams) (solana.Instruction, error) {
	if params.ProtocolFeeBps > shared.MaxProtocolFeeBps {
		return nil, shared.ErrInvalidConfig
	}
	if params.GraduationThreshold == 0 {
		return nil, shared.ErrInvalidConfig
	}
	if params.DefaultBinStepBps < shared.MinBinStepBps || params.DefaultBinStepBps > shared.MaxBinStepBps {
		return nil, shared.ErrInvalidConfig
	}

	buf := new(bytes.Buffer)
	buf.Write(initConfigDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(params); err != nil {
		return nil, err
	}

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(admin).WRITE().SIGNER(),
		solana.Meta(helpers.DeriveConfigAddress()).WRITE(),
		solana.Meta(quoteMint),
		solana.Meta(system.ProgramID),
	}, buf.Bytes()), nil
}

// UpdateConfigInstruction builds update_config.
func UpdateConfigInstruction(admin solana.PublicKey, params UpdateConfigParams) (solana.Instruction, error) {
	if params.NewProtocolFeeBps != nil && *params.NewProtocolFeeBps > shared.MaxProtocolFeeBps {
		return nil, shared.ErrInvalidConfig
	}
	if params.NewGraduationThreshold != nil && *params.NewGraduationThreshold == 0 {
		return nil, shared.ErrInvalidConfig
	}

	buf := new(bytes.Buffer)
	buf.Write(updateConfigDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(params); err != nil {
		return nil, err
	}

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(admin).SIGNER(),
		solana.Meta(helpers.DeriveConfigAddress()).WRITE(),
	}, buf.Bytes()), nil
}

// TransferAdminInstruction builds transfer_admin.
func TransferAdminInstruction(admin, newAdmin solana.PublicKey) solana.Instruction {
	data := make([]byte, 0, 8)
	data = append(data, transferAdminDiscriminator...)

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(admin).SIGNER(),
		solana.Meta(newAdmin),
		solana.Meta(helpers.DeriveConfigAddress()).WRITE(),
	}, data)
}

// InitConfig initializes the protocol config. Callable once, by the deployer.
func (m *Launchr) InitConfig(ctx context.Context, admin *solana.Wallet, quoteMint solana.PublicKey, params InitConfigParams) (string, error) {
	ix, err := InitConfigInstruction(admin.PublicKey(), quoteMint, params)
	if err != nil {
		return "", err
	}
	sig, err := m.send(ctx, []solana.Instruction{ix}, admin.PublicKey(), admin)
	if err != nil {
		return "", err
	}
	m.logger.Info("config initialized",
		zap.String("admin", admin.PublicKey().String()),
		zap.String("threshold_sol", helpers.ConvertToDisplay(params.GraduationThreshold, 9)),
		zap.String("signature", sig))
	return sig, nil
}

// UpdateConfig applies parameter changes under the admin key.
func (m *Launchr) UpdateConfig(ctx context.Context, admin *solana.Wallet, params UpdateConfigParams) (string, error) {
	ix, err := UpdateConfigInstruction(admin.PublicKey(), params)
	if err != nil {
		return "", err
	}
	sig, err := m.send(ctx, []solana.Instruction{ix}, admin.PublicKey(), admin)
	if err != nil {
		return "", err
	}
	m.logger.Info("config updated", zap.String("signature", sig))
	return sig, nil
}

// TransferAdmin hands the admin role to newAdmin.
func (m *Launchr) TransferAdmin(ctx context.Context, admin *solana.Wallet, newAdmin solana.PublicKey) (string, error) {
	ix := TransferAdminInstruction(admin.PublicKey(), newAdmin)
	sig, err := m.send(ctx, []solana.Instruction{ix}, admin.PublicKey(), admin)
	if err != nil {
		return "", err
	}
	m.logger.Info("admin transferred",
		zap.String("new_admin", newAdmin.String()),
		zap.String("signature", sig))
	return sig, nil
}
