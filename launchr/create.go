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
)

// CreateLaunchParams is the borsh-encoded argument block of create_launch.
// The creator fee field is kept for wire compatibility; the program ignores
// it and applies the fixed fee.
type CreateLaunchParams struct {
	Name     string
	Symbol   string
	URI      string
	Twitter  *string `bin:"optional"`
	Telegram *string `bin:"optional"`
	Website  *string `bin:"optional"`

	CreatorFeeBps uint16
}

// CreateLaunchInstruction builds the create_launch instruction. The mint is a
// fresh keypair and must co-sign the transaction.
func CreateLaunchInstruction(creator, mint solana.PublicKey, meta bondingcurve.LaunchMetadata) (solana.Instruction, error) {
	if err := helpers.ValidateMetadata(
		meta.Name, meta.Symbol, meta.URI,
		helpers.TruncateUTF8(meta.Twitter, shared.MaxSocialLen),
		helpers.TruncateUTF8(meta.Telegram, shared.MaxSocialLen),
		helpers.TruncateUTF8(meta.Website, shared.MaxSocialLen),
	); err != nil {
		return nil, err
	}

	params := CreateLaunchParams{
		Name:     meta.Name,
		Symbol:   meta.Symbol,
		URI:      meta.URI,
		Twitter:  optionalString(helpers.TruncateUTF8(meta.Twitter, shared.MaxSocialLen)),
		Telegram: optionalString(helpers.TruncateUTF8(meta.Telegram, shared.MaxSocialLen)),
		Website:  optionalString(helpers.TruncateUTF8(meta.Website, shared.MaxSocialLen)),

		CreatorFeeBps: shared.CreatorFeeBps,
	}

	buf := new(bytes.Buffer)
	buf.Write(createLaunchDiscriminator)
	if err := binary.NewBorshEncoder(buf).Encode(params); err != nil {
		return nil, err
	}

	launch := helpers.DeriveLaunchAddress(mint)

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(creator).WRITE().SIGNER(),
		solana.Meta(helpers.DeriveConfigAddress()).WRITE(),
		solana.Meta(mint).WRITE().SIGNER(),
		solana.Meta(launch).WRITE(),
		solana.Meta(helpers.DeriveLaunchAuthority(launch)),
		solana.Meta(helpers.DeriveTokenVaultAddress(launch)).WRITE(),
		solana.Meta(helpers.DeriveGraduationVaultAddress(launch)).WRITE(),
		solana.Meta(token.ProgramID),
		solana.Meta(system.ProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}, buf.Bytes()), nil
}

// CreateLaunch mints a new token and opens its bonding curve launch. Returns
// the new mint and the transaction signature.
func (m *Launchr) CreateLaunch(ctx context.Context, creator *solana.Wallet, meta bondingcurve.LaunchMetadata) (solana.PublicKey, string, error) {
	configState, err := m.GetConfig(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	if configState.LaunchesPaused {
		return solana.PublicKey{}, "", shared.ErrLaunchesPaused
	}

	mint := solana.NewWallet()

	ix, err := CreateLaunchInstruction(creator.PublicKey(), mint.PublicKey(), meta)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	sig, err := m.send(ctx, []solana.Instruction{ix}, creator.PublicKey(), creator, mint)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	m.logger.Info("launch created",
		zap.String("mint", mint.PublicKey().String()),
		zap.String("creator", creator.PublicKey().String()),
		zap.String("symbol", meta.Symbol),
		zap.String("signature", sig))
	return mint.PublicKey(), sig, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
