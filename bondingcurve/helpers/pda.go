package helpers

import (
	solanago "github.com/gagliardetto/solana-go"
)

var seed = struct {
	Config          []byte
	Launch          []byte
	CurveVault      []byte
	TokenVault      []byte
	UserPosition    []byte
	LaunchAuthority []byte
	FeeVault        []byte
	GraduationVault []byte
}{
	Config:          []byte("launchr_config"),
	Launch:          []byte("launch"),
	CurveVault:      []byte("curve_vault"),
	TokenVault:      []byte("token_vault"),
	UserPosition:    []byte("user_position"),
	LaunchAuthority: []byte("launch_authority"),
	FeeVault:        []byte("fee_vault"),
	GraduationVault: []byte("graduation_vault"),
}

// DeriveConfigAddress derives the global config PDA.
func DeriveConfigAddress() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Config}, LaunchrProgramID)
	return pub
}

// DeriveLaunchAddress derives a launch PDA from its token mint.
func DeriveLaunchAddress(mint solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Launch, mint.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveCurveVaultAddress derives the lamport vault holding the curve's quote.
func DeriveCurveVaultAddress(launch solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.CurveVault, launch.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveTokenVaultAddress derives the token vault holding unsold supply.
func DeriveTokenVaultAddress(launch solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.TokenVault, launch.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveUserPositionAddress derives a trader's position record for a launch.
func DeriveUserPositionAddress(launch, user solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.UserPosition, launch.Bytes(), user.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveLaunchAuthority derives the signer PDA for token operations.
func DeriveLaunchAuthority(launch solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.LaunchAuthority, launch.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveFeeVaultAddress derives the protocol fee vault, keyed by config.
func DeriveFeeVaultAddress(config solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.FeeVault, config.Bytes()}, LaunchrProgramID)
	return pub
}

// DeriveGraduationVaultAddress derives the vault holding the 20% LP reserve.
func DeriveGraduationVaultAddress(launch solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.GraduationVault, launch.Bytes()}, LaunchrProgramID)
	return pub
}
