// Package orbit builds the Orbit Finance DLMM instructions a graduation
// needs: pool and vault creation, bin arrays, and the one-shot liquidity
// seed. The position owner is a program authority with no withdraw path, so
// seeded liquidity is permanently locked.
package orbit

import (
	"bytes"
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID is the Orbit Finance DLMM program.
var ProgramID = solanago.MustPublicKeyFromBase58("Fn3fA3fjsmpULNL7E9U79jKTe1KHxPtQeWdURCbJXCnM")

var seed = struct {
	Pool        []byte
	Registry    []byte
	Vault       []byte
	Position    []byte
	PositionBin []byte
	BinArray    []byte
}{
	Pool:        []byte("pool"),
	Registry:    []byte("registry"),
	Vault:       []byte("vault"),
	Position:    []byte("position"),
	PositionBin: []byte("position_bin"),
	BinArray:    []byte("bin_array"),
}

// VaultKind selects one of a pool's token vaults.
type VaultKind string

const (
	VaultBase        VaultKind = "base"
	VaultQuote       VaultKind = "quote"
	VaultCreatorFee  VaultKind = "creator_fee"
	VaultHoldersFee  VaultKind = "holders_fee"
	VaultNftFee      VaultKind = "nft_fee"
	VaultProtocolFee VaultKind = "protocol_fee"
)

// CanonicalPair orders two mints with the smaller pubkey first, the ordering
// pool and registry PDAs are derived under.
func CanonicalPair(a, b solanago.PublicKey) (solanago.PublicKey, solanago.PublicKey) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b
	}
	return b, a
}

// IsCanonicalOrder reports whether base sorts before quote.
func IsCanonicalOrder(base, quote solanago.PublicKey) bool {
	return bytes.Compare(base.Bytes(), quote.Bytes()) < 0
}

// DerivePoolAddress derives the pool PDA for a mint pair in either order.
func DerivePoolAddress(baseMint, quoteMint solanago.PublicKey) solanago.PublicKey {
	a, b := CanonicalPair(baseMint, quoteMint)
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Pool, a.Bytes(), b.Bytes()}, ProgramID)
	return pub
}

// DeriveRegistryAddress derives the registry PDA for a mint pair.
func DeriveRegistryAddress(baseMint, quoteMint solanago.PublicKey) solanago.PublicKey {
	a, b := CanonicalPair(baseMint, quoteMint)
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Registry, a.Bytes(), b.Bytes()}, ProgramID)
	return pub
}

// DeriveVaultAddress derives one of the pool's vault PDAs by kind.
func DeriveVaultAddress(pool solanago.PublicKey, kind VaultKind) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Vault, pool.Bytes(), []byte(kind)}, ProgramID)
	return pub
}

// DerivePositionAddress derives a position PDA. The owner is part of the
// seeds, so ownership cannot be reassigned after creation.
func DerivePositionAddress(pool, owner solanago.PublicKey, nonce uint64) solanago.PublicKey {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Position, pool.Bytes(), owner.Bytes(), nonceBytes[:]}, ProgramID)
	return pub
}

// DerivePositionBinAddress derives the per-bin share record of a position.
func DerivePositionBinAddress(position solanago.PublicKey, binIndex int32) solanago.PublicKey {
	var binBytes [4]byte
	binary.LittleEndian.PutUint32(binBytes[:], uint32(binIndex))
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.PositionBin, position.Bytes(), binBytes[:]}, ProgramID)
	return pub
}

// DeriveBinArrayAddress derives the bin array PDA covering lowerBinIndex.
func DeriveBinArrayAddress(pool solanago.PublicKey, lowerBinIndex int32) solanago.PublicKey {
	var idxBytes [4]byte
	binary.LittleEndian.PutUint32(idxBytes[:], uint32(lowerBinIndex))
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.BinArray, pool.Bytes(), idxBytes[:]}, ProgramID)
	return pub
}
