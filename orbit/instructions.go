package orbit

import (
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Anchor instruction discriminators, verified against the Orbit IDL.
var (
	initPoolDiscriminator       = []byte{116, 233, 199, 204, 115, 159, 171, 36}
	initPoolVaultsDiscriminator = []byte{209, 118, 61, 154, 158, 189, 162, 244}
	createBinArrayDiscriminator = []byte{107, 26, 23, 62, 137, 213, 131, 235}
	initPositionDiscriminator   = []byte{197, 20, 10, 1, 97, 160, 177, 91}
	addLiquidityDiscriminator   = []byte{126, 118, 210, 37, 80, 190, 19, 105}
)

// Position-bin share accounting, the only mode graduation pools use.
const accountingModePositionBin = 1

// InitPoolParams are the pool creation arguments. PriceQ64 is the initial
// price in Q64.64 fixed point; fee fields are basis points.
type InitPoolParams struct {
	PriceQ64      [16]byte
	BinStepBps    uint16
	BaseFeeBps    uint16
	CreatorFeeBps uint16
}

// NewInitPoolInstruction creates the pool and registry accounts for a
// canonical mint pair.
func NewInitPoolInstruction(payer, pool, registry, baseMint, quoteMint solanago.PublicKey, params InitPoolParams) solanago.Instruction {
	data := make([]byte, 0, 8+16+2+2+2+1)
	data = append(data, initPoolDiscriminator...)
	data = append(data, params.PriceQ64[:]...)
	data = binary.LittleEndian.AppendUint16(data, params.BinStepBps)
	data = binary.LittleEndian.AppendUint16(data, params.BaseFeeBps)
	data = binary.LittleEndian.AppendUint16(data, params.CreatorFeeBps)
	data = append(data, accountingModePositionBin)

	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.Meta(payer).WRITE().SIGNER(),
		solanago.Meta(pool).WRITE(),
		solanago.Meta(registry).WRITE(),
		solanago.Meta(baseMint),
		solanago.Meta(quoteMint),
		solanago.Meta(system.ProgramID),
	}, data)
}

// NewInitPoolVaultsInstruction creates the six pool vaults.
func NewInitPoolVaultsInstruction(payer, pool, baseMint, quoteMint solanago.PublicKey) solanago.Instruction {
	data := make([]byte, 0, 8)
	data = append(data, initPoolVaultsDiscriminator...)

	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.Meta(payer).WRITE().SIGNER(),
		solanago.Meta(pool).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultBase)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultQuote)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultCreatorFee)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultHoldersFee)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultNftFee)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultProtocolFee)).WRITE(),
		solanago.Meta(baseMint),
		solanago.Meta(quoteMint),
		solanago.Meta(token.ProgramID),
		solanago.Meta(system.ProgramID),
	}, data)
}

// NewCreateBinArrayInstruction allocates the bin array starting at
// lowerBinIndex, which must be aligned to the array size.
func NewCreateBinArrayInstruction(payer, pool solanago.PublicKey, lowerBinIndex int32) solanago.Instruction {
	data := make([]byte, 0, 8+4)
	data = append(data, createBinArrayDiscriminator...)
	data = binary.LittleEndian.AppendUint32(data, uint32(lowerBinIndex))

	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.Meta(payer).WRITE().SIGNER(),
		solanago.Meta(pool).WRITE(),
		solanago.Meta(DeriveBinArrayAddress(pool, lowerBinIndex)).WRITE(),
		solanago.Meta(system.ProgramID),
	}, data)
}

// NewInitPositionInstruction opens a position owned by owner under nonce.
func NewInitPositionInstruction(owner, pool solanago.PublicKey, nonce uint64) solanago.Instruction {
	data := make([]byte, 0, 8+8)
	data = append(data, initPositionDiscriminator...)
	data = binary.LittleEndian.AppendUint64(data, nonce)

	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.Meta(owner).WRITE().SIGNER(),
		solanago.Meta(pool).WRITE(),
		solanago.Meta(DerivePositionAddress(pool, owner, nonce)).WRITE(),
		solanago.Meta(system.ProgramID),
	}, data)
}

// NewAddLiquidityInstruction deposits into the given bins. binIDs and
// distribution run in parallel; the bin arrays covering every bin go in as
// trailing accounts.
func NewAddLiquidityInstruction(pool, owner, ownerBase, ownerQuote, position solanago.PublicKey, binArrays []solanago.PublicKey, binIDs []int32, distribution []uint64) solanago.Instruction {
	data := make([]byte, 0, 8+4+len(binIDs)*4+4+len(distribution)*8)
	data = append(data, addLiquidityDiscriminator...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(binIDs)))
	for _, id := range binIDs {
		data = binary.LittleEndian.AppendUint32(data, uint32(id))
	}
	data = binary.LittleEndian.AppendUint32(data, uint32(len(distribution)))
	for _, share := range distribution {
		data = binary.LittleEndian.AppendUint64(data, share)
	}

	accounts := solanago.AccountMetaSlice{
		solanago.Meta(pool).WRITE(),
		solanago.Meta(owner).WRITE().SIGNER(),
		solanago.Meta(ownerBase).WRITE(),
		solanago.Meta(ownerQuote).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultBase)).WRITE(),
		solanago.Meta(DeriveVaultAddress(pool, VaultQuote)).WRITE(),
		solanago.Meta(position).WRITE(),
		solanago.Meta(token.ProgramID),
	}
	for _, binArray := range binArrays {
		accounts = append(accounts, solanago.Meta(binArray).WRITE())
	}

	return solanago.NewInstruction(ProgramID, accounts, data)
}

// BinArraysFor returns the distinct, aligned bin array lower bounds covering
// every bin in binIDs, in first-seen order.
func BinArraysFor(pool solanago.PublicKey, binIDs []int32, arraySize int32) ([]int32, []solanago.PublicKey) {
	seen := make(map[int32]bool)
	var bounds []int32
	var addrs []solanago.PublicKey
	for _, id := range binIDs {
		lower := alignedLower(id, arraySize)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		bounds = append(bounds, lower)
		addrs = append(addrs, DeriveBinArrayAddress(pool, lower))
	}
	return bounds, addrs
}

func alignedLower(binIndex, arraySize int32) int32 {
	if binIndex < 0 {
		return ((binIndex - arraySize + 1) / arraySize) * arraySize
	}
	return (binIndex / arraySize) * arraySize
}
