package shared

import (
	bin "github.com/gagliardetto/binary"
)

// Uint128 is the little-endian 128-bit integer used for volume counters and
// Q64.64 prices in account data.
type Uint128 = bin.Uint128
