package helpers

import (
	solanago "github.com/gagliardetto/solana-go"
)

var (
	LaunchrProgramID = solanago.MustPublicKeyFromBase58("AD9VheLMqVPwbDQc5CmSHmCZdfa8CGmr2xXmhhNSTyhK")
	OrbitProgramID   = solanago.MustPublicKeyFromBase58("Fn3fA3fjsmpULNL7E9U79jKTe1KHxPtQeWdURCbJXCnM")
	WrappedSolMint   = solanago.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)
