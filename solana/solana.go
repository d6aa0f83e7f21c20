// Package solana holds the chain plumbing shared by the client packages:
// account fetch and decode helpers, ATA preparation, and transaction
// submission with confirmation.
package solana

// IsSimulate switches SendInstructions to simulateTransaction, leaving the
// chain untouched. Used by integration tests against a forked validator.
var IsSimulate bool
