package bondingcurve

import (
	"github.com/gagliardetto/solana-go"

	"github.com/launchr-fi/launchr-go/bondingcurve/math"
	"github.com/launchr-fi/launchr-go/bondingcurve/shared"
)

// Config is the protocol-wide settings and statistics record. It is
// initialized once; every later mutation is gated on the admin key.
type Config struct {
	Admin        solana.PublicKey
	FeeAuthority solana.PublicKey

	ProtocolFeeBps      uint16
	GraduationThreshold uint64

	QuoteMint      solana.PublicKey
	OrbitProgramID solana.PublicKey

	DefaultBinStepBps uint16
	DefaultBaseFeeBps uint16

	LaunchesPaused bool
	TradingPaused  bool

	TotalLaunches      uint64
	TotalGraduations   uint64
	TotalVolume        shared.Uint128
	TotalFeesCollected uint64

	initialized bool
}

// ConfigParams carries the initial protocol parameters.
type ConfigParams struct {
	FeeAuthority        solana.PublicKey
	ProtocolFeeBps      uint16
	GraduationThreshold uint64
	OrbitProgramID      solana.PublicKey
	DefaultBinStepBps   uint16
	DefaultBaseFeeBps   uint16
}

// ConfigUpdate carries optional parameter changes; nil fields are untouched.
type ConfigUpdate struct {
	FeeAuthority        *solana.PublicKey
	ProtocolFeeBps      *uint16
	GraduationThreshold *uint64
	LaunchesPaused      *bool
	TradingPaused       *bool
}

// Init sets the initial parameters. It fails on a second call and validates
// the fee, threshold, and bin step bounds before writing anything.
func (c *Config) Init(admin, quoteMint solana.PublicKey, params ConfigParams) error {
	if c.initialized {
		return shared.ErrInvalidConfig
	}
	if params.ProtocolFeeBps > shared.MaxProtocolFeeBps {
		return shared.ErrInvalidConfig
	}
	if params.GraduationThreshold == 0 {
		return shared.ErrInvalidConfig
	}
	if params.DefaultBinStepBps < shared.MinBinStepBps || params.DefaultBinStepBps > shared.MaxBinStepBps {
		return shared.ErrInvalidConfig
	}

	c.Admin = admin
	c.FeeAuthority = params.FeeAuthority
	c.ProtocolFeeBps = params.ProtocolFeeBps
	c.GraduationThreshold = params.GraduationThreshold
	c.QuoteMint = quoteMint
	c.OrbitProgramID = params.OrbitProgramID
	c.DefaultBinStepBps = params.DefaultBinStepBps
	c.DefaultBaseFeeBps = params.DefaultBaseFeeBps
	c.initialized = true
	return nil
}

// Update applies the non-nil fields of upd, validating each the same way Init
// does. Only the admin may call it.
func (c *Config) Update(caller solana.PublicKey, upd ConfigUpdate) error {
	if !caller.Equals(c.Admin) {
		return shared.ErrUnauthorized
	}
	if upd.ProtocolFeeBps != nil && *upd.ProtocolFeeBps > shared.MaxProtocolFeeBps {
		return shared.ErrInvalidConfig
	}
	if upd.GraduationThreshold != nil && *upd.GraduationThreshold == 0 {
		return shared.ErrInvalidConfig
	}

	if upd.FeeAuthority != nil {
		c.FeeAuthority = *upd.FeeAuthority
	}
	if upd.ProtocolFeeBps != nil {
		c.ProtocolFeeBps = *upd.ProtocolFeeBps
	}
	if upd.GraduationThreshold != nil {
		c.GraduationThreshold = *upd.GraduationThreshold
	}
	if upd.LaunchesPaused != nil {
		c.LaunchesPaused = *upd.LaunchesPaused
	}
	if upd.TradingPaused != nil {
		c.TradingPaused = *upd.TradingPaused
	}
	return nil
}

// EnsureLaunchesOpen reports whether new launches may be created.
func (c *Config) EnsureLaunchesOpen() error {
	if c.LaunchesPaused {
		return shared.ErrLaunchesPaused
	}
	return nil
}

// EnsureTradingOpen reports whether curve trades may execute.
func (c *Config) EnsureTradingOpen() error {
	if c.TradingPaused {
		return shared.ErrTradingPaused
	}
	return nil
}

// TransferAdmin hands admin authority to newAdmin.
func (c *Config) TransferAdmin(caller, newAdmin solana.PublicKey) error {
	if !caller.Equals(c.Admin) {
		return shared.ErrUnauthorized
	}
	c.Admin = newAdmin
	return nil
}

// TotalFeeBps is the all-in fee taken from a trade. The fixed creator fee is
// carved out of this, never added on top, so the treasury keeps
// ProtocolFeeBps minus the creator share.
func (c *Config) TotalFeeBps() uint16 {
	return c.ProtocolFeeBps
}

// RecordLaunch bumps the launch counter.
func (c *Config) RecordLaunch() {
	c.TotalLaunches = math.SaturatingAdd(c.TotalLaunches, 1)
}

// RecordGraduation bumps the graduation counter.
func (c *Config) RecordGraduation() {
	c.TotalGraduations = math.SaturatingAdd(c.TotalGraduations, 1)
}

// RecordTrade accumulates volume and collected protocol fees.
func (c *Config) RecordTrade(volume, protocolFee uint64) {
	c.TotalVolume = addU128(c.TotalVolume, volume)
	c.TotalFeesCollected = math.SaturatingAdd(c.TotalFeesCollected, protocolFee)
}

// DefaultConfigParams returns the production defaults: 1% protocol fee, 85
// SOL graduation threshold, 25 bps bin step, 30 bps base fee.
func DefaultConfigParams(feeAuthority solana.PublicKey) ConfigParams {
	return ConfigParams{
		FeeAuthority:        feeAuthority,
		ProtocolFeeBps:      shared.DefaultProtocolFeeBps,
		GraduationThreshold: shared.DefaultGraduationThreshold,
		DefaultBinStepBps:   shared.DefaultBinStepBps,
		DefaultBaseFeeBps:   shared.DefaultBaseFeeBps,
	}
}
