package shared

import "errors"

// ErrorCode is the stable discriminator carried by every protocol error.
type ErrorCode uint16

const (
	CodeTradeTooSmall ErrorCode = iota + 1
	CodeInvalidReserves
	CodeInsufficientOutput
	CodeInsufficientLiquidity
	CodeInvalidAmount
	CodeSlippageExceeded
	CodeLaunchNotActive
	CodeAlreadyGraduated
	CodeThresholdNotReached
	CodeUnauthorized
	CodeInvalidConfig
	CodeLaunchesPaused
	CodeTradingPaused
	CodeMathOverflow
	CodeInvalidCreator
	CodeInvalidTreasury
	CodeInsufficientGraduationFunds
	CodeInvalidMintOrder
)

// Error is a protocol failure with a stable kind identifier. Operations abort
// atomically when returning one; nothing is retried internally.
type Error struct {
	Code ErrorCode
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newErr(code ErrorCode, msg string) *Error {
	return &Error{Code: code, msg: msg}
}

var (
	ErrTradeTooSmall               = newErr(CodeTradeTooSmall, "trade amount is too small")
	ErrInvalidReserves             = newErr(CodeInvalidReserves, "invalid reserves")
	ErrInsufficientOutput          = newErr(CodeInsufficientOutput, "insufficient output amount")
	ErrInsufficientLiquidity       = newErr(CodeInsufficientLiquidity, "insufficient liquidity")
	ErrInvalidAmount               = newErr(CodeInvalidAmount, "invalid amount")
	ErrSlippageExceeded            = newErr(CodeSlippageExceeded, "slippage exceeded")
	ErrLaunchNotActive             = newErr(CodeLaunchNotActive, "launch not active")
	ErrAlreadyGraduated            = newErr(CodeAlreadyGraduated, "launch already graduated")
	ErrThresholdNotReached         = newErr(CodeThresholdNotReached, "graduation threshold not reached")
	ErrUnauthorized                = newErr(CodeUnauthorized, "unauthorized")
	ErrInvalidConfig               = newErr(CodeInvalidConfig, "invalid configuration")
	ErrLaunchesPaused              = newErr(CodeLaunchesPaused, "launches are paused")
	ErrTradingPaused               = newErr(CodeTradingPaused, "trading is paused")
	ErrMathOverflow                = newErr(CodeMathOverflow, "math overflow")
	ErrInvalidCreator              = newErr(CodeInvalidCreator, "invalid creator address")
	ErrInvalidTreasury             = newErr(CodeInvalidTreasury, "invalid treasury address")
	ErrInsufficientGraduationFunds = newErr(CodeInsufficientGraduationFunds, "insufficient quote for graduation distribution")
	ErrInvalidMintOrder            = newErr(CodeInvalidMintOrder, "invalid mint order for orbit pool")
)

// CodeOf extracts the stable code from err, or 0 when err is not a protocol
// error.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 0
}
