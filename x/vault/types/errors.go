package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrUnauthorized          = errors.Register(ModuleName, 1, "caller is not authorized")
	ErrVaultNotFound         = errors.Register(ModuleName, 2, "vault not found")
	ErrVaultExists           = errors.Register(ModuleName, 3, "vault already exists")
	ErrZeroAmount            = errors.Register(ModuleName, 4, "amount must be positive")
	ErrZeroShares            = errors.Register(ModuleName, 5, "shares must be positive")
	ErrEmptyBeneficiary      = errors.Register(ModuleName, 6, "beneficiary must be defined")
	ErrNoShares              = errors.Register(ModuleName, 7, "vault has no shares outstanding")
	ErrInsufficientShares    = errors.Register(ModuleName, 8, "insufficient share balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 9, "insufficient share allowance")
	ErrGreylisted            = errors.Register(ModuleName, 10, "caller is greylisted")
	ErrNoStrategy            = errors.Register(ModuleName, 11, "vault has no active strategy")
	ErrStrategyUndefined     = errors.Register(ModuleName, 12, "strategy must be defined")
	ErrTimelockNotElapsed    = errors.Register(ModuleName, 13, "timelock has not elapsed")
	ErrNothingPending        = errors.Register(ModuleName, 14, "no pending change")
	ErrSwitchNotReady        = errors.Register(ModuleName, 15, "strategy switch is not permitted")
	ErrUnderlyingMismatch    = errors.Register(ModuleName, 16, "strategy underlying does not match vault")
	ErrVaultMismatch         = errors.Register(ModuleName, 17, "strategy is not bound to this vault")
	ErrStrategyNotDrained    = errors.Register(ModuleName, 18, "outgoing strategy still holds funds")
	ErrInvalidFraction       = errors.Register(ModuleName, 19, "invest fraction numerator exceeds denominator")
	ErrZeroDenominator       = errors.Register(ModuleName, 20, "invest fraction denominator cannot be zero")
	ErrSalvageForbidden      = errors.Register(ModuleName, 21, "token cannot be salvaged")
	ErrInvalidAmount         = errors.Register(ModuleName, 22, "invalid amount")
)
