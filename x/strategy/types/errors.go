package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrUnauthorized       = errors.Register(ModuleName, 1, "caller is not authorized")
	ErrStrategyNotFound   = errors.Register(ModuleName, 2, "strategy not found")
	ErrStrategyExists     = errors.Register(ModuleName, 3, "strategy already initialized")
	ErrVenueNotRegistered = errors.Register(ModuleName, 4, "venue not registered")
	ErrZeroAmount         = errors.Register(ModuleName, 5, "amount must be positive")
	ErrFeeCapExceeded     = errors.Register(ModuleName, 6, "combined fee numerators exceed the cap")
	ErrTimelockNotElapsed = errors.Register(ModuleName, 7, "timelock has not elapsed")
	ErrNothingPending     = errors.Register(ModuleName, 8, "no pending change")
	ErrUnknownFeeParam    = errors.Register(ModuleName, 9, "unknown fee parameter")
	ErrInvalidAmount      = errors.Register(ModuleName, 10, "invalid amount")
)
