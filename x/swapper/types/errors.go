package types

import (
	"cosmossdk.io/errors"
)

// Swapper module sentinel errors
var (
	ErrInvalidRoute       = errors.Register(ModuleName, 2, "invalid route")
	ErrRouteNotFound      = errors.Register(ModuleName, 3, "route not found")
	ErrUnauthorized       = errors.Register(ModuleName, 4, "unauthorized")
	ErrInvalidSlippage    = errors.Register(ModuleName, 5, "invalid slippage")
	ErrArithmeticOverflow = errors.Register(ModuleName, 6, "arithmetic overflow")
	ErrInvalidParams      = errors.Register(ModuleName, 7, "invalid params")
	ErrInvalidInstruction = errors.Register(ModuleName, 8, "invalid instruction")
	ErrInvalidCoin        = errors.Register(ModuleName, 9, "invalid coin")
	ErrTwapUnavailable    = errors.Register(ModuleName, 10, "twap unavailable")
)
