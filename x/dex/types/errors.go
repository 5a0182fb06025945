package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	ErrInvalidPoolID         = errors.Register(ModuleName, 2, "invalid pool id")
	ErrPoolNotFound          = errors.Register(ModuleName, 3, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 4, "pool already exists")
	ErrInvalidTokenDenom     = errors.Register(ModuleName, 5, "invalid token denomination")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 6, "insufficient liquidity in pool")
	ErrInvalidAmount         = errors.Register(ModuleName, 7, "invalid amount")
	ErrMinAmountOut          = errors.Register(ModuleName, 8, "output amount less than minimum required")
	ErrInvalidSwapOperations = errors.Register(ModuleName, 9, "invalid swap operations")
	ErrSnapshotNotFound      = errors.Register(ModuleName, 10, "twap snapshot not found")
	ErrInvalidTwapWindow     = errors.Register(ModuleName, 11, "invalid twap window")
	ErrInvalidParams         = errors.Register(ModuleName, 12, "invalid params")
	ErrOverflow              = errors.Register(ModuleName, 13, "arithmetic overflow")
)
