package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Oracle module sentinel errors
var (
	ErrInvalidPrice        = sdkerrors.Register(ModuleName, 2, "invalid price")
	ErrPriceUnavailable    = sdkerrors.Register(ModuleName, 3, "price unavailable")
	ErrPriceSourceNotFound = sdkerrors.Register(ModuleName, 4, "price source not found")
	ErrInvalidPriceSource  = sdkerrors.Register(ModuleName, 5, "invalid price source")
	ErrUnauthorized        = sdkerrors.Register(ModuleName, 6, "unauthorized")
	ErrArithmeticOverflow  = sdkerrors.Register(ModuleName, 7, "arithmetic overflow")
	ErrInvalidParams       = sdkerrors.Register(ModuleName, 8, "invalid params")
	ErrInvalidDenom        = sdkerrors.Register(ModuleName, 9, "invalid denom")
)
