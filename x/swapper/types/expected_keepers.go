package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper moves funds in and out of the swapper module account.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// PoolQuerier exposes the pool composition needed to validate route steps.
type PoolQuerier interface {
	PoolDenoms(ctx context.Context, poolID uint64) ([]string, error)
}
