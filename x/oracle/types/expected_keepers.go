package types

import (
	"context"

	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// BankKeeper provides the display precision of denoms.
type BankKeeper interface {
	GetDenomMetaData(ctx context.Context, denom string) (banktypes.Metadata, bool)
}
