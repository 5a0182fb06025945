package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// QueryServer is the read-only surface of the dex module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryPoolRequest struct {
	PoolID uint64 `json:"pool_id"`
}

type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

type QueryPoolsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPoolsResponse struct {
	Pools      []Pool              `json:"pools"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QuerySimulateSwapRequest struct {
	Operations []sharedkeeper.SwapOperation `json:"operations"`
	TokenIn    sdk.Coin                     `json:"token_in"`
}

type QuerySimulateSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}
