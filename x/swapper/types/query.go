package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer is the read-only surface of the swapper module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Route(context.Context, *QueryRouteRequest) (*QueryRouteResponse, error)
	Routes(context.Context, *QueryRoutesRequest) (*QueryRoutesResponse, error)
	EstimateExactInSwap(context.Context, *QueryEstimateExactInSwapRequest) (*QueryEstimateExactInSwapResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// RouteResponse is a stored route with its display string.
type RouteResponse struct {
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
	Route    Route  `json:"route"`
	Display  string `json:"display"`
}

type QueryRouteRequest struct {
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
}

type QueryRouteResponse struct {
	Route RouteResponse `json:"route"`
}

type QueryRoutesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryRoutesResponse struct {
	Routes     []RouteResponse     `json:"routes"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryEstimateExactInSwapRequest struct {
	CoinIn   sdk.Coin `json:"coin_in"`
	DenomOut string   `json:"denom_out"`
}

type QueryEstimateExactInSwapResponse struct {
	Amount math.Int `json:"amount"`
}
