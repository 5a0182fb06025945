package keeper

import (
	"context"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params queries the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	return &types.QueryParamsResponse{Params: qs.GetParams(goCtx)}, nil
}

// Route queries the route between two denoms
func (qs queryServer) Route(goCtx context.Context, req *types.QueryRouteRequest) (*types.QueryRouteResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.DenomIn == "" || req.DenomOut == "" {
		return nil, status.Error(codes.InvalidArgument, "denoms cannot be empty")
	}

	route, err := qs.GetRoute(goCtx, req.DenomIn, req.DenomOut)
	if err != nil {
		return nil, err
	}
	return &types.QueryRouteResponse{Route: routeResponse(req.DenomIn, req.DenomOut, route)}, nil
}

// Routes queries all stored routes
func (qs queryServer) Routes(goCtx context.Context, req *types.QueryRoutesRequest) (*types.QueryRoutesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	routeStore := prefix.NewStore(qs.getStore(goCtx), types.RouteKeyPrefix)

	var routes []types.RouteResponse
	pageRes, err := query.Paginate(routeStore, sharedkeeper.SanitizePagination(req.Pagination), func(key []byte, value []byte) error {
		entry, err := decodeRouteEntry(key, value)
		if err != nil {
			return err
		}
		routes = append(routes, routeResponse(entry.DenomIn, entry.DenomOut, entry.Route))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &types.QueryRoutesResponse{Routes: routes, Pagination: pageRes}, nil
}

// EstimateExactInSwap estimates the output of swapping a coin along the stored route
func (qs queryServer) EstimateExactInSwap(goCtx context.Context, req *types.QueryEstimateExactInSwapRequest) (*types.QueryEstimateExactInSwapResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if !req.CoinIn.IsValid() || !req.CoinIn.IsPositive() {
		return nil, status.Error(codes.InvalidArgument, "invalid coin in")
	}
	if err := sdk.ValidateDenom(req.DenomOut); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	amount, err := qs.Keeper.EstimateExactInSwap(goCtx, req.CoinIn, req.DenomOut)
	if err != nil {
		return nil, err
	}
	return &types.QueryEstimateExactInSwapResponse{Amount: amount}, nil
}

func routeResponse(denomIn, denomOut string, route types.Route) types.RouteResponse {
	return types.RouteResponse{
		DenomIn:  denomIn,
		DenomOut: denomOut,
		Route:    route,
		Display:  route.String(),
	}
}
