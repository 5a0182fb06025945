package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/store/prefix"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mars-protocol/mars-common/x/dex/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
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

// Pool queries a pool by id
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.PoolID == 0 {
		return nil, status.Error(codes.InvalidArgument, "pool id cannot be zero")
	}

	pool, err := qs.GetPool(goCtx, req.PoolID)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{Pool: pool}, nil
}

// Pools queries all pools
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	poolStore := prefix.NewStore(qs.getStore(goCtx), types.PoolKeyPrefix)

	var pools []types.Pool
	pageRes, err := query.Paginate(poolStore, sharedkeeper.SanitizePagination(req.Pagination), func(_ []byte, value []byte) error {
		var pool types.Pool
		if err := json.Unmarshal(value, &pool); err != nil {
			return err
		}
		pools = append(pools, pool)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &types.QueryPoolsResponse{Pools: pools, Pagination: pageRes}, nil
}

// SimulateSwap estimates the output of a swap through the given operations
func (qs queryServer) SimulateSwap(goCtx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if err := sharedkeeper.ValidateSwapOperations(req.Operations, req.TokenIn.Denom); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := qs.SimulateSwapOperations(goCtx, req.Operations, req.TokenIn.Amount)
	if err != nil {
		return nil, err
	}
	return &types.QuerySimulateSwapResponse{AmountOut: out}, nil
}
