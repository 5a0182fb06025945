package keeper

import (
	"context"

	"cosmossdk.io/store/prefix"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mars-protocol/mars-common/x/oracle/types"
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

// PriceSource queries the price source of a denom
func (qs queryServer) PriceSource(goCtx context.Context, req *types.QueryPriceSourceRequest) (*types.QueryPriceSourceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.Denom == "" {
		return nil, status.Error(codes.InvalidArgument, "denom cannot be empty")
	}

	ps, err := qs.GetPriceSource(goCtx, req.Denom)
	if err != nil {
		return nil, err
	}
	return &types.QueryPriceSourceResponse{PriceSource: priceSourceResponse(req.Denom, ps)}, nil
}

// PriceSources queries all registered price sources
func (qs queryServer) PriceSources(goCtx context.Context, req *types.QueryPriceSourcesRequest) (*types.QueryPriceSourcesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	var sources []types.PriceSourceResponse
	pageRes, err := qs.paginatePriceSources(goCtx, req.Pagination, func(denom string, ps types.PriceSource) error {
		sources = append(sources, priceSourceResponse(denom, ps))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.QueryPriceSourcesResponse{PriceSources: sources, Pagination: pageRes}, nil
}

// Price queries the current price of a denom in the base denom
func (qs queryServer) Price(goCtx context.Context, req *types.QueryPriceRequest) (*types.QueryPriceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.Denom == "" {
		return nil, status.Error(codes.InvalidArgument, "denom cannot be empty")
	}

	price, err := qs.QueryPrice(goCtx, req.Denom)
	if err != nil {
		return nil, err
	}
	return &types.QueryPriceResponse{Price: types.PriceResponse{Denom: req.Denom, Price: price}}, nil
}

// Prices resolves the price of every registered denom on the page. The first
// failing denom fails the whole query.
func (qs queryServer) Prices(goCtx context.Context, req *types.QueryPricesRequest) (*types.QueryPricesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	maxDepth := qs.GetParams(goCtx).MaxRouteDepth
	var prices []types.PriceResponse
	pageRes, err := qs.paginatePriceSources(goCtx, req.Pagination, func(denom string, ps types.PriceSource) error {
		price, err := qs.resolvePrice(goCtx, denom, ps, 0, maxDepth)
		if err != nil {
			return err
		}
		prices = append(prices, types.PriceResponse{Denom: denom, Price: price})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.QueryPricesResponse{Prices: prices, Pagination: pageRes}, nil
}

func (qs queryServer) paginatePriceSources(
	goCtx context.Context,
	pageReq *query.PageRequest,
	cb func(denom string, ps types.PriceSource) error,
) (*query.PageResponse, error) {
	sourceStore := prefix.NewStore(qs.kvStore(goCtx), types.PriceSourceKeyPrefix)
	return query.Paginate(sourceStore, sharedkeeper.SanitizePagination(pageReq), func(key []byte, value []byte) error {
		ps, err := types.UnmarshalPriceSource(value)
		if err != nil {
			return err
		}
		return cb(string(key), ps)
	})
}

func priceSourceResponse(denom string, ps types.PriceSource) types.PriceSourceResponse {
	return types.PriceSourceResponse{
		Denom:       denom,
		PriceSource: types.Unchecked(ps),
		Display:     ps.String(),
	}
}
