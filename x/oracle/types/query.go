package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer is the read-only surface of the oracle module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	PriceSource(context.Context, *QueryPriceSourceRequest) (*QueryPriceSourceResponse, error)
	PriceSources(context.Context, *QueryPriceSourcesRequest) (*QueryPriceSourcesResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
	Prices(context.Context, *QueryPricesRequest) (*QueryPricesResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// PriceSourceResponse is a registered price source with its display string.
type PriceSourceResponse struct {
	Denom       string               `json:"denom"`
	PriceSource PriceSourceUnchecked `json:"price_source"`
	Display     string               `json:"display"`
}

type QueryPriceSourceRequest struct {
	Denom string `json:"denom"`
}

type QueryPriceSourceResponse struct {
	PriceSource PriceSourceResponse `json:"price_source"`
}

type QueryPriceSourcesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPriceSourcesResponse struct {
	PriceSources []PriceSourceResponse `json:"price_sources"`
	Pagination   *query.PageResponse   `json:"pagination,omitempty"`
}

// PriceResponse is the price of Denom in the base denom.
type PriceResponse struct {
	Denom string         `json:"denom"`
	Price math.LegacyDec `json:"price"`
}

type QueryPriceRequest struct {
	Denom string `json:"denom"`
}

type QueryPriceResponse struct {
	Price PriceResponse `json:"price"`
}

type QueryPricesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPricesResponse struct {
	Prices     []PriceResponse     `json:"prices"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}
