package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DenomPriceSource pairs a denom with its price source.
type DenomPriceSource struct {
	Denom       string               `json:"denom"`
	PriceSource PriceSourceUnchecked `json:"price_source"`
}

// GenesisState defines the oracle module's genesis state.
type GenesisState struct {
	Params       Params             `json:"params"`
	PriceSources []DenomPriceSource `json:"price_sources"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:       DefaultParams(),
		PriceSources: []DenomPriceSource{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure. Route assets must all be registered and the route graph acyclic.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	sources := make(map[string]PriceSource, len(gs.PriceSources))
	for _, entry := range gs.PriceSources {
		if err := sdk.ValidateDenom(entry.Denom); err != nil {
			return ErrInvalidDenom.Wrapf("%s: %s", entry.Denom, err)
		}
		if _, ok := sources[entry.Denom]; ok {
			return ErrInvalidPriceSource.Wrapf("duplicate price source for %s", entry.Denom)
		}
		ps, err := entry.PriceSource.Check()
		if err != nil {
			return fmt.Errorf("price source of %s: %w", entry.Denom, err)
		}
		sources[entry.Denom] = ps
	}

	lookup := func(denom string) ([]string, error) {
		return RouteAssetsOf(sources[denom]), nil
	}
	for _, entry := range gs.PriceSources {
		routeAssets := RouteAssetsOf(sources[entry.Denom])
		for _, asset := range routeAssets {
			if _, ok := sources[asset]; !ok {
				return ErrInvalidPriceSource.Wrapf("no price source for route asset %s of %s", asset, entry.Denom)
			}
		}
		if err := CheckRouteAcyclic(entry.Denom, routeAssets, lookup); err != nil {
			return err
		}
	}
	return nil
}
