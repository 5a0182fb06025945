package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RouteEntry is a stored route with its key.
type RouteEntry struct {
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
	Route    Route  `json:"route"`
}

// GenesisState defines the swapper module's genesis state.
type GenesisState struct {
	Params Params       `json:"params"`
	Routes []RouteEntry `json:"routes"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Routes: []RouteEntry{},
	}
}

// Validate performs the stateless checks of the genesis state. Pool backed
// steps are checked against the pools in InitGenesis.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	seen := make(map[string]struct{}, len(gs.Routes))
	for _, entry := range gs.Routes {
		if err := sdk.ValidateDenom(entry.DenomIn); err != nil {
			return ErrInvalidRoute.Wrapf("invalid denom in: %s", err)
		}
		if err := sdk.ValidateDenom(entry.DenomOut); err != nil {
			return ErrInvalidRoute.Wrapf("invalid denom out: %s", err)
		}
		key := string(RouteKey(entry.DenomIn, entry.DenomOut))
		if _, ok := seen[key]; ok {
			return ErrInvalidRoute.Wrapf("duplicate route %s -> %s", entry.DenomIn, entry.DenomOut)
		}
		seen[key] = struct{}{}
		if len(entry.Route.Steps) == 0 {
			return ErrInvalidRoute.Wrapf("route %s -> %s: the route must contain at least one step", entry.DenomIn, entry.DenomOut)
		}
		if uint32(len(entry.Route.Steps)) > gs.Params.MaxHops {
			return ErrInvalidRoute.Wrapf("route %s -> %s has %d steps, max %d", entry.DenomIn, entry.DenomOut, len(entry.Route.Steps), gs.Params.MaxHops)
		}
	}
	return nil
}
