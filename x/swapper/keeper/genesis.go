package keeper

import (
	"context"
	"fmt"

	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// InitGenesis initializes the swapper module's state from a provided genesis
// state. Routes are validated against the current pools, so the dex genesis
// must run first.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid swapper genesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	for _, entry := range genState.Routes {
		if err := entry.Route.Validate(ctx, k.liquidityKeeper, entry.DenomIn, entry.DenomOut); err != nil {
			return fmt.Errorf("route %s -> %s: %w", entry.DenomIn, entry.DenomOut, err)
		}
		if err := k.setRoute(ctx, entry.DenomIn, entry.DenomOut, entry.Route); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("swapper genesis initialized", "routes", len(genState.Routes))
	return nil
}

// ExportGenesis returns the swapper module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)
	if err := k.IterateRoutes(ctx, func(entry types.RouteEntry) bool {
		gs.Routes = append(gs.Routes, entry)
		return false
	}); err != nil {
		return nil, err
	}
	return gs, nil
}
