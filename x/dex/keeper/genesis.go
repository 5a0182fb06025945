package keeper

import (
	"context"
	"fmt"

	"github.com/mars-protocol/mars-common/x/dex/types"
)

// InitGenesis initializes the dex module's state from a provided genesis state.
// Pool reserves must already be held by the module account in the bank genesis.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid dex genesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		k.setPoolByDenoms(ctx, pool)
	}
	k.setNextPoolID(ctx, genState.NextPoolID)

	for _, snap := range genState.Snapshots {
		if err := k.SetTwapSnapshot(ctx, snap); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("dex genesis initialized", "pools", len(genState.Pools), "snapshots", len(genState.Snapshots))
	return nil
}

// ExportGenesis returns the dex module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	var snapshots []types.TwapSnapshot
	if err := k.IterateTwapSnapshots(ctx, func(snap types.TwapSnapshot) bool {
		snapshots = append(snapshots, snap)
		return false
	}); err != nil {
		return nil, err
	}

	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)
	gs.NextPoolID = k.nextPoolID(ctx)
	if pools != nil {
		gs.Pools = pools
	}
	if snapshots != nil {
		gs.Snapshots = snapshots
	}
	return gs, nil
}
