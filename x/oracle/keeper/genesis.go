package keeper

import (
	"context"
	"fmt"

	"github.com/mars-protocol/mars-common/x/oracle/types"
)

// InitGenesis initializes the oracle state from a provided genesis state.
// Entries are checked as a whole by GenesisState.Validate; each pool backed
// source must also reference an existing pool holding its denom.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid oracle genesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	for _, entry := range genState.PriceSources {
		ps, err := entry.PriceSource.Check()
		if err != nil {
			return err
		}
		if poolID, ok := types.PoolOf(ps); ok {
			if _, err := k.otherPoolDenom(ctx, poolID, entry.Denom); err != nil {
				return types.ErrInvalidPriceSource.Wrapf("price source of %s: %s", entry.Denom, err)
			}
		}
		if err := k.setPriceSource(ctx, entry.Denom, ps); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("oracle genesis initialized", "price_sources", len(genState.PriceSources))
	return nil
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)

	err := k.IteratePriceSources(ctx, func(denom string, ps types.PriceSource) bool {
		gs.PriceSources = append(gs.PriceSources, types.DenomPriceSource{
			Denom:       denom,
			PriceSource: types.Unchecked(ps),
		})
		return false
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
