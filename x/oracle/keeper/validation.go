package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/oracle/types"
)

// CheckPriceSource turns an untrusted price source for denom into a checked
// one. Pool backed sources must reference an existing pool holding denom.
// With route assets the first one must be the pool's other asset and the
// last one the base denom; without route assets the other asset must be the
// base denom itself. Every route asset must already be registered and the
// route graph must stay acyclic.
func (k Keeper) CheckPriceSource(ctx context.Context, denom string, unchecked types.PriceSourceUnchecked) (types.PriceSource, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return nil, types.ErrInvalidDenom.Wrapf("%s: %s", denom, err)
	}

	ps, err := unchecked.Check()
	if err != nil {
		return nil, err
	}

	poolID, ok := types.PoolOf(ps)
	if !ok {
		return ps, nil
	}

	other, err := k.otherPoolDenom(ctx, poolID, denom)
	if err != nil {
		return nil, types.ErrInvalidPriceSource.Wrap(err.Error())
	}

	baseDenom := k.GetParams(ctx).BaseDenom
	routeAssets := types.RouteAssetsOf(ps)
	if len(routeAssets) == 0 {
		if other != baseDenom {
			return nil, types.ErrInvalidPriceSource.Wrapf(
				"pool %d pairs %s with %s; route assets are required to reach base denom %s", poolID, denom, other, baseDenom)
		}
		return ps, nil
	}

	if routeAssets[0] != other {
		return nil, types.ErrInvalidPriceSource.Wrapf(
			"first route asset %s must be the other asset of pool %d: %s", routeAssets[0], poolID, other)
	}
	if last := routeAssets[len(routeAssets)-1]; last != baseDenom {
		return nil, types.ErrInvalidPriceSource.Wrapf("last route asset %s must be the base denom %s", last, baseDenom)
	}
	for _, asset := range routeAssets {
		if asset != denom && !k.HasPriceSource(ctx, asset) {
			return nil, types.ErrInvalidPriceSource.Wrapf("no price source for route asset %s", asset)
		}
	}

	lookup := func(d string) ([]string, error) {
		existing, err := k.GetPriceSource(ctx, d)
		if err != nil {
			if errorsmod.IsOf(err, types.ErrPriceSourceNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return types.RouteAssetsOf(existing), nil
	}
	if err := types.CheckRouteAcyclic(denom, routeAssets, lookup); err != nil {
		return nil, err
	}

	return ps, nil
}

// otherPoolDenom returns the asset paired with denom in poolID.
func (k Keeper) otherPoolDenom(ctx context.Context, poolID uint64, denom string) (string, error) {
	denoms, err := k.liquidityKeeper.PoolDenoms(ctx, poolID)
	if err != nil {
		return "", fmt.Errorf("query pool %d: %w", poolID, err)
	}
	if len(denoms) != 2 {
		return "", fmt.Errorf("pool %d holds %d assets, expected 2", poolID, len(denoms))
	}
	switch denom {
	case denoms[0]:
		return denoms[1], nil
	case denoms[1]:
		return denoms[0], nil
	default:
		return "", fmt.Errorf("pool %d does not contain %s", poolID, denom)
	}
}
