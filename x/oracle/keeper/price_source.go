package keeper

import (
	"context"
	"fmt"
	"slices"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/oracle/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// SetPriceSource checks and stores the price source of denom. Only the owner
// may call it. Nothing is written unless every check passes.
func (k Keeper) SetPriceSource(ctx context.Context, sender, denom string, unchecked types.PriceSourceUnchecked) (types.PriceSource, error) {
	params := k.GetParams(ctx)
	if err := sharedkeeper.ValidateOwner(types.ErrUnauthorized, params.Owner, sender, "set price source"); err != nil {
		return nil, err
	}

	ps, err := k.CheckPriceSource(ctx, denom, unchecked)
	if err != nil {
		return nil, err
	}
	if err := k.setPriceSource(ctx, denom, ps); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSetPriceSource,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyPriceSource, ps.String()),
			sdk.NewAttribute(types.AttributeKeySender, sender),
		),
	)
	k.metrics.PriceSourceUpdates.WithLabelValues("set", types.Kind(ps)).Inc()
	k.Logger(ctx).Info("price source set", "denom", denom, "price_source", ps.String())

	return ps, nil
}

// RemovePriceSource deletes the price source of denom. Only the owner may call it.
// A denom still used as a route asset by another source cannot be removed.
func (k Keeper) RemovePriceSource(ctx context.Context, sender, denom string) error {
	params := k.GetParams(ctx)
	if err := sharedkeeper.ValidateOwner(types.ErrUnauthorized, params.Owner, sender, "remove price source"); err != nil {
		return err
	}

	store := k.kvStore(ctx)
	if !store.Has(types.PriceSourceKey(denom)) {
		return types.ErrPriceSourceNotFound.Wrapf("no price source for %s", denom)
	}
	dependent, err := k.routesThrough(ctx, denom)
	if err != nil {
		return err
	}
	if dependent != "" {
		return types.ErrInvalidPriceSource.Wrapf("price source of %s routes through %s", dependent, denom)
	}
	store.Delete(types.PriceSourceKey(denom))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemovePriceSource,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeySender, sender),
		),
	)
	k.metrics.PriceSourceUpdates.WithLabelValues("remove", "").Inc()
	k.Logger(ctx).Info("price source removed", "denom", denom)

	return nil
}

// GetPriceSource returns the price source of denom.
func (k Keeper) GetPriceSource(ctx context.Context, denom string) (types.PriceSource, error) {
	bz := k.kvStore(ctx).Get(types.PriceSourceKey(denom))
	if bz == nil {
		return nil, types.ErrPriceSourceNotFound.Wrapf("no price source for %s", denom)
	}
	ps, err := types.UnmarshalPriceSource(bz)
	if err != nil {
		return nil, fmt.Errorf("GetPriceSource: decode %s: %w", denom, err)
	}
	return ps, nil
}

// HasPriceSource reports whether denom has a registered price source.
func (k Keeper) HasPriceSource(ctx context.Context, denom string) bool {
	return k.kvStore(ctx).Has(types.PriceSourceKey(denom))
}

// IteratePriceSources walks the registry in denom order.
func (k Keeper) IteratePriceSources(ctx context.Context, cb func(denom string, ps types.PriceSource) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.kvStore(ctx), types.PriceSourceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(types.PriceSourceKeyPrefix):])
		ps, err := types.UnmarshalPriceSource(iterator.Value())
		if err != nil {
			return fmt.Errorf("IteratePriceSources: decode %s: %w", denom, err)
		}
		if cb(denom, ps) {
			break
		}
	}
	return nil
}

// routesThrough returns the first denom whose price source lists asset as a
// route asset, or "" when none does.
func (k Keeper) routesThrough(ctx context.Context, asset string) (string, error) {
	var dependent string
	err := k.IteratePriceSources(ctx, func(denom string, ps types.PriceSource) bool {
		if slices.Contains(types.RouteAssetsOf(ps), asset) {
			dependent = denom
			return true
		}
		return false
	})
	return dependent, err
}

func (k Keeper) setPriceSource(ctx context.Context, denom string, ps types.PriceSource) error {
	bz, err := types.MarshalPriceSource(ps)
	if err != nil {
		return fmt.Errorf("setPriceSource: encode %s: %w", denom, err)
	}
	k.kvStore(ctx).Set(types.PriceSourceKey(denom), bz)
	return nil
}
