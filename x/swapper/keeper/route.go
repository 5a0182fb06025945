package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// SetRoute validates route and stores it as the route from denomIn to
// denomOut, replacing any previous one. Only the owner may call it.
func (k Keeper) SetRoute(ctx context.Context, sender, denomIn, denomOut string, route types.Route) error {
	params := k.GetParams(ctx)
	if err := sharedkeeper.ValidateOwner(types.ErrUnauthorized, params.Owner, sender, "set route"); err != nil {
		return err
	}
	if uint32(len(route.Steps)) > params.MaxHops {
		return types.ErrInvalidRoute.Wrapf("route has %d steps, max %d", len(route.Steps), params.MaxHops)
	}
	if err := route.Validate(ctx, k.liquidityKeeper, denomIn, denomOut); err != nil {
		return err
	}
	if err := k.setRoute(ctx, denomIn, denomOut, route); err != nil {
		return err
	}

	display := route.String()
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSetRoute,
			sdk.NewAttribute(types.AttributeKeyDenomIn, denomIn),
			sdk.NewAttribute(types.AttributeKeyDenomOut, denomOut),
			sdk.NewAttribute(types.AttributeKeyRoute, display),
			sdk.NewAttribute(types.AttributeKeySender, sender),
		),
	)
	k.metrics.RouteUpdates.Inc()
	k.Logger(ctx).Info("route set", "denom_in", denomIn, "denom_out", denomOut, "route", display)
	return nil
}

// GetRoute returns the route from denomIn to denomOut.
func (k Keeper) GetRoute(ctx context.Context, denomIn, denomOut string) (types.Route, error) {
	bz := k.getStore(ctx).Get(types.RouteKey(denomIn, denomOut))
	if bz == nil {
		return types.Route{}, types.ErrRouteNotFound.Wrapf("no route from %s to %s", denomIn, denomOut)
	}
	var route types.Route
	if err := json.Unmarshal(bz, &route); err != nil {
		return types.Route{}, fmt.Errorf("GetRoute: unmarshal %s -> %s: %w", denomIn, denomOut, err)
	}
	return route, nil
}

// IterateRoutes walks every stored route in key order.
func (k Keeper) IterateRoutes(ctx context.Context, cb func(entry types.RouteEntry) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.RouteKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		entry, err := decodeRouteEntry(iterator.Key()[len(types.RouteKeyPrefix):], iterator.Value())
		if err != nil {
			return fmt.Errorf("IterateRoutes: %w", err)
		}
		if cb(entry) {
			break
		}
	}
	return nil
}

func (k Keeper) setRoute(ctx context.Context, denomIn, denomOut string, route types.Route) error {
	bz, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("setRoute: marshal %s -> %s: %w", denomIn, denomOut, err)
	}
	k.getStore(ctx).Set(types.RouteKey(denomIn, denomOut), bz)
	return nil
}

func decodeRouteEntry(key, value []byte) (types.RouteEntry, error) {
	denomIn, denomOut, err := types.ParseRouteKey(key)
	if err != nil {
		return types.RouteEntry{}, err
	}
	var route types.Route
	if err := json.Unmarshal(value, &route); err != nil {
		return types.RouteEntry{}, fmt.Errorf("unmarshal route %s -> %s: %w", denomIn, denomOut, err)
	}
	return types.RouteEntry{DenomIn: denomIn, DenomOut: denomOut, Route: route}, nil
}
