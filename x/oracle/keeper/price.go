package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/oracle/types"
)

// QueryPrice returns the price of denom in the base denom.
func (k Keeper) QueryPrice(ctx context.Context, denom string) (math.LegacyDec, error) {
	ps, err := k.GetPriceSource(ctx, denom)
	if err != nil {
		k.metrics.PriceQueries.WithLabelValues("none", "error").Inc()
		return math.LegacyDec{}, err
	}

	price, err := k.resolvePrice(ctx, denom, ps, 0, k.GetParams(ctx).MaxRouteDepth)
	if err != nil {
		k.metrics.PriceQueries.WithLabelValues(types.Kind(ps), "error").Inc()
		return math.LegacyDec{}, err
	}
	k.metrics.PriceQueries.WithLabelValues(types.Kind(ps), "ok").Inc()
	return price, nil
}

// resolvePrice evaluates ps for denom. depth counts the route assets already
// being resolved above this call.
func (k Keeper) resolvePrice(ctx context.Context, denom string, ps types.PriceSource, depth, maxDepth uint32) (math.LegacyDec, error) {
	if depth > maxDepth {
		return math.LegacyDec{}, types.ErrInvalidPrice.Wrapf("route asset depth exceeded resolving %s (max %d)", denom, maxDepth)
	}

	var (
		price       math.LegacyDec
		routeAssets []string
		err         error
	)
	switch ps := ps.(type) {
	case types.FixedPriceSource:
		return ps.Price, nil
	case types.SpotPriceSource:
		price, err = k.spotPrice(ctx, denom, ps.PoolID)
		routeAssets = ps.RouteAssets
	case types.TwapPriceSource:
		price, err = k.twapPrice(ctx, denom, ps)
		routeAssets = ps.RouteAssets
	default:
		return math.LegacyDec{}, types.ErrInvalidPriceSource.Wrapf("unknown price source %T", ps)
	}
	if err != nil {
		return math.LegacyDec{}, err
	}

	for _, asset := range routeAssets {
		routeSource, err := k.GetPriceSource(ctx, asset)
		if err != nil {
			return math.LegacyDec{}, types.ErrInvalidPrice.Wrapf("no price source for route asset %s", asset)
		}
		routePrice, err := k.resolvePrice(ctx, asset, routeSource, depth+1, maxDepth)
		if err != nil {
			return math.LegacyDec{}, err
		}
		if price, err = checkedMul(price, routePrice); err != nil {
			return math.LegacyDec{}, err
		}
	}

	k.Logger(ctx).Debug("price resolved", "denom", denom, "source", ps.String(), "price", price)
	return price, nil
}

// spotPrice simulates selling one whole unit of denom in poolID and returns
// the amount received per base unit offered.
func (k Keeper) spotPrice(ctx context.Context, denom string, poolID uint64) (math.LegacyDec, error) {
	other, err := k.otherPoolDenom(ctx, poolID, denom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	one, err := k.oneUnit(ctx, denom)
	if err != nil {
		return math.LegacyDec{}, err
	}

	ret, err := k.liquidityKeeper.SimulateSwap(ctx, poolID, sdk.NewCoin(denom, one), other)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("simulate swap of %s%s in pool %d: %w", one, denom, poolID, err)
	}
	return checkedQuo(ret, one)
}

// oneUnit returns 10^exponent of the display unit of denom.
func (k Keeper) oneUnit(ctx context.Context, denom string) (math.Int, error) {
	metadata, found := k.bankKeeper.GetDenomMetaData(ctx, denom)
	if !found {
		return math.Int{}, types.ErrPriceUnavailable.Wrapf("no denom metadata for %s", denom)
	}
	for _, unit := range metadata.DenomUnits {
		if unit != nil && unit.Denom == metadata.Display {
			return math.NewIntWithDecimal(1, int(unit.Exponent)), nil
		}
	}
	return math.Int{}, types.ErrPriceUnavailable.Wrapf("display unit %q of %s has no exponent", metadata.Display, denom)
}

func checkedMul(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, types.ErrArithmeticOverflow.Wrapf("%s * %s: %v", a, b, r)
		}
	}()
	return a.Mul(b), nil
}

func checkedQuo(amount, one math.Int) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, types.ErrArithmeticOverflow.Wrapf("%s / %s: %v", amount, one, r)
		}
	}()
	return math.LegacyNewDecFromInt(amount).QuoInt(one), nil
}
