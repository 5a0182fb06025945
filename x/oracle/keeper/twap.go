package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/oracle/types"
)

// twapPrice returns the average price of denom in the other pool asset over
// a window of ps.WindowSize seconds ending now. The window starts at the
// snapshot closest to now-WindowSize within ps.Tolerance.
func (k Keeper) twapPrice(ctx context.Context, denom string, ps types.TwapPriceSource) (math.LegacyDec, error) {
	other, err := k.otherPoolDenom(ctx, ps.PoolID, denom)
	if err != nil {
		return math.LegacyDec{}, err
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	window, tolerance := int64(ps.WindowSize), int64(ps.Tolerance)
	from, to := now-window-tolerance, now-window+tolerance

	times, err := k.liquidityKeeper.TwapSnapshotTimes(ctx, ps.PoolID, from, to)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("query snapshots of pool %d: %w", ps.PoolID, err)
	}
	start, ok := SelectTwapStart(times, now, window)
	if !ok {
		return math.LegacyDec{}, types.ErrPriceUnavailable.Wrapf(
			"no twap snapshot of pool %d between %d and %d", ps.PoolID, from, to)
	}

	twap, err := k.liquidityKeeper.ArithmeticTwapToNow(ctx, ps.PoolID, denom, other, start)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("twap of %s in pool %d since %d: %w", denom, ps.PoolID, start, err)
	}
	return twap, nil
}

// SelectTwapStart picks the snapshot time whose age is closest to window.
// Between two equally close snapshots the more recent one wins. Snapshots at
// or after now are ignored.
func SelectTwapStart(times []int64, now, window int64) (int64, bool) {
	var (
		best     int64
		bestDist int64
		found    bool
	)
	for _, t := range times {
		if t >= now {
			continue
		}
		dist := now - t - window
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist || (dist == bestDist && t > best) {
			best, bestDist, found = t, dist, true
		}
	}
	return best, found
}
