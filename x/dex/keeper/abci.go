package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/dex/types"
)

// EndBlocker is called at the end of every block.
// It advances every pool's price accumulators, records a snapshot and drops
// snapshots older than MaxSnapshotAge.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	params := k.GetParams(ctx)

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		// Don't return error - log and continue to prevent block production halt
		k.Logger(ctx).Error("failed to load pools", "error", err)
		return nil
	}

	pruned := 0
	for _, pool := range pools {
		pool.Accumulate(now)
		if err := k.SetPool(ctx, pool); err != nil {
			k.Logger(ctx).Error("failed to store pool accumulators", "pool_id", pool.ID, "error", err)
			continue
		}
		if err := k.SetTwapSnapshot(ctx, types.SnapshotOf(pool)); err != nil {
			k.Logger(ctx).Error("failed to record twap snapshot", "pool_id", pool.ID, "error", err)
			continue
		}
		k.metrics.SnapshotsRecorded.Inc()
		pruned += k.PruneTwapSnapshots(ctx, pool.ID, now-params.MaxSnapshotAge)
	}
	k.metrics.SnapshotsPruned.Add(float64(pruned))

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"dex_end_block",
			sdk.NewAttribute("height", fmt.Sprintf("%d", sdkCtx.BlockHeight())),
			sdk.NewAttribute("snapshots", fmt.Sprintf("%d", len(pools))),
		),
	)
	return nil
}
