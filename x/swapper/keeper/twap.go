package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// TwapAmountOut converts amount along ops at the arithmetic TWAP of every
// pool over the last TwapWindow seconds. The hop prices are multiplied, so
// fees and price impact are not part of the result.
func (k Keeper) TwapAmountOut(ctx context.Context, ops []sharedkeeper.SwapOperation, amount math.Int) (out math.Int, err error) {
	window := int64(k.GetParams(ctx).TwapWindow)
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()

	price := math.LegacyOneDec()
	for i, op := range ops {
		start, err := k.twapStart(ctx, op.PoolID, now, window)
		if err != nil {
			return math.Int{}, fmt.Errorf("hop %d: %w", i, err)
		}
		hop, err := k.liquidityKeeper.ArithmeticTwapToNow(ctx, op.PoolID, op.DenomIn, op.DenomOut, start)
		if err != nil {
			return math.Int{}, fmt.Errorf("hop %d: twap of %s in pool %d: %w", i, op.DenomIn, op.PoolID, err)
		}
		price, err = mulDec(price, hop)
		if err != nil {
			return math.Int{}, err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s at %s: %v", amount, price, r)
		}
	}()
	return math.LegacyNewDecFromInt(amount).Mul(price).TruncateInt(), nil
}

// twapStart returns the newest snapshot of poolID at least window seconds
// old. Snapshots older than two windows are not considered.
func (k Keeper) twapStart(ctx context.Context, poolID uint64, now, window int64) (int64, error) {
	to := now - window
	times, err := k.liquidityKeeper.TwapSnapshotTimes(ctx, poolID, to-window, to)
	if err != nil {
		return 0, err
	}
	if len(times) == 0 {
		return 0, types.ErrTwapUnavailable.Wrapf("pool %d has no snapshot between %d and %d", poolID, to-window, to)
	}
	return times[len(times)-1], nil
}

func mulDec(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, types.ErrArithmeticOverflow.Wrapf("%s * %s: %v", a, b, r)
		}
	}()
	return a.Mul(b), nil
}
