package keeper

import (
	"context"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/dex/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// CalculateSwapOutput calculates the output amount of a constant-product swap
// with the fee taken from the input:
//
//	out = (in * (1 - fee) * reserveOut) / (reserveIn + in * (1 - fee))
//
// The result is truncated and must be positive and below reserveOut.
func CalculateSwapOutput(amountIn, reserveIn, reserveOut math.Int, swapFee math.LegacyDec) (amountOut math.Int, err error) {
	if !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("input amount must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	defer func() {
		if r := recover(); r != nil {
			amountOut, err = math.ZeroInt(), types.ErrOverflow.Wrapf("swap output: %v", r)
		}
	}()

	amountInAfterFee := math.LegacyNewDecFromInt(amountIn).Mul(math.LegacyOneDec().Sub(swapFee))
	numerator := amountInAfterFee.Mul(math.LegacyNewDecFromInt(reserveOut))
	denominator := math.LegacyNewDecFromInt(reserveIn).Add(amountInAfterFee)

	amountOut = numerator.Quo(denominator).TruncateInt()
	if amountOut.IsZero() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("output amount too small")
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	return amountOut, nil
}

// SimulateSwap returns the amount of askDenom received for offer in poolID
// without touching state.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, offer sdk.Coin, askDenom string) (math.Int, error) {
	ops := []sharedkeeper.SwapOperation{{PoolID: poolID, DenomIn: offer.Denom, DenomOut: askDenom}}
	out, _, err := k.runOperations(ctx, ops, offer.Amount)
	return out, err
}

// SimulateSwapOperations replays ops without touching state. A pool visited
// twice sees the reserves left by the earlier hop.
func (k Keeper) SimulateSwapOperations(ctx context.Context, ops []sharedkeeper.SwapOperation, amount math.Int) (math.Int, error) {
	out, _, err := k.runOperations(ctx, ops, amount)
	return out, err
}

// ExecuteSwapOperations swaps coinIn held by sender through ops and sends the
// output back to sender. All hops succeed or none are applied.
func (k Keeper) ExecuteSwapOperations(
	ctx context.Context,
	sender sdk.AccAddress,
	ops []sharedkeeper.SwapOperation,
	coinIn sdk.Coin,
	minOut math.Int,
) (math.Int, error) {
	if err := sharedkeeper.ValidateSwapOperations(ops, coinIn.Denom); err != nil {
		return math.ZeroInt(), types.ErrInvalidSwapOperations.Wrap(err.Error())
	}

	amountOut, pools, err := k.runOperations(ctx, ops, coinIn.Amount)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !minOut.IsNil() && amountOut.LT(minOut) {
		return math.ZeroInt(), types.ErrMinAmountOut.Wrapf("expected at least %s, got %s", minOut, amountOut)
	}

	if err := k.bankKeeper.SendCoins(ctx, sender, k.moduleAddress, sdk.NewCoins(coinIn)); err != nil {
		return math.ZeroInt(), fmt.Errorf("ExecuteSwapOperations: transfer input: %w", err)
	}
	coinOut := sdk.NewCoin(ops[len(ops)-1].DenomOut, amountOut)
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddress, sender, sdk.NewCoins(coinOut)); err != nil {
		return math.ZeroInt(), fmt.Errorf("ExecuteSwapOperations: transfer output: %w", err)
	}

	for _, pool := range pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return math.ZeroInt(), err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyDenomIn, coinIn.Denom),
			sdk.NewAttribute(types.AttributeKeyDenomOut, coinOut.Denom),
			sdk.NewAttribute(types.AttributeKeyAmountIn, coinIn.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyHops, strconv.Itoa(len(ops))),
		),
	)
	for _, op := range ops {
		k.metrics.SwapsTotal.WithLabelValues(strconv.FormatUint(op.PoolID, 10), op.DenomIn, op.DenomOut).Inc()
	}

	return amountOut, nil
}

// runOperations computes every hop against in-memory copies of the pools.
// The returned pools carry the updated reserves and accumulators.
func (k Keeper) runOperations(ctx context.Context, ops []sharedkeeper.SwapOperation, amount math.Int) (math.Int, map[uint64]types.Pool, error) {
	if len(ops) == 0 {
		return math.ZeroInt(), nil, types.ErrInvalidSwapOperations.Wrap("at least one operation required")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), nil, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}

	params := k.GetParams(ctx)
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	pools := make(map[uint64]types.Pool, len(ops))

	current := amount
	for i, op := range ops {
		pool, ok := pools[op.PoolID]
		if !ok {
			var err error
			if pool, err = k.GetPool(ctx, op.PoolID); err != nil {
				return math.ZeroInt(), nil, err
			}
			// accumulate with the reserves in force before this block's swaps
			pool.Accumulate(now)
		}

		reserveIn, reserveOut, err := pool.Reserves(op.DenomIn, op.DenomOut)
		if err != nil {
			return math.ZeroInt(), nil, fmt.Errorf("hop %d: %w", i, err)
		}
		out, err := CalculateSwapOutput(current, reserveIn, reserveOut, params.SwapFee)
		if err != nil {
			return math.ZeroInt(), nil, fmt.Errorf("hop %d: %w", i, err)
		}

		pool.ApplySwap(op.DenomIn, current, out)
		pools[op.PoolID] = pool
		current = out
	}
	return current, pools, nil
}
