package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// EstimateExactInSwap returns the amount of denomOut received for coinIn
// along the stored route.
func (k Keeper) EstimateExactInSwap(ctx context.Context, coinIn sdk.Coin, denomOut string) (math.Int, error) {
	route, err := k.GetRoute(ctx, coinIn.Denom, denomOut)
	if err != nil {
		return math.Int{}, err
	}
	return k.estimateRoute(ctx, route, coinIn)
}

// estimateRoute replays the steps of route through the pools, the output of
// each step feeding the next one.
func (k Keeper) estimateRoute(ctx context.Context, route types.Route, coinIn sdk.Coin) (math.Int, error) {
	ops := route.SwapOperations(coinIn.Denom)
	out, err := k.liquidityKeeper.SimulateSwapOperations(ctx, ops, coinIn.Amount)
	if err != nil {
		return math.Int{}, fmt.Errorf("simulate %s along %s: %w", coinIn, route, err)
	}
	return out, nil
}

// BuildExactInSwap returns the single multi-hop swap instruction for coinIn
// along route. The minimum received is the TWAP value of coinIn reduced by
// slippage, so trades earlier in the same block cannot lower it.
func (k Keeper) BuildExactInSwap(ctx context.Context, route types.Route, coinIn sdk.Coin, slippage math.LegacyDec) (types.SwapOperationsInstruction, error) {
	if err := types.ValidateSlippage(slippage); err != nil {
		return types.SwapOperationsInstruction{}, err
	}
	ops := route.SwapOperations(coinIn.Denom)
	reference, err := k.TwapAmountOut(ctx, ops, coinIn.Amount)
	if err != nil {
		return types.SwapOperationsInstruction{}, fmt.Errorf("reference price of %s along %s: %w", coinIn, route, err)
	}
	minReceive, err := MinimumReceive(reference, slippage)
	if err != nil {
		return types.SwapOperationsInstruction{}, err
	}

	return types.SwapOperationsInstruction{
		Operations:     ops,
		CoinIn:         coinIn,
		MinimumReceive: minReceive,
	}, nil
}

// MinimumReceive returns floor(estimate * (1 - slippage)).
func MinimumReceive(estimate math.Int, slippage math.LegacyDec) (res math.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s * (1 - %s): %v", estimate, slippage, r)
		}
	}()
	return math.LegacyNewDecFromInt(estimate).Mul(math.LegacyOneDec().Sub(slippage)).TruncateInt(), nil
}
