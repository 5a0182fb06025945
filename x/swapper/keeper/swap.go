package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// SwapExactIn swaps coinIn from sender into denomOut along the stored route
// and returns what was sent back to sender.
//
// The swap runs in two phases from the module account: the multi-hop swap,
// then a self-addressed MsgTransferResult that sweeps the module's holdings of
// both denoms to sender. Either both phases commit or neither does.
func (k Keeper) SwapExactIn(ctx context.Context, sender sdk.AccAddress, coinIn sdk.Coin, denomOut string, slippage math.LegacyDec) (sdk.Coins, error) {
	if err := types.ValidateSlippage(slippage); err != nil {
		return nil, err
	}
	if !coinIn.IsValid() || !coinIn.IsPositive() {
		return nil, types.ErrInvalidCoin.Wrapf("invalid coin in: %s", coinIn)
	}

	route, err := k.GetRoute(ctx, coinIn.Denom, denomOut)
	if err != nil {
		return nil, err
	}
	// Pools may have changed since the route was stored.
	if err := route.Validate(ctx, k.liquidityKeeper, coinIn.Denom, denomOut); err != nil {
		return nil, err
	}

	swap, err := k.BuildExactInSwap(ctx, route, coinIn, slippage)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	if err := k.bankKeeper.SendCoins(cacheCtx, sender, k.moduleAddress, sdk.NewCoins(coinIn)); err != nil {
		k.metrics.Swaps.WithLabelValues(coinIn.Denom, denomOut, "failed").Inc()
		return nil, fmt.Errorf("SwapExactIn: collect %s: %w", coinIn, err)
	}

	received, err := k.dispatch(cacheCtx, []types.Instruction{
		swap,
		types.MsgTransferResult{
			Sender:    k.moduleAddress.String(),
			Recipient: sender.String(),
			DenomIn:   coinIn.Denom,
			DenomOut:  denomOut,
		},
	})
	if err != nil {
		k.metrics.Swaps.WithLabelValues(coinIn.Denom, denomOut, "failed").Inc()
		return nil, fmt.Errorf("SwapExactIn: %w", err)
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapExactIn,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyCoinIn, coinIn.String()),
			sdk.NewAttribute(types.AttributeKeyDenomOut, denomOut),
			sdk.NewAttribute(types.AttributeKeyRoute, route.String()),
			sdk.NewAttribute(types.AttributeKeyMinOut, swap.MinimumReceive.String()),
			sdk.NewAttribute(types.AttributeKeyCoins, received.String()),
		),
	)
	k.metrics.Swaps.WithLabelValues(coinIn.Denom, denomOut, "success").Inc()
	k.Logger(ctx).Info("swap executed",
		"sender", sender.String(),
		"coin_in", coinIn.String(),
		"received", received.String(),
		"min_receive", swap.MinimumReceive.String(),
	)
	return received, nil
}

// TransferResult builds the transfer of the module's non-zero balances of
// msg.DenomIn and msg.DenomOut to msg.Recipient. It only accepts messages sent
// by the module account itself. The returned instructions are empty when there
// is nothing to send.
func (k Keeper) TransferResult(ctx context.Context, msg types.MsgTransferResult) ([]types.Instruction, error) {
	if msg.Sender != k.moduleAddress.String() {
		return nil, types.ErrUnauthorized.Wrapf("%s is not authorized to transfer result", msg.Sender)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return nil, types.ErrInvalidInstruction.Wrapf("invalid recipient address: %s", err)
	}

	denoms := []string{msg.DenomIn}
	if msg.DenomOut != msg.DenomIn {
		denoms = append(denoms, msg.DenomOut)
	}

	coins := sdk.NewCoins()
	for _, denom := range denoms {
		bal := k.bankKeeper.GetBalance(ctx, k.moduleAddress, denom)
		if bal.IsPositive() {
			coins = coins.Add(bal)
		}
	}

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "transfer_result"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("denom_in", msg.DenomIn),
			telemetry.NewLabel("denom_out", msg.DenomOut),
		},
	)

	if coins.IsZero() {
		return nil, nil
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransferResult,
			sdk.NewAttribute(types.AttributeKeyRecipient, msg.Recipient),
			sdk.NewAttribute(types.AttributeKeyCoins, coins.String()),
		),
	)
	k.metrics.Settlements.Inc()

	return []types.Instruction{
		types.BankSendInstruction{
			FromAddress: k.moduleAddress.String(),
			ToAddress:   msg.Recipient,
			Amount:      coins,
		},
	}, nil
}
