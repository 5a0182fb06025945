package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the swapper MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SetRoute stores a route (owner only)
func (ms msgServer) SetRoute(goCtx context.Context, msg *types.MsgSetRoute) (*types.MsgSetRouteResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetRoute: validate: %w", err)
	}
	if err := ms.Keeper.SetRoute(goCtx, msg.Sender, msg.DenomIn, msg.DenomOut, msg.Route); err != nil {
		return nil, err
	}
	return &types.MsgSetRouteResponse{}, nil
}

// SwapExactIn swaps the sender's coin along the stored route
func (ms msgServer) SwapExactIn(goCtx context.Context, msg *types.MsgSwapExactIn) (*types.MsgSwapExactInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactIn: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: invalid sender address: %w", err)
	}

	received, err := ms.Keeper.SwapExactIn(goCtx, sender, msg.CoinIn, msg.DenomOut, msg.Slippage)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapExactInResponse{Received: received}, nil
}

// TransferResult sweeps the module's balances to the recipient. Only the
// module account itself is accepted as sender.
func (ms msgServer) TransferResult(goCtx context.Context, msg *types.MsgTransferResult) (*types.MsgTransferResultResponse, error) {
	instrs, err := ms.Keeper.TransferResult(goCtx, *msg)
	if err != nil {
		return nil, err
	}

	cacheCtx, writeFn := sdk.UnwrapSDKContext(goCtx).CacheContext()
	sent, err := ms.dispatch(cacheCtx, instrs)
	if err != nil {
		return nil, fmt.Errorf("TransferResult: %w", err)
	}
	writeFn()

	return &types.MsgTransferResultResponse{Transferred: sent}, nil
}

// UpdateParams handles parameter updates (governance only)
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}

	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdate,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
		),
	)
	ms.Logger(goCtx).Info("swapper params updated", "params", msg.Params.String())

	return &types.MsgUpdateParamsResponse{}, nil
}
