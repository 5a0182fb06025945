package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/dex/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dex MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, err := ms.Keeper.CreatePool(goCtx, creator, msg.DenomA, msg.DenomB, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{PoolID: pool.ID}, nil
}

// SwapExactIn swaps the sender's tokens through the given operations
func (ms msgServer) SwapExactIn(goCtx context.Context, msg *types.MsgSwapExactIn) (*types.MsgSwapExactInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactIn: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: invalid sender address: %w", err)
	}

	out, err := ms.ExecuteSwapOperations(goCtx, sender, msg.Operations, msg.TokenIn, msg.MinAmountOut)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: %w", err)
	}

	return &types.MsgSwapExactInResponse{AmountOut: out}, nil
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
			sdk.NewAttribute("authority", msg.Authority),
		),
	)

	return &types.MsgUpdateParamsResponse{}, nil
}
