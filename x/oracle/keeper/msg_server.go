package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/oracle/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the oracle MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SetPriceSource registers or replaces the price source of a denom (owner only)
func (ms msgServer) SetPriceSource(goCtx context.Context, msg *types.MsgSetPriceSource) (*types.MsgSetPriceSourceResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetPriceSource: validate: %w", err)
	}

	if _, err := ms.Keeper.SetPriceSource(goCtx, msg.Sender, msg.Denom, msg.PriceSource); err != nil {
		return nil, err
	}
	return &types.MsgSetPriceSourceResponse{}, nil
}

// RemovePriceSource deletes the price source of a denom (owner only)
func (ms msgServer) RemovePriceSource(goCtx context.Context, msg *types.MsgRemovePriceSource) (*types.MsgRemovePriceSourceResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemovePriceSource: validate: %w", err)
	}

	if err := ms.Keeper.RemovePriceSource(goCtx, msg.Sender, msg.Denom); err != nil {
		return nil, err
	}
	return &types.MsgRemovePriceSourceResponse{}, nil
}

// UpdateParams handles parameter updates (governance only)
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}

	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdate,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
			sdk.NewAttribute("owner", msg.Params.Owner),
			sdk.NewAttribute("base_denom", msg.Params.BaseDenom),
		),
	)
	ms.Logger(goCtx).Info("oracle params updated", "owner", msg.Params.Owner, "base_denom", msg.Params.BaseDenom)

	return &types.MsgUpdateParamsResponse{}, nil
}
