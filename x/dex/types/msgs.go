package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// MsgServer is the transaction surface of the dex module.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	SwapExactIn(context.Context, *MsgSwapExactIn) (*MsgSwapExactInResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgCreatePool creates a pool funded by the creator.
type MsgCreatePool struct {
	Creator string   `json:"creator"`
	DenomA  string   `json:"denom_a"`
	DenomB  string   `json:"denom_b"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgCreatePoolResponse returns the id of the new pool.
type MsgCreatePoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

// ValidateBasic performs stateless checks.
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.DenomA); err != nil {
		return errorsmod.Wrap(ErrInvalidTokenDenom, err.Error())
	}
	if err := sdk.ValidateDenom(msg.DenomB); err != nil {
		return errorsmod.Wrap(ErrInvalidTokenDenom, err.Error())
	}
	if msg.DenomA == msg.DenomB {
		return errorsmod.Wrap(ErrInvalidTokenDenom, "token denominations must be different")
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() || msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "amounts must be positive")
	}
	return nil
}

// MsgSwapExactIn swaps TokenIn through Operations.
type MsgSwapExactIn struct {
	Sender       string                       `json:"sender"`
	Operations   []sharedkeeper.SwapOperation `json:"operations"`
	TokenIn      sdk.Coin                     `json:"token_in"`
	MinAmountOut math.Int                     `json:"min_amount_out"`
}

// MsgSwapExactInResponse returns the amount received.
type MsgSwapExactInResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapExactIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if !msg.TokenIn.IsValid() || !msg.TokenIn.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidAmount, "invalid token in: %s", msg.TokenIn)
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return errorsmod.Wrap(ErrInvalidAmount, "min amount out cannot be negative")
	}
	if err := sharedkeeper.ValidateSwapOperations(msg.Operations, msg.TokenIn.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidSwapOperations, err.Error())
	}
	return nil
}

// MsgUpdateParams replaces the module params. Only the governance authority may send it.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// MsgUpdateParamsResponse is empty.
type MsgUpdateParamsResponse struct{}
