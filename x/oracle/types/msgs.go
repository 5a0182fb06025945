package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgServer is the transaction surface of the oracle module.
type MsgServer interface {
	SetPriceSource(context.Context, *MsgSetPriceSource) (*MsgSetPriceSourceResponse, error)
	RemovePriceSource(context.Context, *MsgRemovePriceSource) (*MsgRemovePriceSourceResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgSetPriceSource creates or replaces the price source of Denom. Owner only.
type MsgSetPriceSource struct {
	Sender      string               `json:"sender"`
	Denom       string               `json:"denom"`
	PriceSource PriceSourceUnchecked `json:"price_source"`
}

type MsgSetPriceSourceResponse struct{}

// ValidateBasic performs stateless checks.
func (msg MsgSetPriceSource) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return ErrInvalidDenom.Wrap(err.Error())
	}
	return nil
}

// MsgRemovePriceSource deletes the price source of Denom. Owner only.
type MsgRemovePriceSource struct {
	Sender string `json:"sender"`
	Denom  string `json:"denom"`
}

type MsgRemovePriceSourceResponse struct{}

// ValidateBasic performs stateless checks.
func (msg MsgRemovePriceSource) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return ErrInvalidDenom.Wrap(err.Error())
	}
	return nil
}

// MsgUpdateParams replaces the module params, owner included. Only the
// governance authority may send it.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}
