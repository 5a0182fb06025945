package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgServer is the transaction surface of the swapper module.
type MsgServer interface {
	SetRoute(context.Context, *MsgSetRoute) (*MsgSetRouteResponse, error)
	SwapExactIn(context.Context, *MsgSwapExactIn) (*MsgSwapExactInResponse, error)
	TransferResult(context.Context, *MsgTransferResult) (*MsgTransferResultResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgSetRoute stores the route from DenomIn to DenomOut. Owner only.
type MsgSetRoute struct {
	Sender   string `json:"sender"`
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
	Route    Route  `json:"route"`
}

type MsgSetRouteResponse struct{}

// ValidateBasic performs stateless checks.
func (msg MsgSetRoute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.DenomIn); err != nil {
		return ErrInvalidRoute.Wrapf("invalid denom in: %s", err)
	}
	if err := sdk.ValidateDenom(msg.DenomOut); err != nil {
		return ErrInvalidRoute.Wrapf("invalid denom out: %s", err)
	}
	return nil
}

// MsgSwapExactIn swaps CoinIn into DenomOut along the stored route. The
// output may fall short of the current estimate by at most Slippage.
type MsgSwapExactIn struct {
	Sender   string         `json:"sender"`
	CoinIn   sdk.Coin       `json:"coin_in"`
	DenomOut string         `json:"denom_out"`
	Slippage math.LegacyDec `json:"slippage"`
}

// MsgSwapExactInResponse reports what was sent back to the sender.
type MsgSwapExactInResponse struct {
	Received sdk.Coins `json:"received"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapExactIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if !msg.CoinIn.IsValid() || !msg.CoinIn.IsPositive() {
		return ErrInvalidCoin.Wrapf("invalid coin in: %s", msg.CoinIn)
	}
	if err := sdk.ValidateDenom(msg.DenomOut); err != nil {
		return ErrInvalidRoute.Wrapf("invalid denom out: %s", err)
	}
	return ValidateSlippage(msg.Slippage)
}

// MsgTransferResult sweeps the module's balances of DenomIn and DenomOut to
// Recipient. Only the module account itself may send it.
type MsgTransferResult struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	DenomIn   string `json:"denom_in"`
	DenomOut  string `json:"denom_out"`
}

// MsgTransferResultResponse reports what was swept.
type MsgTransferResultResponse struct {
	Transferred sdk.Coins `json:"transferred"`
}

// MsgUpdateParams replaces the module params, owner included. Only the
// governance authority may send it.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

// ValidateSlippage accepts slippage in [0, 1).
func ValidateSlippage(slippage math.LegacyDec) error {
	if slippage.IsNil() || slippage.IsNegative() || slippage.GTE(math.LegacyOneDec()) {
		return ErrInvalidSlippage.Wrapf("slippage must be in [0, 1), got %s", slippage)
	}
	return nil
}
