package types

// Swapper module event types
const (
	EventTypeSetRoute       = "set_route"
	EventTypeSwapExactIn    = "swap_exact_in"
	EventTypeTransferResult = "transfer_result"
	EventTypeParamsUpdate   = "swapper_params_updated"

	AttributeKeyDenomIn   = "denom_in"
	AttributeKeyDenomOut  = "denom_out"
	AttributeKeyRoute     = "route"
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyCoinIn    = "coin_in"
	AttributeKeyMinOut    = "min_receive"
	AttributeKeyCoins     = "coins"
	AttributeKeyAuthority = "authority"
)
