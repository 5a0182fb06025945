package types

// Event types for the DEX module
const (
	EventTypePoolCreated  = "pool_created"
	EventTypeSwap         = "swap"
	EventTypeParamsUpdate = "dex_params_updated"

	AttributeKeyPoolID    = "pool_id"
	AttributeKeyCreator   = "creator"
	AttributeKeySender    = "sender"
	AttributeKeyDenomIn   = "denom_in"
	AttributeKeyDenomOut  = "denom_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyHops      = "hops"
)
